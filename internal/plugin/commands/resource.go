package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

const resourceUsage = "Usage: @bot resource add <category> <url> [title] | " +
	"@bot resource list [category] | @bot resource remove <id>"

func registerResource(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "resource",
		Aliases:     []string{"resources"},
		Help:        "Share and list resource links.\n" + resourceUsage,
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return plugin.Subcommands(ctx, args, map[string]plugin.SubcommandFunc{
				"add": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) < 2 {
						return "", plugin.NewArgError(resourceUsage)
					}
					category := strings.ToLower(rest[0])
					url := rest[1]
					if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
						return "", plugin.NewArgError("Resource URL must start with http:// or https://.")
					}
					title := strings.Join(rest[2:], " ")
					id, err := d.Store.AddResource(category, title, url)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Resource %d added under '%s'.", id, category), nil
				},
				"list": func(ctx plugin.Context, rest []string) (string, error) {
					category := ""
					if len(rest) > 0 {
						category = strings.ToLower(rest[0])
					}
					resources, err := d.Store.ListResources(category)
					if err != nil {
						return "", err
					}
					if len(resources) == 0 {
						return "No resources found.", nil
					}
					var lines []string
					for _, res := range resources {
						line := fmt.Sprintf("%d [%s] %s", res.ID, res.Category, res.URL)
						if res.Title != "" {
							line = fmt.Sprintf("%d [%s] %s - %s", res.ID, res.Category, res.Title, res.URL)
						}
						lines = append(lines, line)
					}
					return strings.Join(lines, "\n"), nil
				},
				"remove": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) == 0 {
						return "", plugin.NewArgError(resourceUsage)
					}
					id, err := strconv.ParseInt(rest[0], 10, 64)
					if err != nil {
						return "", plugin.NewArgError("Invalid resource id %q.\n\n%s", rest[0], resourceUsage)
					}
					if err := d.Store.RemoveResource(id); err != nil {
						return "", err
					}
					return fmt.Sprintf("Resource %d removed.", id), nil
				},
			}, resourceUsage, "list")
		},
	})
}
