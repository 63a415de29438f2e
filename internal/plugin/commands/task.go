package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/plugin"
)

const taskUsage = "Usage: @bot task add <description> | @bot task list | " +
	"@bot task assign <id> <volunteer name> | @bot task close <id>"

func registerTask(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "task",
		Help:        "Manage tasks.\n" + taskUsage,
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return plugin.Subcommands(ctx, args, map[string]plugin.SubcommandFunc{
				"add": func(ctx plugin.Context, rest []string) (string, error) {
					description := strings.Join(rest, " ")
					if description == "" {
						return "", plugin.NewArgError(taskUsage)
					}
					id, err := d.Store.AddTask(description, ctx.Sender)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Task %d added.", id), nil
				},
				"list": func(ctx plugin.Context, rest []string) (string, error) {
					tasks, err := d.Store.ListTasks()
					if err != nil {
						return "", err
					}
					if len(tasks) == 0 {
						return "No tasks.", nil
					}
					var lines []string
					for _, t := range tasks {
						line := fmt.Sprintf("%d [%s] %s", t.ID, t.Status, t.Description)
						if t.AssignedTo != "" {
							line += " -> " + t.AssignedTo
						}
						lines = append(lines, line)
					}
					return strings.Join(lines, "\n"), nil
				},
				"assign": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) < 2 {
						return "", plugin.NewArgError(taskUsage)
					}
					id, err := strconv.ParseInt(rest[0], 10, 64)
					if err != nil {
						return "", plugin.NewArgError("Invalid task id %q.\n\n%s", rest[0], taskUsage)
					}
					name := strings.Join(rest[1:], " ")
					v, err := d.Store.FindVolunteerByName(name)
					if err != nil {
						return "", err
					}
					if v == nil {
						return fmt.Sprintf("No volunteer named '%s'.", name), nil
					}
					if err := d.Store.AssignTask(id, v.Phone); err != nil {
						return "", err
					}
					return fmt.Sprintf("Task %d assigned to %s.", id, v.Name), nil
				},
				"close": func(ctx plugin.Context, rest []string) (string, error) {
					if len(rest) == 0 {
						return "", plugin.NewArgError(taskUsage)
					}
					id, err := strconv.ParseInt(rest[0], 10, 64)
					if err != nil {
						return "", plugin.NewArgError("Invalid task id %q.\n\n%s", rest[0], taskUsage)
					}
					if err := d.Store.CloseTask(id); err != nil {
						return "", err
					}
					return fmt.Sprintf("Task %d closed.", id), nil
				},
			}, taskUsage, "list")
		},
	})
}
