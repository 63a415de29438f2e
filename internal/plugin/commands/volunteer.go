package commands

import (
	"strings"

	"github.com/wagner-austin/signal-bot/internal/logging"
	"github.com/wagner-austin/signal-bot/internal/plugin"
	"github.com/wagner-austin/signal-bot/internal/volunteer"
)

func registerVolunteer(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:   "volunteer status",
		Help:        "Show the status of all volunteers.\nUsage: @bot volunteer status",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return d.Volunteers.Status()
		},
	})

	r.Register(&plugin.Command{
		Canonical:   "check in",
		Help:        "Mark yourself available.\nUsage: @bot check in",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			msg, err := d.Volunteers.CheckIn(ctx.Sender)
			if err == volunteer.ErrNotRegistered {
				return "You are not registered.", nil
			}
			return msg, err
		},
	})

	r.Register(&plugin.Command{
		Canonical:   "check out",
		Help:        "Mark yourself unavailable.\nUsage: @bot check out",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			msg, err := d.Volunteers.CheckOut(ctx.Sender)
			if err == volunteer.ErrNotRegistered {
				return "You are not registered.", nil
			}
			return msg, err
		},
	})

	r.Register(&plugin.Command{
		Canonical:   "skills",
		Help:        "List available skills.\nUsage: @bot skills",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return "Available skills:\n" + strings.Join(volunteer.AvailableSkills, "\n"), nil
		},
	})

	r.Register(&plugin.Command{
		Canonical:   "add skills",
		Help:        "Add skills to your profile.\nUsage: @bot add skills <skill1>, <skill2>",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			var skills []string
			for _, s := range strings.Split(args, ",") {
				if s = strings.TrimSpace(s); s != "" {
					skills = append(skills, s)
				}
			}
			if len(skills) == 0 {
				return "", plugin.NewArgError("Usage: @bot add skills <skill1>, <skill2>")
			}
			msg, err := d.Volunteers.AddSkills(ctx.Sender, skills)
			if err == volunteer.ErrNotRegistered {
				return "You are not registered.", nil
			}
			return msg, err
		},
	})

	r.Register(&plugin.Command{
		Canonical:   "find",
		Help:        "Find an available volunteer with a skill.\nUsage: @bot find <skill>",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			skill := strings.TrimSpace(args)
			if skill == "" {
				return "", plugin.NewArgError("Usage: @bot find <skill>")
			}
			name, err := d.Volunteers.FindAvailable(skill)
			if err != nil {
				return "", err
			}
			if name == "" {
				return "No available volunteer found with skill '" + skill + "'.", nil
			}
			return name + " is available and has the skill '" + skill + "'.", nil
		},
	})

	r.Register(&plugin.Command{
		Canonical:   "feedback",
		Help:        "Send feedback to the organizers.\nUsage: @bot feedback <message>",
		HelpVisible: true,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			text := strings.TrimSpace(args)
			if text == "" {
				return "", plugin.NewArgError("Usage: @bot feedback <message>")
			}
			logging.Dispatch("feedback from %s: %s", ctx.Sender, text)
			if err := d.Store.LogCommand(ctx.Sender, "feedback", text); err != nil {
				return "", err
			}
			return "Thank you for your feedback!", nil
		},
	})
}
