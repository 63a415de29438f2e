package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wagner-austin/signal-bot/internal/parse"
	"github.com/wagner-austin/signal-bot/internal/plugin"
	"github.com/wagner-austin/signal-bot/internal/store"
)

const eventUsage = "Usage: @bot event add Title: <t>, Date: <d>, Time: <t>, Location: <l>, Description: <d>\n" +
	"       @bot event edit <id> <fields> | @bot event list | @bot event remove <id>"

const speakerUsage = "Usage: @bot add speaker <event id> <name> - <topic>\n" +
	"       @bot remove speaker <event id> <name>"

func registerEvent(r *plugin.Registry, d *Deps) {
	r.Register(&plugin.Command{
		Canonical:    "event",
		Help:         "Manage events.\n" + eventUsage,
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			return plugin.Subcommands(ctx, args, map[string]plugin.SubcommandFunc{
				"add":    func(ctx plugin.Context, rest []string) (string, error) { return eventAdd(d, rest) },
				"edit":   func(ctx plugin.Context, rest []string) (string, error) { return eventEdit(d, rest) },
				"list":   func(ctx plugin.Context, rest []string) (string, error) { return eventList(d) },
				"remove": func(ctx plugin.Context, rest []string) (string, error) { return eventRemove(d, rest) },
			}, eventUsage, "list")
		},
	})

	r.Register(&plugin.Command{
		Canonical:    "add speaker",
		Help:         "Add a speaker to an event.\n" + speakerUsage,
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			tokens := strings.Fields(args)
			if len(tokens) < 2 {
				return "", plugin.NewArgError(speakerUsage)
			}
			eventID, err := strconv.ParseInt(tokens[0], 10, 64)
			if err != nil {
				return "", plugin.NewArgError("Invalid event id %q.\n\n%s", tokens[0], speakerUsage)
			}
			name, topic, _ := strings.Cut(strings.Join(tokens[1:], " "), " - ")
			event, err := d.Store.GetEvent(eventID)
			if err != nil {
				return "", err
			}
			if event == nil {
				return fmt.Sprintf("Event %d not found.", eventID), nil
			}
			if err := d.Store.AssignSpeaker(eventID, strings.TrimSpace(name), strings.TrimSpace(topic)); err != nil {
				return "", err
			}
			return fmt.Sprintf("Speaker '%s' added to event '%s'.", strings.TrimSpace(name), event.Title), nil
		},
	})

	r.Register(&plugin.Command{
		Canonical:    "remove speaker",
		Help:         "Remove a speaker from an event.\n" + speakerUsage,
		HelpVisible:  true,
		RequiredRole: plugin.RoleAdmin,
		Handler: func(ctx plugin.Context, args string) (string, error) {
			tokens := strings.Fields(args)
			if len(tokens) < 2 {
				return "", plugin.NewArgError(speakerUsage)
			}
			eventID, err := strconv.ParseInt(tokens[0], 10, 64)
			if err != nil {
				return "", plugin.NewArgError("Invalid event id %q.\n\n%s", tokens[0], speakerUsage)
			}
			name := strings.Join(tokens[1:], " ")
			if err := d.Store.RemoveSpeaker(eventID, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Speaker '%s' removed from event %d.", name, eventID), nil
		},
	})
}

func eventAdd(d *Deps, rest []string) (string, error) {
	kv, err := parse.KeyValueArgs(strings.Join(rest, " "), ",", ":")
	if err != nil {
		return "", plugin.NewArgError("%v\n\n%s", err, eventUsage)
	}
	if kv["title"] == "" {
		return "", plugin.NewArgError("An event needs at least a Title.\n\n%s", eventUsage)
	}
	id, err := d.Store.CreateEvent(store.Event{
		Title:       kv["title"],
		Date:        kv["date"],
		Time:        kv["time"],
		Location:    kv["location"],
		Description: kv["description"],
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Event '%s' created with ID %d.", kv["title"], id), nil
}

// eventEdit updates only the fields present in the key:value list.
func eventEdit(d *Deps, rest []string) (string, error) {
	if len(rest) < 2 {
		return "", plugin.NewArgError(eventUsage)
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return "", plugin.NewArgError("Invalid event id %q.\n\n%s", rest[0], eventUsage)
	}
	event, err := d.Store.GetEvent(id)
	if err != nil {
		return "", err
	}
	if event == nil {
		return fmt.Sprintf("Event %d not found.", id), nil
	}

	kv, err := parse.KeyValueArgs(strings.Join(rest[1:], " "), ",", ":")
	if err != nil {
		return "", plugin.NewArgError("%v\n\n%s", err, eventUsage)
	}
	if len(kv) == 0 {
		return "", plugin.NewArgError(eventUsage)
	}
	if v, ok := kv["title"]; ok {
		event.Title = v
	}
	if v, ok := kv["date"]; ok {
		event.Date = v
	}
	if v, ok := kv["time"]; ok {
		event.Time = v
	}
	if v, ok := kv["location"]; ok {
		event.Location = v
	}
	if v, ok := kv["description"]; ok {
		event.Description = v
	}
	if err := d.Store.UpdateEvent(*event); err != nil {
		return "", err
	}
	return fmt.Sprintf("Event '%s' updated.", event.Title), nil
}

func eventList(d *Deps) (string, error) {
	events, err := d.Store.ListEvents()
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "No events scheduled.", nil
	}
	var lines []string
	for _, e := range events {
		line := fmt.Sprintf("%d: %s", e.ID, e.Title)
		if e.Date != "" {
			line += " on " + e.Date
		}
		if e.Time != "" {
			line += " at " + e.Time
		}
		if e.Location != "" {
			line += " (" + e.Location + ")"
		}
		lines = append(lines, line)

		speakers, err := d.Store.ListSpeakers(e.ID)
		if err != nil {
			return "", err
		}
		for _, sp := range speakers {
			if sp.Topic != "" {
				lines = append(lines, fmt.Sprintf("   speaker: %s - %s", sp.Name, sp.Topic))
			} else {
				lines = append(lines, "   speaker: "+sp.Name)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}

func eventRemove(d *Deps, rest []string) (string, error) {
	if len(rest) == 0 {
		return "", plugin.NewArgError(eventUsage)
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return "", plugin.NewArgError("Invalid event id %q.\n\n%s", rest[0], eventUsage)
	}
	event, err := d.Store.GetEvent(id)
	if err != nil {
		return "", err
	}
	if event == nil {
		return fmt.Sprintf("Event %d not found.", id), nil
	}
	if err := d.Store.DeleteEvent(id); err != nil {
		return "", err
	}
	return fmt.Sprintf("Event '%s' removed.", event.Title), nil
}
