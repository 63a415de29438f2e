package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List planned events and their speakers",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.ListEvents()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No events planned.")
			return nil
		}
		for _, e := range events {
			fmt.Printf("%d  %s", e.ID, e.Title)
			if e.Date != "" {
				fmt.Printf("  %s %s", e.Date, e.Time)
			}
			if e.Location != "" {
				fmt.Printf("  @ %s", e.Location)
			}
			fmt.Println()
			speakers, err := s.ListSpeakers(e.ID)
			if err != nil {
				return err
			}
			for _, sp := range speakers {
				fmt.Printf("    speaker: %s - %s\n", sp.Name, sp.Topic)
			}
		}
		return nil
	},
}
