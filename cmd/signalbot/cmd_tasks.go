package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		tasks, err := s.ListTasks()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, t := range tasks {
			line := fmt.Sprintf("%d  [%s]  %s", t.ID, t.Status, t.Description)
			if t.AssignedTo != "" {
				line += "  -> " + t.AssignedTo
			}
			fmt.Println(line)
		}
		return nil
	},
}
