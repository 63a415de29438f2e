package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent command activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.RecentCommandLogs(logsLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No command activity recorded.")
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %s  %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Sender, e.Command)
			if e.Args != "" {
				line += " " + e.Args
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 50, "number of entries to show")
}
