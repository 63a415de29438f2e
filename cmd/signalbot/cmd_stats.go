package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.TableCounts()
		if err != nil {
			return err
		}

		fmt.Println("Database:", s.Path())
		fmt.Println("File size:", s.FileSize(), "bytes")
		tables := make([]string, 0, len(counts))
		for name := range counts {
			tables = append(tables, name)
		}
		sort.Strings(tables)
		for _, name := range tables {
			fmt.Printf("  %s: %d\n", name, counts[name])
		}
		return nil
	},
}
