package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resourceCategory string

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List shared resource links",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		resources, err := s.ListResources(resourceCategory)
		if err != nil {
			return err
		}
		if len(resources) == 0 {
			fmt.Println("No resources found.")
			return nil
		}
		for _, r := range resources {
			line := fmt.Sprintf("%d  [%s]  %s", r.ID, r.Category, r.URL)
			if r.Title != "" {
				line = fmt.Sprintf("%d  [%s]  %s  %s", r.ID, r.Category, r.Title, r.URL)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	resourcesCmd.Flags().StringVar(&resourceCategory, "category", "", "only list this category")
}
