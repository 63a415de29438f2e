package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wagner-austin/signal-bot/internal/manifest"
)

var (
	depsFile   string
	depsExtras []string
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Inspect the dependency manifest",
	Long: `Parses a requirements-style manifest and reports its entries.

'deps list' prints the requirements active for the requested extras;
'deps check' only validates that the manifest parses.`,
}

var depsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active requirements",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.ParseFile(depsFile)
		if err != nil {
			return err
		}
		active := m.Resolve(depsExtras...)
		if len(active) == 0 {
			fmt.Println("No active requirements.")
			return nil
		}
		for _, req := range active {
			fmt.Println(req.String())
		}
		return nil
	},
}

var depsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.ParseFile(depsFile)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d requirement(s), OK\n", depsFile, len(m.Requirements))
		return nil
	},
}

func init() {
	depsCmd.PersistentFlags().StringVarP(&depsFile, "file", "f", "requirements.txt", "manifest path")
	depsListCmd.Flags().StringSliceVar(&depsExtras, "extra", nil, "extras to activate (repeatable)")

	depsCmd.AddCommand(depsListCmd)
	depsCmd.AddCommand(depsCheckCmd)
}
