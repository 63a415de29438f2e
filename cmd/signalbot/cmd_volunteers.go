package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wagner-austin/signal-bot/internal/volunteer"
)

var volunteersCmd = &cobra.Command{
	Use:   "volunteers",
	Short: "List registered volunteers",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		volunteers, err := s.ListVolunteers()
		if err != nil {
			return err
		}
		if len(volunteers) == 0 {
			fmt.Println("No registered volunteers.")
			return nil
		}
		for _, v := range volunteers {
			availability := "unavailable"
			if v.Available {
				availability = "available"
			}
			line := fmt.Sprintf("%s  %s  %s  role=%s", v.Phone, v.Name, availability, v.Role)
			if len(v.Skills) > 0 {
				line += "  skills=" + strings.Join(v.Skills, ",")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var volunteersAddCmd = &cobra.Command{
	Use:   "add [phone] [name...]",
	Short: "Register a volunteer from the shell",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		msg, err := volunteer.NewManager(s).Register(args[0], strings.Join(args[1:], " "), nil, true)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

var volunteersDeletedCmd = &cobra.Command{
	Use:   "deleted",
	Short: "List archived volunteer records",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		archived, err := s.ListDeletedVolunteers()
		if err != nil {
			return err
		}
		if len(archived) == 0 {
			fmt.Println("No deleted volunteer records.")
			return nil
		}
		for _, v := range archived {
			fmt.Printf("%s  %s  deleted %s\n", v.Phone, v.Name, v.DeletedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	volunteersCmd.AddCommand(volunteersAddCmd)
	volunteersCmd.AddCommand(volunteersDeletedCmd)
}
