package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wagner-austin/signal-bot/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one explore-page capture",
	Long: `Launches the browser, captures the first explore item (detail URL,
artist, summary, prompt), downloads its media to the configured download
directory, and prints the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scraper := scrape.New(cfg.Scraper, cfg.GetPageTimeout(), cfg.GetStayDuration())
		capture, err := scraper.Run(ctx, uuid.NewString())
		if err != nil {
			return err
		}

		fmt.Println("Page:   ", capture.PageURL)
		fmt.Println("Artist: ", capture.Artist)
		fmt.Println("Summary:", capture.Summary)
		fmt.Println("Prompt: ", capture.Prompt)
		fmt.Println("Media:  ", capture.MediaURL)
		if capture.SavedPath != "" {
			fmt.Println("Saved:  ", capture.SavedPath)
		}
		return nil
	},
}
