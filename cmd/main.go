package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxtransit/stationboard"
	"github.com/luxtransit/stationboard/config"
	"github.com/luxtransit/stationboard/fetch"
)

var rootCmd = &cobra.Command{
	Use:          "stationboard",
	Short:        "Station arrivals board",
	Long:         "Lists scheduled train arrivals at a configured stop from the public timetable feed",
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.AddCommand(arrivalsCmd)
	rootCmd.AddCommand(nextCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		if env := os.Getenv("STATIONBOARD_CONFIG"); env != "" {
			configPath = env
		}
	}
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func buildBoard() (*stationboard.Board, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	acquirer := fetch.NewAcquirer(cfg.MetadataURL, logger)
	cache := stationboard.NewFeedCache(acquirer, logger)
	cache.MaxAge = time.Duration(cfg.FeedMaxAge)

	return stationboard.NewBoard(cache, cfg.StopID, cfg.Categories, loc, logger), cfg, nil
}
