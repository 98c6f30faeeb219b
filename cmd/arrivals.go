package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxtransit/stationboard"
)

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals",
	Short: "Lists scheduled arrivals at the configured stop",
	RunE:  arrivals,
}

var (
	tomorrow bool
	fullDay  bool
	dateArg  string
)

func init() {
	arrivalsCmd.Flags().BoolVarP(&tomorrow, "tomorrow", "t", false, "Show tomorrow's full day instead of the rest of today")
	arrivalsCmd.Flags().BoolVarP(&fullDay, "full-day", "f", false, "Show the full day, including arrivals already past")
	arrivalsCmd.Flags().StringVarP(&dateArg, "date", "d", "", "Show a specific date (YYYYMMDD), full day")
}

func arrivals(cmd *cobra.Command, args []string) error {
	board, _, err := buildBoard()
	if err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now().In(board.Location)

	switch {
	case dateArg != "":
		date, err := time.ParseInLocation("20060102", dateArg, board.Location)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateArg, err)
		}
		return printArrivalsFullDay(ctx, board, date)
	case tomorrow:
		return printArrivalsFullDay(ctx, board, now.AddDate(0, 0, 1))
	case fullDay:
		return printArrivalsFullDay(ctx, board, now)
	default:
		arrivals, err := board.ArrivalsFrom(ctx, now, now)
		if err != nil {
			return err
		}
		printArrivals(arrivals)
		return nil
	}
}

func printArrivalsFullDay(ctx context.Context, board *stationboard.Board, date time.Time) error {
	arrivals, err := board.ArrivalsForFullDay(ctx, date)
	if err != nil {
		return err
	}
	printArrivals(arrivals)
	return nil
}

func printArrivals(arrivals []stationboard.Arrival) {
	if len(arrivals) == 0 {
		fmt.Println("no arrivals")
		return
	}
	for _, a := range arrivals {
		fmt.Printf("%s  %-4s from %s\n", a.Time.Format("Mon 15:04"), a.Category, a.Origin)
	}
}
