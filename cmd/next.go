package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next <category>",
	Short: "Shows the next arrival of a vehicle category",
	Args:  cobra.ExactArgs(1),
	RunE:  next,
}

var searchWindowDays int

func init() {
	nextCmd.Flags().IntVarP(&searchWindowDays, "days", "n", 2, "Number of days to search")
}

func next(cmd *cobra.Command, args []string) error {
	board, _, err := buildBoard()
	if err != nil {
		return err
	}

	arrival, err := board.NextOfCategory(context.Background(), args[0], searchWindowDays)
	if err != nil {
		return err
	}
	if arrival == nil {
		fmt.Printf("no %s arrival within %d days\n", args[0], searchWindowDays)
		return nil
	}

	fmt.Printf("%s  %-4s from %s\n", arrival.Time.Format("Mon 15:04"), arrival.Category, arrival.Origin)
	return nil
}
