package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/catetin/catetin/internal/cli"
	"github.com/catetin/catetin/internal/model"
)

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's spending in your timezone",
		RunE:  runToday,
	}
}

func weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show daily totals for the last 7 days",
		RunE:  runWeek,
	}
}

func runToday(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := currentUserID()
	loc := userLocation(ctx, store, userID)
	start := midnight(time.Now().In(loc))
	end := start.AddDate(0, 0, 1)

	entries, err := store.GetEntriesByPeriod(ctx, userID, start, end)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("no spending recorded today"))
		return nil
	}

	var total int64
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-30s %s\n",
			cli.SubtleStyle.Render(e.CreatedAt.In(loc).Format("15:04")),
			e.Description,
			cli.AmountStyle.Render(model.FormatAmount(e.Amount)))
		total += e.Amount
	}
	fmt.Fprintf(out, "%s\n", cli.FormatSuccess("today's total: "+model.FormatAmount(total)))
	return nil
}

func runWeek(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := currentUserID()
	loc := userLocation(ctx, store, userID)
	end := midnight(time.Now().In(loc)).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -7)

	totals, err := store.GetDailyTotals(ctx, userID, start, end, loc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(totals) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("no spending recorded this week"))
		return nil
	}

	var total int64
	for _, day := range totals {
		fmt.Fprintf(out, "%s  %s\n",
			cli.SubtleStyle.Render(day.Date.Format("Mon 02 Jan")),
			cli.AmountStyle.Render(model.FormatAmount(day.Total)))
		total += day.Total
	}
	fmt.Fprintf(out, "%s\n", cli.FormatSuccess("week total: "+model.FormatAmount(total)))
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
