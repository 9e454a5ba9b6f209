package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catetin/catetin/internal/cli"
)

func timezoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timezone [zone]",
		Short: "Show or set your summary timezone",
		Long: `Summaries like "today" and "week" are computed in your timezone.
Without arguments the current zone is shown; with an IANA zone name
(e.g. Asia/Jakarta) it is updated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTimezone,
	}
}

func runTimezone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := currentUserID()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		zone, err := store.GetUserTimezone(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "timezone:", zone)
		return nil
	}

	if err := store.SaveUserTimezone(ctx, userID, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess("timezone set to "+args[0]))
	return nil
}
