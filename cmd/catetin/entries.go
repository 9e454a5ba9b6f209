package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catetin/catetin/internal/cli"
	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/model"
)

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List recorded entries, newest first",
		RunE:  runEntries,
	}

	cmd.Flags().Int("limit", 20, "maximum entries to show (0 = all)")

	return cmd
}

func undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Delete the most recent entry",
		RunE:  runUndo,
	}
}

func runEntries(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	userID := currentUserID()
	loc := userLocation(ctx, store, userID)

	entries, err := store.ListEntries(ctx, userID, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("no entries recorded yet"))
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-30s %s\n",
			cli.SubtleStyle.Render(e.CreatedAt.In(loc).Format("02 Jan 15:04")),
			e.Description,
			cli.AmountStyle.Render(model.FormatAmount(e.Amount)))
	}
	return nil
}

func runUndo(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	entry, err := store.DeleteLastEntry(ctx, currentUserID())
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintln(out, cli.SubtleStyle.Render("nothing to undo"))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("deleted: %s (%s)",
		entry.Description, model.FormatAmount(entry.Amount))))
	return nil
}
