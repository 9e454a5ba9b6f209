package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catetin/catetin/internal/cli"
	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/engine"
	"github.com/catetin/catetin/internal/model"
	"github.com/catetin/catetin/internal/receipt"
	"github.com/catetin/catetin/internal/session"
)

func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <text>...",
		Short: "Record one spending entry from free text",
		Long: `Record spending without a receipt. The first number in the text is
the amount; the rest becomes the description, e.g.:

  catetin log kopi 10000`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLog,
	}
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cfg, err := extractorConfig()
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	sessions := session.NewStore(viper.GetDuration("session.ttl"))
	eng := engine.New(store, sessions, receipt.NewWithConfig(cfg), nil)

	entry, err := eng.LogSpending(ctx, currentUserID(), strings.Join(args, " "))
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		prompter.Errorf("%s", userErr.UserMessage)
		return nil
	}
	if err != nil {
		return err
	}

	prompter.Successf("recorded: %s (%s)", model.FormatAmount(entry.Amount), entry.Description)
	return nil
}
