package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catetin/catetin/internal/cli"
	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/engine"
	"github.com/catetin/catetin/internal/model"
	"github.com/catetin/catetin/internal/ocr"
	"github.com/catetin/catetin/internal/receipt"
	"github.com/catetin/catetin/internal/session"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [textfile]",
		Short: "Extract items from receipt OCR text and stage them for confirmation",
		Long: `Read raw OCR text (from a file, stdin, or an image via --image),
extract (item, price) records, and walk through the save/correct/cancel
flow before anything touches the ledger.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().String("image", "", "receipt image to OCR with tesseract")
	cmd.Flags().StringSlice("ocr-langs", nil, "tesseract languages (default ind,eng)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rawText, err := readReceiptText(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := extractorConfig()
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	sessions := session.NewStore(viper.GetDuration("session.ttl"))
	sessions.StartJanitor(ctx, time.Minute)
	eng := engine.New(store, sessions, receipt.NewWithConfig(cfg), prompter)
	userID := currentUserID()

	_, err = eng.SubmitReceipt(ctx, userID, ocr.CleanText(rawText))
	if errors.Is(err, common.ErrEmptyExtraction) {
		prompter.Errorf("could not read the receipt; record items manually with \"catetin log\"")
		return nil
	}
	if err != nil {
		return err
	}

	return runDecisionLoop(cmd, eng, prompter, userID)
}

// runDecisionLoop drives one staged extraction to a terminal state.
func runDecisionLoop(cmd *cobra.Command, eng *engine.Engine, prompter *cli.Prompter, userID int64) error {
	ctx := cmd.Context()
	offered := []model.Action{model.ActionConfirm, model.ActionCorrect, model.ActionCancel}

	for {
		action, err := prompter.ReadAction(ctx, offered)
		if errors.Is(err, cli.ErrUnknownAction) {
			prompter.Errorf("%v", err)
			continue
		}
		if err != nil {
			return err
		}

		switch action {
		case model.ActionConfirm:
			saved, err := eng.Confirm(ctx, userID)
			if err != nil {
				return err
			}
			if saved == 0 {
				prompter.Successf("nothing to save")
			} else {
				prompter.Successf("saved %d item(s)", saved)
			}
			return nil

		case model.ActionCorrect:
			if _, err := eng.RequestCorrection(ctx, userID); err != nil {
				return err
			}
			text, err := prompter.ReadCorrection(ctx)
			if err != nil {
				return err
			}
			saved, err := eng.SubmitCorrection(ctx, userID, text)
			if err != nil && !errors.Is(err, engine.ErrNotAwaitingCorrection) {
				return err
			}
			prompter.Successf("correction saved (%d item(s))", saved)
			return nil

		case model.ActionCancel:
			eng.Cancel(userID)
			prompter.Successf("canceled, nothing saved")
			return nil

		default:
			prompter.Errorf("unsupported action %q", action)
		}
	}
}

// readReceiptText resolves the OCR text source: --image via tesseract, a
// text file argument, or stdin.
func readReceiptText(cmd *cobra.Command, args []string) (string, error) {
	imagePath, _ := cmd.Flags().GetString("image")
	if imagePath != "" {
		langs, _ := cmd.Flags().GetStringSlice("ocr-langs")
		recognizer := ocr.NewTesseract(langs)
		text, err := recognizer.Recognize(cmd.Context(), imagePath)
		if err != nil {
			return "", fmt.Errorf("OCR failed: %w", err)
		}
		return text, nil
	}

	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
