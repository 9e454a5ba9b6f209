package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/catetin/catetin/internal/model"
)

// ErrUnknownAction is returned when the user picks a key outside the
// offered action set.
var ErrUnknownAction = errors.New("unknown action")

// actionKeys maps the single-letter choices offered to the user.
var actionKeys = map[string]model.Action{
	"s": model.ActionConfirm,
	"c": model.ActionCorrect,
	"x": model.ActionCancel,
}

// Prompter is the terminal-side collaborator: it renders staged
// extractions (implementing service.Notifier) and reads the user's next
// action. The engine hands it structured data only; all presentation
// lives here.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams, defaulting to
// stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Notify renders a staged extraction and the valid next actions.
func (p *Prompter) Notify(_ context.Context, _ int64, note model.Notification) error {
	if len(note.Candidates) > 0 {
		if _, err := fmt.Fprintln(p.writer, RenderBox(ReceiptIcon+" Extracted items", p.formatCandidates(note.Candidates))); err != nil {
			return fmt.Errorf("failed to render candidates: %w", err)
		}
	}
	if len(note.Actions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(p.writer, p.formatActions(note.Actions)); err != nil {
		return fmt.Errorf("failed to render actions: %w", err)
	}
	return nil
}

// ReadAction reads one action choice limited to the offered set.
func (p *Prompter) ReadAction(ctx context.Context, offered []model.Action) (model.Action, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt("Choice")); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}

	action, ok := actionKeys[strings.ToLower(line)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, line)
	}
	for _, a := range offered {
		if a == action {
			return action, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, line)
}

// ReadCorrection reads the user's correction message: one "<name>
// <amount>" per line, terminated by an empty line or end of input.
func (p *Prompter) ReadCorrection(ctx context.Context) (string, error) {
	if _, err := fmt.Fprintln(p.writer, SubtleStyle.Render("Enter one item per line as \"<name> <amount>\"; finish with an empty line.")); err != nil {
		return "", fmt.Errorf("failed to write instructions: %w", err)
	}

	var lines []string
	for {
		line, err := p.reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Successf writes a styled success line.
func (p *Prompter) Successf(format string, args ...any) {
	fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf(format, args...)))
}

// Errorf writes a styled error line.
func (p *Prompter) Errorf(format string, args ...any) {
	fmt.Fprintln(p.writer, FormatError(fmt.Sprintf(format, args...)))
}

func (p *Prompter) formatCandidates(candidates []model.CandidateRecord) string {
	var b strings.Builder
	var total int64
	for i, c := range candidates {
		fmt.Fprintf(&b, "%2d. %-30s %s\n", i+1, c.Name, AmountStyle.Render(model.FormatAmount(c.Amount)))
		total += c.Amount
	}
	fmt.Fprintf(&b, "    %-30s %s", "Total", AmountStyle.Render(model.FormatAmount(total)))
	return b.String()
}

func (p *Prompter) formatActions(actions []model.Action) string {
	var parts []string
	for _, a := range actions {
		switch a {
		case model.ActionConfirm:
			parts = append(parts, "[S] Save all")
		case model.ActionCorrect:
			parts = append(parts, "[C] Correct manually")
		case model.ActionCancel:
			parts = append(parts, "[X] Cancel")
		case model.ActionSubmitCorrectionText:
			// Free-text entry; no key to advertise.
		}
	}
	return strings.Join(parts, "  ")
}
