// Package share hands a record summary to whatever share surface the host
// offers: a configured share command first, then the system clipboard, then
// nothing but a notice for the user.
package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Sharer is one share surface. Available is a cheap capability probe; Share
// performs the hand-off once.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, title, text string) error
}

// Outcome tells which surface accepted the text.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeShared
	OutcomeCopied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeShared:
		return "shared"
	case OutcomeCopied:
		return "copied"
	default:
		return "none"
	}
}

// ErrUnavailable is returned when neither surface is usable on this host.
var ErrUnavailable = errors.New("no share surface available")

// Chain tries Primary, then Fallback. Each surface is attempted at most once
// and a surface whose probe fails is skipped without being called.
type Chain struct {
	Primary  Sharer
	Fallback Sharer
	Logger   *slog.Logger
}

// Share delivers text and reports where it went.
func (c Chain) Share(ctx context.Context, title, text string) (Outcome, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var primaryErr error
	if c.Primary != nil && c.Primary.Available() {
		err := c.Primary.Share(ctx, title, text)
		if err == nil {
			logger.Debug("shared via command", "title", title)
			return OutcomeShared, nil
		}
		primaryErr = fmt.Errorf("share command: %w", err)
		logger.Warn("share command failed, trying clipboard", "error", err)
	}

	if c.Fallback != nil && c.Fallback.Available() {
		err := c.Fallback.Share(ctx, title, text)
		if err == nil {
			logger.Debug("copied to clipboard", "title", title)
			return OutcomeCopied, nil
		}
		logger.Warn("clipboard copy failed", "error", err)
		return OutcomeNone, errors.Join(primaryErr, fmt.Errorf("clipboard: %w", err))
	}

	if primaryErr != nil {
		return OutcomeNone, primaryErr
	}
	logger.Warn("no share surface available")
	return OutcomeNone, ErrUnavailable
}

// Notice is the user-facing line describing a Share result.
func Notice(o Outcome, err error) string {
	switch {
	case err != nil && errors.Is(err, ErrUnavailable):
		return "Compartilhamento indisponível neste terminal"
	case err != nil:
		return "Não foi possível compartilhar: " + err.Error()
	case o == OutcomeShared:
		return "Compartilhado"
	case o == OutcomeCopied:
		return "Copiado para a área de transferência!"
	default:
		return ""
	}
}
