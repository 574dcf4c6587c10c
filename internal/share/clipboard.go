package share

import (
	"context"

	"github.com/atotto/clipboard"
)

// Clipboard copies the text to the system clipboard. It is unavailable when
// no clipboard utility exists (headless Linux without xclip, xsel or
// wl-clipboard).
type Clipboard struct{}

// Available reports whether a clipboard backend was found.
func (Clipboard) Available() bool {
	return !clipboard.Unsupported
}

// Share writes text to the clipboard. The title is not used.
func (Clipboard) Share(ctx context.Context, _ string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return clipboard.WriteAll(text)
}
