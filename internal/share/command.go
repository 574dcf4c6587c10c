package share

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command shares by running an external program with the text on stdin, e.g.
// ["termux-share", "-a", "send"]. The title is exported as REGISTRO_SHARE_TITLE.
type Command struct {
	Argv []string
}

// Available reports whether the program is on PATH.
func (c Command) Available() bool {
	if len(c.Argv) == 0 || strings.TrimSpace(c.Argv[0]) == "" {
		return false
	}
	_, err := exec.LookPath(c.Argv[0])
	return err == nil
}

// Share runs the command once and waits for it to exit.
func (c Command) Share(ctx context.Context, title, text string) error {
	if len(c.Argv) == 0 {
		return fmt.Errorf("share command not configured")
	}
	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Env = append(os.Environ(), "REGISTRO_SHARE_TITLE="+title)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", c.Argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", c.Argv[0], err)
	}
	return nil
}
