package share

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Sink receives a share payload.
type Sink interface {
	Share(text string) error
}

// Method identifies how a payload reached the clipboard.
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

func (m Method) String() string {
	if m == MethodOSC52 {
		return "osc52"
	}
	return "system"
}

// Clipboard copies payloads to the system clipboard and falls back to an
// OSC52 escape sequence on terminals without a GUI clipboard.
type Clipboard struct {
	writeSystem func(string) error
	openTTY     func() (io.WriteCloser, error)
	getenv      func(string) string

	last Method
}

// NewClipboard returns a Clipboard wired to the real system clipboard and /dev/tty.
func NewClipboard() *Clipboard {
	return &Clipboard{
		writeSystem: clipboard.WriteAll,
		openTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
		getenv: os.Getenv,
	}
}

// Share implements Sink.
func (c *Clipboard) Share(text string) error {
	sysErr := c.writeSystem(text)
	if sysErr == nil {
		c.last = MethodSystem
		return nil
	}
	oscErr := c.writeOSC52(text)
	if oscErr == nil {
		c.last = MethodOSC52
		return nil
	}
	return fmt.Errorf("share: system clipboard failed: %s; OSC52 fallback failed: %s",
		strings.TrimSpace(sysErr.Error()), strings.TrimSpace(oscErr.Error()))
}

// LastMethod reports how the most recent successful Share was delivered.
func (c *Clipboard) LastMethod() Method {
	return c.last
}

func (c *Clipboard) writeOSC52(text string) error {
	term := strings.TrimSpace(c.getenv("TERM"))
	if term == "" || strings.EqualFold(term, "dumb") {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := c.openTTY()
	if err != nil {
		return fmt.Errorf("open tty: %w", err)
	}
	defer tty.Close()

	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(strings.ToLower(term), "screen"):
		seq = seq.Screen()
	}
	_, err = seq.WriteTo(tty)
	return err
}
