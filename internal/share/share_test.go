package share

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/starford/quicknote/internal/models"
)

func fixedNote() models.Note {
	ts := time.Date(2023, time.November, 14, 22, 13, 0, 0, time.UTC)
	return models.Note{ID: 1, Text: "Buy milk", ModifiedAt: ts.UnixMilli()}
}

func TestDateFromMillis(t *testing.T) {
	got := DateFromMillis(fixedNote().ModifiedAt, time.UTC)
	if got != "Tue, 14 Nov 2023 at 10:13 PM" {
		t.Errorf("date = %q", got)
	}
}

func TestFormat(t *testing.T) {
	got := Format(fixedNote(), "QuickNote", time.UTC)
	want := "Buy milk\n\n Create on : Tue, 14 Nov 2023 at 10:13 PM\n  By :QuickNote"
	if got != want {
		t.Errorf("Format =\n%q\nwant\n%q", got, want)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func TestClipboard_System(t *testing.T) {
	var copied string
	c := &Clipboard{
		writeSystem: func(s string) error { copied = s; return nil },
		getenv:      func(string) string { return "" },
	}
	if err := c.Share("hello"); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if copied != "hello" || c.LastMethod() != MethodSystem {
		t.Errorf("copied = %q, method = %v", copied, c.LastMethod())
	}
}

func TestClipboard_OSC52Fallback(t *testing.T) {
	var tty bytes.Buffer
	c := &Clipboard{
		writeSystem: func(string) error { return errors.New("exit status 1") },
		openTTY:     func() (io.WriteCloser, error) { return nopCloser{&tty}, nil },
		getenv: func(k string) string {
			if k == "TERM" {
				return "xterm-256color"
			}
			return ""
		},
	}
	if err := c.Share("hello"); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if c.LastMethod() != MethodOSC52 {
		t.Errorf("method = %v, want osc52", c.LastMethod())
	}
	if !strings.HasPrefix(tty.String(), "\x1b]52;") {
		t.Errorf("unexpected sequence %q", tty.String())
	}
}

func TestClipboard_BothFail(t *testing.T) {
	c := &Clipboard{
		writeSystem: func(string) error { return errors.New("no display") },
		getenv:      func(string) string { return "dumb" },
	}
	err := c.Share("hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no display") || !strings.Contains(err.Error(), "OSC52") {
		t.Errorf("unexpected error: %v", err)
	}
}
