package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/starford/quicknote/internal/noteservice"
)

func TestPreview(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"Buy milk", 20, "Buy milk"},
		{"line one\nline two", 40, "line one line two"},
		{"abcdefghij", 5, "abcd…"},
	}
	for _, c := range cases {
		if got := preview(c.text, c.width); got != c.want {
			t.Errorf("preview(%q, %d) = %q, want %q", c.text, c.width, got, c.want)
		}
	}
}

func TestPreviewWideRunes(t *testing.T) {
	got := preview("牛乳を買う牛乳を買う", 8)
	if w := runewidth.StringWidth(got); w > 8 {
		t.Errorf("width = %d, want <= 8 (%q)", w, got)
	}
}

func TestRenderList(t *testing.T) {
	var buf bytes.Buffer
	sc := noteservice.Screen{Items: []noteservice.ItemView{
		{ID: 1, Text: "Buy milk", Date: "Tue, 14 Nov 2023 at 10:13 PM"},
		{ID: 2, Text: "Call mom"},
	}}
	if err := renderList(&buf, sc, 20); err != nil {
		t.Fatal(err)
	}
	out := ansi.Strip(buf.String())
	if strings.Count(out, "\n") != 2 {
		t.Errorf("want 2 lines, got %q", out)
	}
	for _, want := range []string{"Buy milk", "Call mom", "10:13 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderList(&buf, noteservice.Screen{Empty: true}, 20); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ansi.Strip(buf.String()), "No notes yet") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("12"); err != nil || id != 12 {
		t.Errorf("parseID(12) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-3", "x"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}
