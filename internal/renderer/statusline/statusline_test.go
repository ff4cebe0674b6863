package statusline

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridedit/internal/renderer/backend"
	"github.com/dshills/gridedit/internal/renderer/core"
	"github.com/dshills/gridedit/internal/renderer/grid"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestText(t *testing.T) {
	s := New(0, 0, 40, DefaultColors())
	s.SetPosition(3, 7)
	s.SetFilename("notes.txt")

	want := "  Ln 3, Col 7  notes.txt"
	want += "                "
	if got := s.Text(); got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}

	s.SetModified(true)
	if got := s.Text(); got[:26] != "  Ln 3, Col 7  notes.txt *" {
		t.Errorf("modified Text = %q", got)
	}
}

func TestTextNoName(t *testing.T) {
	s := New(0, 0, 30, DefaultColors())
	if got := s.Text(); got[:24] != "  Ln 1, Col 1  [No Name]" {
		t.Errorf("Text = %q", got)
	}
}

func TestTextFitsWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		msg   string
	}{
		{"no message", 12, ""},
		{"short message", 60, "saved"},
		{"long message", 40, "could not write file: permission denied on the target directory"},
		{"narrow", 8, "saved"},
		{"wide glyphs", 30, "保存しました保存しました保存しました"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(0, 0, tt.width, DefaultColors())
			s.SetFilename("a-rather-long-file-name.txt")
			if tt.msg != "" {
				s.SetMessage(tt.msg, MessageInfo)
			}
			if got := runewidth.StringWidth(s.Text()); got != tt.width {
				t.Errorf("Text width = %d, want %d (%q)", got, tt.width, s.Text())
			}
		})
	}
}

func TestMessageExpires(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	s := New(0, 0, 40, DefaultColors(), WithClock(clock.Now), WithMessageTimeout(time.Second))

	s.SetMessage("saved", MessageInfo)
	if msg, typ := s.Message(); msg != "saved" || typ != MessageInfo {
		t.Errorf("Message = %q, %v", msg, typ)
	}

	clock.t = clock.t.Add(2 * time.Second)
	if msg, typ := s.Message(); msg != "" || typ != MessageNone {
		t.Errorf("expired Message = %q, %v", msg, typ)
	}
}

func TestRender(t *testing.T) {
	nb := backend.NewNullBackend(30, 2)
	gr := grid.New(nb, core.ColorBlack)
	s := New(0, 1, 30, DefaultColors(), WithMessageTimeout(0))
	s.SetPosition(2, 4)
	s.SetMessage("oops", MessageError)

	s.Render(gr)
	gr.RenderFrame()

	row := nb.ShownRow(1)
	if row[:14] != "  Ln 2, Col 4 " || row[len(row)-5:] != "oops " {
		t.Errorf("row = %q", row)
	}
	c := nb.ShownCell(0, 1)
	if !c.Style.Background.Equals(core.ColorCyan) || !c.Style.Foreground.Equals(core.ColorLightRed) {
		t.Errorf("style = %+v", c.Style)
	}
}
