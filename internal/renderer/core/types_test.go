package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	c := ColorDefault
	if !c.IsDefault() {
		t.Error("ColorDefault should be default")
	}
}

func TestColorFromIndex(t *testing.T) {
	c := ColorFromIndex(12)

	if c.R != 12 {
		t.Errorf("expected index 12, got %d", c.R)
	}
	if !c.Indexed {
		t.Error("indexed color should have Indexed true")
	}
	if !c.Equals(ColorLightBlue) {
		t.Errorf("index 12 should equal ColorLightBlue, got %v", c)
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
		{"#12345", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ColorFromHex(%q) expected error", tt.hex)
				}
				return
			}
			if err != nil {
				t.Fatalf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"white", ColorWhite, false},
		{"Light_Blue", ColorLightBlue, false},
		{"lightgray", ColorLightGray, false},
		{"default", ColorDefault, false},
		{"#102030", ColorFromRGB(0x10, 0x20, 0x30), false},
		{"", Color{}, true},
		{"chartreuse-ish", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equals(tt.want) {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); !got.Equals(black) {
		t.Errorf("Blend(0) = %v, want black", got)
	}
	if got := black.Blend(white, 1); !got.Equals(white) {
		t.Errorf("Blend(1) = %v, want white", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("Blend(0.5) should be between endpoints, got %v", mid)
	}

	// Palette colors cannot be mixed.
	if got := ColorRed.Blend(white, 0.2); !got.Equals(ColorRed) {
		t.Errorf("indexed Blend(0.2) = %v, want red", got)
	}
	if got := ColorRed.Blend(white, 0.8); !got.Equals(white) {
		t.Errorf("indexed Blend(0.8) = %v, want white", got)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, "default"},
		{ColorFromIndex(3), "idx(3)"},
		{ColorFromRGB(1, 2, 255), "#0102FF"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want int
	}{
		{"ascii", 'a', 1},
		{"latin accent", 'é', 1},
		{"control", '\t', 1},
		{"cjk radical start", 0x2E80, 2},
		{"ideograph", '中', 2},
		{"hiragana", 'あ', 2},
		{"hangul syllable", '한', 2},
		{"compat ideograph", 0xF900, 2},
		{"vertical form", 0xFE10, 2},
		{"small form", 0xFE50, 2},
		{"fullwidth A", 'Ａ', 2},
		{"halfwidth katakana", 0xFF61, 1},
		{"emoji", '😀', 2},
		{"ext B ideograph", 0x20000, 2},
		{"compat supplement end", 0x2FA1F, 2},
		{"past supplement", 0x2FA20, 1},
		{"box drawing", '─', 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.r); got != tt.want {
				t.Errorf("DisplayWidth(%U) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestRunesWidth(t *testing.T) {
	if got := RunesWidth([]rune("中abc")); got != 5 {
		t.Errorf("RunesWidth = %d, want 5", got)
	}
	if got := RunesWidth(nil); got != 0 {
		t.Errorf("RunesWidth(nil) = %d, want 0", got)
	}
}

func TestCellContinuation(t *testing.T) {
	style := NewStyle(ColorBlack, ColorWhite)
	c := ContinuationCell(style)
	if !c.IsContinuation() {
		t.Error("ContinuationCell should be a continuation")
	}
	if NewStyledCell('x', style).IsContinuation() {
		t.Error("normal cell should not be a continuation")
	}
	if got := NewStyledCell('中', style).Width; got != 2 {
		t.Errorf("wide cell width = %d, want 2", got)
	}
	blank := BlankCell(ColorBlue)
	if blank.Rune != ' ' || !blank.Style.Background.Equals(ColorBlue) {
		t.Errorf("BlankCell = %+v", blank)
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(1, 8, 28, 111)
	if r.Width() != 111 || r.Height() != 28 {
		t.Errorf("size = %dx%d, want 111x28", r.Width(), r.Height())
	}
	if r.IsEmpty() {
		t.Error("rect should not be empty")
	}
	if !(ScreenRect{Top: 3, Bottom: 3, Left: 0, Right: 5}).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
	if (ScreenRect{Left: 5, Right: 2}).Width() != 0 {
		t.Error("inverted rect width should clamp to 0")
	}
}
