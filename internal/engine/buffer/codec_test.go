package buffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestSetContentUTF8RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"héllo\nworld",
		"中文\n😀 emoji\n",
		"dos\r\nlines\r\n",
		"\n\n\n",
	}

	for _, in := range inputs {
		d := NewDocument()
		if err := d.SetContent([]byte(in), EncodingUTF8); err != nil {
			t.Fatalf("SetContent(%q): %v", in, err)
		}
		out, err := d.Content(EncodingUTF8)
		if err != nil {
			t.Fatalf("Content: %v", err)
		}
		if !bytes.Equal(out, []byte(in)) {
			t.Errorf("round trip %q -> %q", in, out)
		}
	}
}

func TestSetContentInvalidUTF8(t *testing.T) {
	d := NewDocument()
	if err := d.SetContent([]byte{'a', 0xff, 'b', 0xc3}, EncodingUTF8); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if got := d.String(); got != "a�b�" {
		t.Errorf("String = %q, want replacement runes", got)
	}
}

func TestSetContentLineCount(t *testing.T) {
	d := NewDocument()
	_ = d.SetContent([]byte("a\nb\nc"), EncodingUTF8)
	if d.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", d.LineCount())
	}
	if got := string(d.Line(1)); got != "b" {
		t.Errorf("line 1 = %q", got)
	}
}

func TestUTF16LE(t *testing.T) {
	d := NewDocumentFromString("Aé\n😀")
	out, err := d.Content(EncodingUTF16LE)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	want := []byte{
		0x41, 0x00, // A
		0xE9, 0x00, // é
		0x0A, 0x00, // \n
		0x3D, 0xD8, 0x00, 0xDE, // U+1F600 as a surrogate pair
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("UTF-16LE = % x, want % x", out, want)
	}

	back := NewDocument()
	if err := back.SetContent(out, EncodingUTF16LE); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if back.String() != d.String() {
		t.Errorf("round trip = %q, want %q", back.String(), d.String())
	}
}

func TestUTF16LEUnpairedSurrogate(t *testing.T) {
	d := NewDocument()
	// A lone high surrogate followed by 'x'.
	if err := d.SetContent([]byte{0x3D, 0xD8, 'x', 0x00}, EncodingUTF16LE); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if got := d.String(); got != "�x" {
		t.Errorf("String = %q, want replacement then x", got)
	}
}

func TestUnknownEncoding(t *testing.T) {
	d := NewDocument()
	if err := d.SetContent([]byte("x"), Encoding(42)); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("SetContent err = %v, want ErrUnknownEncoding", err)
	}
	if _, err := d.Content(Encoding(42)); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Content err = %v, want ErrUnknownEncoding", err)
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingUTF8, false},
		{"UTF-8", EncodingUTF8, false},
		{"utf-16le", EncodingUTF16LE, false},
		{"native", EncodingUTF16LE, false},
		{"latin1", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEncoding(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseEncoding(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if EncodingUTF16LE.String() != "utf-16le" {
		t.Errorf("String = %q", EncodingUTF16LE.String())
	}
}
