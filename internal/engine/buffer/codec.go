package buffer

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding is returned for an Encoding value outside the known set.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding selects the byte form of document content.
type Encoding uint8

const (
	// EncodingUTF8 is UTF-8. Invalid sequences decode to U+FFFD.
	EncodingUTF8 Encoding = iota
	// EncodingUTF16LE is the native-width form: UTF-16 little endian
	// without a byte order mark. Unpaired surrogates decode to U+FFFD.
	EncodingUTF16LE
)

// String returns the name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF16LE:
		return "utf-16le"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// ParseEncoding returns the encoding with the given name.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-16le", "utf16le", "utf-16", "utf16", "native":
		return EncodingUTF16LE, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

func utf16le() encoding.Encoding {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

// Decode converts data in enc to text.
func Decode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingUTF8:
		// Conversion to runes replaces every invalid byte with U+FFFD.
		return string([]rune(string(data))), nil
	case EncodingUTF16LE:
		out, err := utf16le().NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", enc, err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("decode: %w: %s", ErrUnknownEncoding, enc)
	}
}

// Encode converts text to enc.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingUTF8:
		return []byte(text), nil
	case EncodingUTF16LE:
		out, err := utf16le().NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("encode: %w: %s", ErrUnknownEncoding, enc)
	}
}

// SetContent replaces the document with data decoded from enc.
func (d *Document) SetContent(data []byte, enc Encoding) error {
	text, err := Decode(data, enc)
	if err != nil {
		return err
	}
	d.SetLines(SplitLines(text))
	return nil
}

// Content returns the document encoded in enc, lines joined by '\n'.
func (d *Document) Content(enc Encoding) ([]byte, error) {
	return Encode(d.String(), enc)
}
