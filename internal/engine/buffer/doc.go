// Package buffer provides the line-oriented document model of the editor and
// the codecs that convert it to and from bytes.
//
// A Document is an ordered sequence of lines, each an ordered sequence of
// Unicode scalar values. A document always holds at least one line. Positions
// are (line, char) pairs where char counts runes, not bytes or cells.
//
// Basic usage:
//
//	doc := buffer.NewDocumentFromString("hello\nworld")
//	doc.InsertRune(buffer.Point{Line: 0, Char: 5}, '!')
//	doc.DeleteRange(buffer.Point{Line: 0, Char: 0}, buffer.Point{Line: 1, Char: 0})
//	fmt.Println(doc.String()) // "world"
//
// Encoding:
//
// SetContent and Content convert between a Document and its serialized
// form. Lines are split on '\n' only; a '\r' before it stays part of the
// line, so a file loaded and saved unchanged round-trips byte for byte.
//
// Documents are not safe for concurrent use. The editor only touches them
// from the render loop.
package buffer
