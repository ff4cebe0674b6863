// Package engine provides the text buffer of the editor: a document with a
// caret, an optional selection and a viewport, driven by editing and
// navigation commands and rendered into a glyph grid.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: the line-oriented Document and its byte codecs
//   - cursor: Marks and the primary/anchor Selection
//
// Scrolling is delegated to renderer/viewport and the caret blink to
// renderer/cursor.
//
// # Threading
//
// A TextBuffer is not safe for concurrent use. The editor mutates and renders
// it only from its render loop; input arrives there through a channel.
//
// # Basic Usage
//
//	tb := engine.New(engine.WithText("hello"), engine.WithBounds(8, 1, 72, 22))
//	tb.MoveCursor(engine.Right, false)
//	tb.InsertChar('X')          // "hXello"
//	tb.SelectAll()
//	text, _ := tb.Cut()         // "hXello", document is now one empty line
//	tb.Render(grid)
//
// # Selection Model
//
// Extending a move starts a selection by copying the primary mark to the
// anchor and then moves the anchor. CurrentLine and CurrentChar report the
// anchor while a selection is active, so status displays follow the end the
// user is moving.
package engine
