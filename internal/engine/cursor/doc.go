// Package cursor provides the caret and selection model of the editor.
//
// A Mark is a position in a document plus the column memory used by
// vertical moves. A Selection pairs the primary mark with an anchor: when
// the selection is active the text between them is selected. Extending
// moves the anchor, so the anchor is the end that follows the caret keys
// and the primary mark stays where the selection started.
//
// Marks hold indices, never references into the document; they are
// re-validated with Clamp after edits.
package cursor
