package app

import (
	"errors"
	"unicode"

	"github.com/dshills/gridedit/internal/engine"
	"github.com/dshills/gridedit/internal/renderer/backend"
)

// Chord is a key with modifiers. For KeyRune the rune is lower-cased.
type Chord struct {
	Key  backend.Key
	Rune rune
	Mod  backend.ModMask
}

// chordMods are the modifiers that take part in bindings.
const chordMods = backend.ModCtrl | backend.ModShift | backend.ModAlt

// ChordOf returns the chord of a key event.
func ChordOf(ev backend.Event) Chord {
	c := Chord{Key: ev.Key, Mod: ev.Mod & chordMods}
	if ev.Key == backend.KeyRune {
		c.Rune = unicode.ToLower(ev.Rune)
	}
	return c
}

func ctrl(r rune) Chord {
	return Chord{Key: backend.KeyRune, Rune: r, Mod: backend.ModCtrl}
}

// DefaultBindings returns the editor key bindings.
func DefaultBindings() map[Chord]string {
	return map[Chord]string{
		ctrl('s'): CmdSave,
		{Key: backend.KeyRune, Rune: 's', Mod: backend.ModCtrl | backend.ModShift}: CmdSaveAs,
		{Key: backend.KeyF12}: CmdSaveAs,
		ctrl('q'): CmdQuit,
		ctrl('w'): CmdQuit,
		ctrl('a'): CmdSelectAll,
		ctrl('c'): CmdCopy,
		ctrl('x'): CmdCut,
	}
}

var arrowKeys = map[backend.Key]engine.Direction{
	backend.KeyLeft:  engine.Left,
	backend.KeyRight: engine.Right,
	backend.KeyUp:    engine.Up,
	backend.KeyDown:  engine.Down,
}

// HandleEvent applies one backend event. It returns ErrQuit when the
// editor should exit; command failures are shown and logged instead.
func (a *App) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		a.grid.Resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		err := a.handleKey(ev)
		if err == nil || errors.Is(err, ErrQuit) {
			return err
		}
		a.reportError(err)
		return nil
	default:
		return nil
	}
}

// handleKey runs a bound command or edits. Editing keys go to both text
// buffers; only the active one acts on them.
func (a *App) handleKey(ev backend.Event) error {
	if name, ok := a.bindings[ChordOf(ev)]; ok {
		return a.Execute(name)
	}

	if dir, ok := arrowKeys[ev.Key]; ok {
		extend := ev.Mod.Has(backend.ModShift)
		a.text.MoveCursor(dir, extend)
		a.fileName.MoveCursor(dir, extend)
		return nil
	}

	switch ev.Key {
	case backend.KeyEscape:
		return a.Execute(CmdCancel)
	case backend.KeyEnter:
		if a.mode == ModeFileName {
			return a.Execute(CmdSave)
		}
		a.insert('\r')
	case backend.KeyTab:
		a.insert('\t')
	case backend.KeyBackspace:
		a.text.Backspace()
		a.fileName.Backspace()
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return nil
		}
		if unicode.IsPrint(ev.Rune) {
			a.insert(ev.Rune)
		}
	}
	return nil
}

func (a *App) insert(r rune) {
	a.text.InsertChar(r)
	a.fileName.InsertChar(r)
}
