package app

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dshills/gridedit/internal/engine"
	"github.com/dshills/gridedit/internal/renderer/statusline"
)

// Command is an editor command bound to a key.
type Command func(a *App) error

// Command names.
const (
	CmdSave      = "save"
	CmdSaveAs    = "save-as"
	CmdQuit      = "quit"
	CmdSelectAll = "select-all"
	CmdCut       = "cut"
	CmdCopy      = "copy"
	CmdCancel    = "cancel"
)

func (a *App) registerCommands() {
	a.commands = map[string]Command{
		CmdSave:      (*App).save,
		CmdSaveAs:    (*App).beginSaveAs,
		CmdQuit:      func(*App) error { return ErrQuit },
		CmdSelectAll: (*App).selectAll,
		CmdCut:       (*App).cut,
		CmdCopy:      (*App).copy,
		CmdCancel:    (*App).cancelFileName,
	}
}

// Execute runs a command by name. Failures are returned as *CommandError;
// ErrQuit is returned as is.
func (a *App) Execute(name string) error {
	cmd, ok := a.commands[name]
	if !ok {
		return &CommandError{Command: name, Err: ErrUnknownCommand}
	}
	a.logger.Debug("command %s", name)
	err := cmd(a)
	if err == nil || errors.Is(err, ErrQuit) {
		return err
	}
	return &CommandError{Command: name, Err: err}
}

// activeBuffer returns the buffer that has input focus.
func (a *App) activeBuffer() *engine.TextBuffer {
	if a.mode == ModeFileName {
		return a.fileName
	}
	return a.text
}

// save writes the document to its file. Without a file name it starts
// save-as; in the file name bar it confirms save-as.
func (a *App) save() error {
	if a.mode == ModeFileName {
		return a.confirmSaveAs()
	}
	path := a.project.Path()
	if path == "" {
		return a.beginSaveAs()
	}
	return a.writeDocument(path, a.project.Save)
}

func (a *App) writeDocument(path string, write func(data []byte) error) error {
	data, err := a.doc.Content()
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := write(data); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	a.doc.MarkSaved()
	a.status.SetMessage("Saved "+filepath.Base(path), statusline.MessageInfo)
	a.logger.Info("saved %s (%d bytes)", path, len(data))
	return nil
}

// beginSaveAs focuses the file name bar with the current name selected.
func (a *App) beginSaveAs() error {
	a.mode = ModeFileName
	a.text.SetActive(false)
	a.fileName.SetActive(true)
	a.fileName.SetColors(a.fileNameColors(true))
	a.fileName.SetText(a.project.Path())
	a.fileName.SelectAll()
	a.status.SetMessage("Save as: Enter to save, Esc to cancel", statusline.MessageInfo)
	return nil
}

// confirmSaveAs saves under the name typed in the file name bar and
// returns focus to the text area.
func (a *App) confirmSaveAs() error {
	name, _, _ := strings.Cut(a.fileName.Text(), "\n")
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNoFileName
	}
	err := a.writeDocument(name, func(data []byte) error {
		return a.project.SaveAs(name, data)
	})
	if err != nil {
		return err
	}
	if err := a.project.Watch(); err != nil {
		a.logger.Warn("watch %s: %v", name, err)
	}
	a.endFileName()
	return nil
}

// cancelFileName leaves the file name bar without saving.
func (a *App) cancelFileName() error {
	if a.mode == ModeFileName {
		a.endFileName()
		a.status.ClearMessage()
	}
	return nil
}

func (a *App) endFileName() {
	a.mode = ModeEdit
	a.fileName.SetText(a.project.Path())
	a.fileName.SetActive(false)
	a.fileName.SetColors(a.fileNameColors(false))
	a.text.SetActive(true)
}

func (a *App) selectAll() error {
	a.activeBuffer().SelectAll()
	return nil
}

// copy puts the selection on the clipboard. Without a selection it beeps.
func (a *App) copy() error {
	text, err := a.activeBuffer().Copy()
	if errors.Is(err, engine.ErrNoSelection) {
		a.backend.Beep()
		return nil
	}
	if err != nil {
		return err
	}
	return a.clipboard.Write(text)
}

// cut is copy followed by deleting the selection. The text stays when the
// clipboard write fails.
func (a *App) cut() error {
	b := a.activeBuffer()
	text, err := b.Copy()
	if errors.Is(err, engine.ErrNoSelection) {
		a.backend.Beep()
		return nil
	}
	if err != nil {
		return err
	}
	if err := a.clipboard.Write(text); err != nil {
		return err
	}
	_, err = b.Cut()
	return err
}
