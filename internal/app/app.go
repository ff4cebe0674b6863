// Package app wires the editor together: it owns the glyph grid and the
// editor components, turns backend events into edits and commands, and
// drives the frame loop.
//
// Input is read on its own goroutine and queued. Everything else, including
// every TextBuffer and the grid, is touched only by the goroutine running
// Run.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/gridedit/internal/config"
	"github.com/dshills/gridedit/internal/engine"
	"github.com/dshills/gridedit/internal/project"
	"github.com/dshills/gridedit/internal/project/filestore"
	"github.com/dshills/gridedit/internal/project/watcher"
	"github.com/dshills/gridedit/internal/renderer/backend"
	"github.com/dshills/gridedit/internal/renderer/core"
	caret "github.com/dshills/gridedit/internal/renderer/cursor"
	"github.com/dshills/gridedit/internal/renderer/grid"
	"github.com/dshills/gridedit/internal/renderer/gutter"
	"github.com/dshills/gridedit/internal/renderer/statusline"
)

// EventQueueSize is the capacity of the input queue.
const EventQueueSize = 256

// InactiveDim is how far the file name bar text fades toward its
// background while the text area has focus. Only true colors blend.
const InactiveDim = 0.4

// Mode selects which text buffer receives input.
type Mode int

const (
	// ModeEdit sends input to the text area.
	ModeEdit Mode = iota
	// ModeFileName sends input to the file name bar for save-as.
	ModeFileName
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeFileName:
		return "file-name"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// App is the editor application.
type App struct {
	cfg     *config.Config
	backend backend.Backend
	grid    *grid.Grid

	doc      *Document
	text     *engine.TextBuffer
	fileName *engine.TextBuffer
	gutter   *gutter.Gutter
	status   *statusline.StatusLine

	project   *project.Project
	clipboard Clipboard
	logger    *Logger
	now       func() time.Time
	signals   <-chan os.Signal

	events   chan backend.Event
	mode     Mode
	commands map[string]Command
	bindings map[Chord]string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(a *App) {
		a.clipboard = c
	}
}

// WithClock replaces time.Now for the caret and the status line.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithProject sets the file manager. By default one is created from the
// configuration.
func WithProject(p *project.Project) Option {
	return func(a *App) {
		a.project = p
	}
}

// WithSignals makes Run write a recovery file and return when a signal
// arrives.
func WithSignals(ch <-chan os.Signal) Option {
	return func(a *App) {
		a.signals = ch
	}
}

// New creates the editor on an initialized backend.
func New(cfg *config.Config, be backend.Backend, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		cfg:       cfg,
		backend:   be,
		clipboard: SystemClipboard{},
		logger:    NullLogger,
		now:       time.Now,
		events:    make(chan backend.Event, EventQueueSize),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("app")

	if a.project == nil {
		popts := []project.Option{project.WithWatch(cfg.Editor.Watch)}
		if untitled, err := cfg.UntitledPath(); err != nil {
			a.logger.Warn("no recovery for unnamed buffers: %v", err)
		} else {
			popts = append(popts, project.WithUntitledPath(untitled))
		}
		p, err := project.New(popts...)
		if err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
		a.project = p
	}

	t := cfg.Theme
	a.grid = grid.New(be, t.Background)
	w, h := a.grid.Size()
	l := ComputeLayout(w, h, cfg.Editor.GutterWidth)

	a.text = engine.New(
		engine.WithBounds(l.Text.Left, l.Text.Top, l.Text.Width(), l.Text.Height()),
		engine.WithColors(engine.Colors{
			Text:               t.Text,
			Background:         t.Background,
			SelectedText:       t.SelectedText,
			SelectedBackground: t.SelectedBackground,
		}),
		engine.WithTabWidth(cfg.Editor.TabWidth),
		engine.WithCaret(a.newCaret()),
	)
	a.fileName = engine.New(
		engine.WithBounds(l.FileName.Left, l.FileName.Top, l.FileName.Width(), l.FileName.Height()),
		engine.WithColors(a.fileNameColors(false)),
		engine.WithCaret(a.newCaret()),
	)
	a.fileName.SetActive(false)
	a.doc = NewDocument(a.text, cfg.Editor.Encoding)

	a.gutter = gutter.New(l.Gutter.Left, l.Gutter.Top, l.Gutter.Width(), l.Gutter.Height(), gutter.Colors{
		Number:      t.GutterText,
		CurrentLine: t.GutterCurrent,
		Background:  t.GutterBackground,
	})
	a.status = statusline.New(l.Status.Left, l.Status.Top, l.Status.Width(), statusline.Colors{
		Text:       t.StatusText,
		Background: t.StatusBackground,
		Error:      t.StatusError,
	}, statusline.WithClock(a.now))

	a.grid.OnResize(a.layout)
	a.registerCommands()
	a.bindings = DefaultBindings()
	return a, nil
}

func (a *App) newCaret() *caret.Blink {
	t := a.cfg.Theme
	return caret.New(caret.Config{
		Period: a.cfg.Editor.BlinkPeriod,
		On:     core.NewStyle(t.CaretText, t.Caret),
		Off:    core.NewStyle(t.Text, t.Background),
	}, caret.WithClock(a.now))
}

// fileNameColors returns the file name bar colors. Without focus the text
// is blended toward the background.
func (a *App) fileNameColors(active bool) engine.Colors {
	t := a.cfg.Theme
	text := t.FileNameText
	if !active {
		text = text.Blend(t.FileNameBackground, InactiveDim)
	}
	return engine.Colors{
		Text:               text,
		Background:         t.FileNameBackground,
		SelectedText:       t.SelectedText,
		SelectedBackground: t.SelectedBackground,
	}
}

// layout moves every component after a grid resize.
func (a *App) layout(width, height int) {
	l := ComputeLayout(width, height, a.cfg.Editor.GutterWidth)
	a.fileName.SetBounds(l.FileName.Left, l.FileName.Top, l.FileName.Width(), l.FileName.Height())
	a.text.SetBounds(l.Text.Left, l.Text.Top, l.Text.Width(), l.Text.Height())
	a.gutter.SetBounds(l.Gutter.Left, l.Gutter.Top, l.Gutter.Width(), l.Gutter.Height())
	a.status.SetBounds(l.Status.Left, l.Status.Top, l.Status.Width())
	a.logger.Debug("layout %dx%d", width, height)
}

// Text returns the main text buffer.
func (a *App) Text() *engine.TextBuffer { return a.text }

// FileName returns the file name bar buffer.
func (a *App) FileName() *engine.TextBuffer { return a.fileName }

// Document returns the edited document.
func (a *App) Document() *Document { return a.doc }

// Status returns the status line.
func (a *App) Status() *statusline.StatusLine { return a.status }

// Grid returns the glyph grid.
func (a *App) Grid() *grid.Grid { return a.grid }

// Project returns the file manager.
func (a *App) Project() *project.Project { return a.project }

// Mode returns the input mode.
func (a *App) Mode() Mode { return a.mode }

// Open loads path into the text area. A recovery file is preferred and
// the document is then marked modified. A missing file starts an empty
// document under that name. Any other read failure also starts an empty
// document and is returned as a *FileError after being shown.
func (a *App) Open(path string) error {
	data, recovered, err := a.project.Open(path)
	a.fileName.SetText(path)

	var openErr error
	switch {
	case err == nil || recovered:
		if err != nil {
			a.logger.Warn("%v", err)
		}
		if lerr := a.doc.Load(data, recovered); lerr != nil {
			openErr = &FileError{Op: "open", Path: path, Err: lerr}
		} else if recovered {
			rp := a.project.RecoveryPath()
			a.status.SetMessage("Recovered unsaved changes from "+filepath.Base(rp), statusline.MessageWarning)
			a.logger.Warn("recovered %s", rp)
		}
	case filestore.IsNotFound(err):
		_ = a.doc.Load(nil, false)
		if path != "" {
			a.status.SetMessage("New file", statusline.MessageInfo)
		}
	default:
		openErr = &FileError{Op: "open", Path: path, Err: err}
	}

	if openErr != nil {
		_ = a.doc.Load(nil, false)
		a.reportError(openErr)
	} else if path != "" {
		a.logger.Info("opened %s (%d lines)", path, a.text.LineCount())
	}

	if path != "" {
		if err := a.project.Watch(); err != nil {
			a.logger.Warn("watch %s: %v", path, err)
		}
	}
	return openErr
}

// Run drives the editor until ctx is cancelled, a quit command is issued
// or a signal arrives. Input is applied and a frame is rendered every
// editor tick.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.readInput(ctx)

	tick := a.cfg.Editor.Tick
	if tick <= 0 {
		tick = config.Default().Editor.Tick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	changes := a.project.Changes()
	watchErrs := a.project.Errors()

	a.logger.Info("run %s", a.cfg)
	a.Render()
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("stopped: %v", context.Cause(ctx))
			return nil

		case sig := <-a.signals:
			a.logger.Warn("received %v", sig)
			a.SaveRecovery()
			return nil

		case ev, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			a.externalChange(ev)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			a.logger.Warn("watcher: %v", err)

		case <-ticker.C:
			if err := a.drainInput(); err != nil {
				a.logger.Info("quit")
				return nil
			}
			a.Render()
		}
	}
}

// readInput queues backend events until the backend shuts down or ctx
// ends. It never touches editor state.
func (a *App) readInput(ctx context.Context) {
	for {
		ev := a.backend.PollEvent()
		if ev.Type == backend.EventNone {
			return
		}
		select {
		case a.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// drainInput applies every queued event. It returns ErrQuit when a quit
// command was handled.
func (a *App) drainInput() error {
	for {
		select {
		case ev := <-a.events:
			if err := a.HandleEvent(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Render draws one frame and flushes it to the backend.
func (a *App) Render() {
	a.fileName.Render(a.grid)
	a.text.Render(a.grid)

	a.gutter.Update(a.text.Viewport().FirstLine(), a.text.CurrentLine(), a.text.LineCount())
	a.gutter.Render(a.grid)

	a.status.SetPosition(a.text.CurrentLine()+1, a.text.CurrentChar()+1)
	a.status.SetFilename(a.project.Path())
	a.status.SetModified(a.doc.IsModified())
	a.status.Render(a.grid)

	a.grid.RenderFrame()
}

// SaveRecovery writes unsaved text to the recovery file when recovery is
// enabled. An unnamed buffer uses the project's untitled path.
func (a *App) SaveRecovery() {
	rp := a.project.RecoveryPath()
	if !a.cfg.Editor.Recovery || !a.doc.IsModified() || rp == "" {
		return
	}
	data, err := a.doc.Content()
	if err == nil {
		err = a.project.WriteRecovery(data)
	}
	if err != nil {
		a.logger.Error("%v", &FileError{Op: "recover", Path: rp, Err: err})
		return
	}
	a.logger.Info("wrote %s", rp)
}

func (a *App) externalChange(ev watcher.Event) {
	name := filepath.Base(ev.Path)
	msg := name + " changed on disk"
	if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
		msg = name + " was removed on disk"
	}
	a.status.SetMessage(msg, statusline.MessageWarning)
	a.logger.Info("external change %s %v", ev.Path, ev.Op)
}

// reportError logs err and shows it on the status line.
func (a *App) reportError(err error) {
	a.logger.Error("%v", err)
	a.status.SetMessage(err.Error(), statusline.MessageError)
}

// Close releases the file watcher.
func (a *App) Close() error {
	return a.project.Close()
}
