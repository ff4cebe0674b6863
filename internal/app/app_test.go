package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/dshills/gridedit/internal/config"
	"github.com/dshills/gridedit/internal/project"
	"github.com/dshills/gridedit/internal/project/filestore"
	"github.com/dshills/gridedit/internal/project/vfs"
	"github.com/dshills/gridedit/internal/project/watcher"
	"github.com/dshills/gridedit/internal/renderer/backend"
	"github.com/dshills/gridedit/internal/renderer/core"
	"github.com/dshills/gridedit/internal/renderer/statusline"
)

type testEnv struct {
	app   *App
	be    *backend.NullBackend
	fs    *vfs.MemFS
	clip  *MemoryClipboard
	clock time.Time
}

func newTestEnv(t *testing.T, w, h int, opts ...Option) *testEnv {
	t.Helper()
	memfs := vfs.NewMemFS()
	return newTestEnvFS(t, memfs, w, h, opts...)
}

func newTestEnvFS(t *testing.T, memfs *vfs.MemFS, w, h int, opts ...Option) *testEnv {
	t.Helper()
	return newTestEnvConfig(t, config.Default(), memfs, nil, w, h, opts...)
}

func newTestEnvConfig(t *testing.T, cfg *config.Config, memfs *vfs.MemFS, projOpts []project.Option, w, h int, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		be:    backend.NewNullBackend(w, h),
		fs:    memfs,
		clip:  &MemoryClipboard{},
		clock: time.Unix(1000, 0),
	}
	t.Cleanup(env.be.Shutdown)

	proj, err := project.New(append([]project.Option{project.WithVFS(memfs)}, projOpts...)...)
	if err != nil {
		t.Fatalf("project.New: %v", err)
	}
	all := append([]Option{
		WithProject(proj),
		WithClipboard(env.clip),
		WithClock(func() time.Time { return env.clock }),
	}, opts...)
	a, err := New(cfg, env.be, all...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	env.app = a
	return env
}

func keyEvent(k backend.Key, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Mod: mod}
}

func charEvent(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func ctrlEvent(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r, Mod: backend.ModCtrl}
}

func (e *testEnv) send(t *testing.T, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		if err := e.app.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%+v) = %v", ev, err)
		}
	}
}

func (e *testEnv) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		e.send(t, charEvent(r))
	}
}

func (e *testEnv) file(t *testing.T, path string) string {
	t.Helper()
	data, err := e.fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(80, 24, 8)
	want := Layout{
		FileName: core.RectFromSize(0, 0, 1, 80),
		Gutter:   core.RectFromSize(1, 0, 22, 8),
		Text:     core.RectFromSize(1, 8, 22, 72),
		Status:   core.RectFromSize(23, 0, 1, 80),
	}
	if l != want {
		t.Errorf("ComputeLayout(80, 24) = %+v, want %+v", l, want)
	}

	tiny := ComputeLayout(4, 1, 8)
	if tiny.FileName.Width() != 4 || !tiny.Status.IsEmpty() || !tiny.Text.IsEmpty() {
		t.Errorf("ComputeLayout(4, 1) = %+v", tiny)
	}
	if tiny.Gutter.Width() != 4 {
		t.Errorf("gutter width = %d, want clipped to 4", tiny.Gutter.Width())
	}
}

func TestOpenAndRender(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/doc.txt", "hello\nworld")

	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	env.app.Render()

	pad := func(s string) string { return s + strings.Repeat(" ", 30-len(s)) }
	want := []string{
		pad("/doc.txt"),
		pad("     1  hello"),
		pad("     2  world"),
		pad(""),
		pad("  Ln 1, Col 1  /doc.txt"),
	}
	for y, row := range want {
		if got := env.be.ShownRow(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}

	theme := config.Default().Theme
	if c := env.be.ShownCell(0, 0); !c.Style.Foreground.Equals(theme.FileNameText) {
		t.Errorf("file name fg = %v, want %v", c.Style.Foreground, theme.FileNameText)
	}
	if c := env.be.ShownCell(5, 1); !c.Style.Foreground.Equals(theme.GutterCurrent) {
		t.Errorf("current line number fg = %v, want %v", c.Style.Foreground, theme.GutterCurrent)
	}
	if c := env.be.ShownCell(0, 4); !c.Style.Background.Equals(theme.StatusBackground) {
		t.Errorf("status bg = %v, want %v", c.Style.Background, theme.StatusBackground)
	}
	if env.app.Document().IsModified() {
		t.Error("freshly opened document is modified")
	}
}

func TestOpenMissingStartsEmpty(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	if err := env.app.Open("/new.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if env.app.Text().Text() != "" {
		t.Errorf("text = %q, want empty", env.app.Text().Text())
	}
	if msg, _ := env.app.Status().Message(); msg != "New file" {
		t.Errorf("message = %q", msg)
	}
}

func TestOpenUnreadable(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/dir/x.txt", "x")

	err := env.app.Open("/dir")
	var fe *FileError
	if !errors.As(err, &fe) || !errors.Is(err, filestore.ErrIsDirectory) {
		t.Fatalf("Open error = %v, want FileError wrapping ErrIsDirectory", err)
	}
	if env.app.Text().LineCount() != 1 || env.app.Text().Text() != "" {
		t.Errorf("text = %q, want empty", env.app.Text().Text())
	}
	if _, typ := env.app.Status().Message(); typ != statusline.MessageError {
		t.Errorf("message type = %v, want error", typ)
	}
}

func TestTypeAndSave(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/doc.txt", "ab")
	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}

	env.typeText(t, "x")
	env.send(t, keyEvent(backend.KeyEnter, 0), keyEvent(backend.KeyTab, 0))
	if got := env.app.Text().Text(); got != "x\n    ab" {
		t.Fatalf("text = %q", got)
	}
	if !env.app.Document().IsModified() {
		t.Error("document not modified after typing")
	}

	env.send(t, ctrlEvent('s'))
	if got := env.file(t, "/doc.txt"); got != "x\n    ab" {
		t.Errorf("saved = %q", got)
	}
	if env.app.Document().IsModified() {
		t.Error("document modified after save")
	}
	if msg, typ := env.app.Status().Message(); msg != "Saved doc.txt" || typ != statusline.MessageInfo {
		t.Errorf("message = %q (%v)", msg, typ)
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	env := newTestEnv(t, 60, 5)
	env.fs.AddFile("/doc.txt", "ab")
	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}
	env.typeText(t, "x")
	env.fs.FailWrites = true

	err := env.app.Execute(CmdSave)
	var ce *CommandError
	var fe *FileError
	if !errors.As(err, &ce) || !errors.As(err, &fe) || fe.Op != "save" {
		t.Fatalf("Execute(save) = %v", err)
	}

	env.send(t, ctrlEvent('s'))
	msg, typ := env.app.Status().Message()
	if typ != statusline.MessageError || !strings.Contains(msg, "save /doc.txt") {
		t.Errorf("message = %q (%v)", msg, typ)
	}
	if !env.app.Document().IsModified() {
		t.Error("document not modified after failed save")
	}
	if got := env.file(t, "/doc.txt"); got != "ab" {
		t.Errorf("file = %q, want unchanged", got)
	}
}

func TestSaveAsFlow(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	if err := env.app.Open(""); err != nil {
		t.Fatal(err)
	}
	env.typeText(t, "hi")

	env.send(t, ctrlEvent('s'))
	if env.app.Mode() != ModeFileName {
		t.Fatalf("mode = %v, want file-name", env.app.Mode())
	}
	if env.app.Text().Active() || !env.app.FileName().Active() {
		t.Error("focus did not move to the file name bar")
	}

	env.typeText(t, "/new.txt")
	if got := env.app.Text().Text(); got != "hi" {
		t.Errorf("text changed while naming: %q", got)
	}
	env.send(t, keyEvent(backend.KeyEnter, 0))

	if env.app.Mode() != ModeEdit || !env.app.Text().Active() {
		t.Errorf("mode = %v after confirming", env.app.Mode())
	}
	if env.app.Project().Path() != "/new.txt" {
		t.Errorf("path = %q", env.app.Project().Path())
	}
	if got := env.file(t, "/new.txt"); got != "hi" {
		t.Errorf("saved = %q", got)
	}
	if got := env.app.FileName().Text(); got != "/new.txt" {
		t.Errorf("file name bar = %q", got)
	}
}

func TestSaveAsCancel(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/a.txt", "text")
	if err := env.app.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}

	env.send(t, keyEvent(backend.KeyF12, 0))
	if env.app.FileName().SelectedText() != "/a.txt" {
		t.Errorf("selected = %q", env.app.FileName().SelectedText())
	}
	env.typeText(t, "z")
	if got := env.app.FileName().Text(); got != "z" {
		t.Errorf("file name bar = %q, want typed name to replace selection", got)
	}

	env.send(t, keyEvent(backend.KeyEscape, 0))
	if env.app.Mode() != ModeEdit {
		t.Errorf("mode = %v", env.app.Mode())
	}
	if got := env.app.FileName().Text(); got != "/a.txt" {
		t.Errorf("file name bar = %q, want restored", got)
	}
	if env.app.Text().Text() != "text" {
		t.Errorf("text = %q", env.app.Text().Text())
	}
}

func TestSaveAsEmptyName(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	if err := env.app.Open(""); err != nil {
		t.Fatal(err)
	}
	env.send(t, keyEvent(backend.KeyF12, 0), keyEvent(backend.KeyEnter, 0))

	if env.app.Mode() != ModeFileName {
		t.Errorf("mode = %v, want file-name", env.app.Mode())
	}
	if !errors.Is(env.app.Execute(CmdSave), ErrNoFileName) {
		t.Error("confirming an empty name should fail with ErrNoFileName")
	}
	if _, typ := env.app.Status().Message(); typ != statusline.MessageError {
		t.Errorf("message type = %v", typ)
	}
}

func TestCopyCut(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/a.txt", "hello")
	if err := env.app.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}

	env.send(t, ctrlEvent('c'))
	if env.be.BeepCount() != 1 {
		t.Errorf("beeps = %d, want 1 for copy without selection", env.be.BeepCount())
	}

	shiftRight := keyEvent(backend.KeyRight, backend.ModShift)
	env.send(t, shiftRight, shiftRight, ctrlEvent('c'))
	if env.clip.Text() != "he" {
		t.Errorf("clipboard = %q, want he", env.clip.Text())
	}
	if env.app.Text().Text() != "hello" {
		t.Errorf("copy changed text: %q", env.app.Text().Text())
	}

	env.clip.Err = errors.New("no clipboard")
	env.send(t, ctrlEvent('x'))
	if env.app.Text().Text() != "hello" {
		t.Errorf("cut with failing clipboard removed text: %q", env.app.Text().Text())
	}
	if _, typ := env.app.Status().Message(); typ != statusline.MessageError {
		t.Errorf("message type = %v, want error", typ)
	}

	env.clip.Err = nil
	env.send(t, ctrlEvent('x'))
	if env.app.Text().Text() != "llo" || env.clip.Text() != "he" {
		t.Errorf("after cut text = %q clipboard = %q", env.app.Text().Text(), env.clip.Text())
	}
}

func TestSelectAllBackspace(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/a.txt", "one\ntwo\nthree")
	if err := env.app.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}
	env.send(t, ctrlEvent('a'), keyEvent(backend.KeyBackspace, 0))

	if env.app.Text().LineCount() != 1 || env.app.Text().Text() != "" {
		t.Errorf("text = %q, want one empty line", env.app.Text().Text())
	}
}

func TestArrowKeys(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/a.txt", "ab\ncd")
	if err := env.app.Open("/a.txt"); err != nil {
		t.Fatal(err)
	}
	env.send(t,
		keyEvent(backend.KeyDown, 0),
		keyEvent(backend.KeyRight, 0),
		keyEvent(backend.KeyUp, backend.ModShift),
	)
	b := env.app.Text()
	if !b.Selecting() || b.SelectedText() != "b\nc" {
		t.Errorf("selection = %q (active %v)", b.SelectedText(), b.Selecting())
	}
	if b.CurrentLine() != 0 || b.CurrentChar() != 1 {
		t.Errorf("head = %d:%d, want 0:1", b.CurrentLine(), b.CurrentChar())
	}
}

func TestIgnoredKeys(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.send(t,
		ctrlEvent('z'),
		backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x', Mod: backend.ModAlt},
		charEvent('\x07'),
		keyEvent(backend.KeyHome, 0),
		backend.Event{Type: backend.EventInterrupt},
	)
	if env.app.Text().Text() != "" {
		t.Errorf("text = %q, want empty", env.app.Text().Text())
	}
}

func TestQuitKeys(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	for _, r := range []rune{'q', 'w', 'Q'} {
		if err := env.app.HandleEvent(ctrlEvent(r)); !errors.Is(err, ErrQuit) {
			t.Errorf("Ctrl+%c = %v, want ErrQuit", r, err)
		}
	}
}

func TestExecuteUnknown(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	if err := env.app.Execute("paste"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute(paste) = %v", err)
	}
}

func TestResizeRelayouts(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.be.Resize(40, 10)
	env.send(t, backend.Event{Type: backend.EventResize, Width: 40, Height: 10})

	if got, want := env.app.Text().Bounds(), core.RectFromSize(1, 8, 8, 32); got != want {
		t.Errorf("text bounds = %+v, want %+v", got, want)
	}
	if got := env.app.Status().Bounds(); got.Top != 9 || got.Width() != 40 {
		t.Errorf("status bounds = %+v", got)
	}
	if w, h := env.app.Grid().Size(); w != 40 || h != 10 {
		t.Errorf("grid = %dx%d", w, h)
	}
	env.app.Render()
	if got := env.be.ShownRow(9); !strings.HasPrefix(got, "  Ln 1, Col 1") {
		t.Errorf("status row = %q", got)
	}
}

func TestExternalChangeMessage(t *testing.T) {
	env := newTestEnv(t, 60, 5)
	env.app.externalChange(watcher.Event{Path: "/x/doc.txt", Op: watcher.OpWrite})
	if msg, typ := env.app.Status().Message(); msg != "doc.txt changed on disk" || typ != statusline.MessageWarning {
		t.Errorf("message = %q (%v)", msg, typ)
	}
	env.app.externalChange(watcher.Event{Path: "/x/doc.txt", Op: watcher.OpRemove})
	if msg, _ := env.app.Status().Message(); msg != "doc.txt was removed on disk" {
		t.Errorf("message = %q", msg)
	}
}

func TestRunQuits(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.be.PostEvent(charEvent('a'))
	env.be.PostEvent(ctrlEvent('q'))

	done := make(chan error, 1)
	go func() { done <- env.app.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if env.app.Text().Text() != "a" {
		t.Errorf("text = %q, want a", env.app.Text().Text())
	}
	if env.be.ShowCount() == 0 {
		t.Error("no frame shown")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- env.app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSignalWritesRecovery(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.AddFile("/doc.txt", "ab")

	sigs := make(chan os.Signal, 1)
	env := newTestEnvFS(t, memfs, 30, 5, WithSignals(sigs))
	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}
	env.typeText(t, "x")

	sigs <- syscall.SIGTERM
	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if got := env.file(t, "/doc.txt.temp"); got != "xab" {
		t.Fatalf("recovery = %q", got)
	}
	if got := env.file(t, "/doc.txt"); got != "ab" {
		t.Errorf("file = %q, want unchanged", got)
	}

	next := newTestEnvFS(t, memfs, 30, 5)
	if err := next.app.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}
	if next.app.Text().Text() != "xab" || !next.app.Document().IsModified() {
		t.Errorf("recovered text = %q modified = %v", next.app.Text().Text(), next.app.Document().IsModified())
	}
	if _, err := memfs.Stat("/doc.txt.temp"); err == nil {
		t.Error("recovery file not removed")
	}
	if _, typ := next.app.Status().Message(); typ != statusline.MessageWarning {
		t.Errorf("message type = %v, want warning", typ)
	}
}

func TestSaveRecoverySkipsCleanDocument(t *testing.T) {
	env := newTestEnv(t, 30, 5)
	env.fs.AddFile("/doc.txt", "ab")
	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}
	env.app.SaveRecovery()
	if _, err := env.fs.Stat("/doc.txt.temp"); err == nil {
		t.Error("recovery written for unmodified document")
	}
}

func TestSignalWritesUntitledRecovery(t *testing.T) {
	memfs := vfs.NewMemFS()
	untitled := []project.Option{project.WithUntitledPath("/state/untitled")}

	sigs := make(chan os.Signal, 1)
	env := newTestEnvConfig(t, config.Default(), memfs, untitled, 30, 5, WithSignals(sigs))
	if err := env.app.Open(""); err != nil {
		t.Fatal(err)
	}
	env.typeText(t, "draft")

	sigs <- syscall.SIGHUP
	if err := env.app.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if got := env.file(t, "/state/untitled.temp"); got != "draft" {
		t.Fatalf("recovery = %q", got)
	}

	next := newTestEnvConfig(t, config.Default(), memfs, untitled, 30, 5)
	if err := next.app.Open(""); err != nil {
		t.Fatal(err)
	}
	if next.app.Text().Text() != "draft" || !next.app.Document().IsModified() {
		t.Errorf("recovered text = %q modified = %v", next.app.Text().Text(), next.app.Document().IsModified())
	}
	if next.app.Project().Path() != "" {
		t.Errorf("path = %q, want unnamed", next.app.Project().Path())
	}
	if msg, _ := next.app.Status().Message(); msg != "Recovered unsaved changes from untitled.temp" {
		t.Errorf("message = %q", msg)
	}
}

func TestOpenRecoveryNotRemovable(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.AddFile("/doc.txt", "ab")
	memfs.AddFile("/doc.txt.temp", "xab")
	memfs.FailRemoves = true

	env := newTestEnvFS(t, memfs, 30, 5)
	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatalf("Open = %v", err)
	}
	if env.app.Text().Text() != "xab" || !env.app.Document().IsModified() {
		t.Errorf("text = %q modified = %v, want recovered content", env.app.Text().Text(), env.app.Document().IsModified())
	}
	if _, typ := env.app.Status().Message(); typ != statusline.MessageWarning {
		t.Errorf("message type = %v, want warning", typ)
	}
}

func TestFileNameBarDimsWithoutFocus(t *testing.T) {
	cfg := config.Default()
	black, white := core.ColorFromRGB(0, 0, 0), core.ColorFromRGB(255, 255, 255)
	cfg.Theme.FileNameText = black
	cfg.Theme.FileNameBackground = white

	env := newTestEnvConfig(t, cfg, vfs.NewMemFS(), nil, 30, 5)
	if err := env.app.Open("/doc.txt"); err != nil {
		t.Fatal(err)
	}
	env.app.Render()

	dimmed := black.Blend(white, InactiveDim)
	if dimmed.Equals(black) || dimmed.Equals(white) {
		t.Fatalf("blend = %v, want a color between black and white", dimmed)
	}
	if c := env.be.ShownCell(0, 0); !c.Style.Foreground.Equals(dimmed) {
		t.Errorf("inactive file name fg = %v, want %v", c.Style.Foreground, dimmed)
	}

	if err := env.app.Execute(CmdSaveAs); err != nil {
		t.Fatal(err)
	}
	if got := env.app.FileName().Colors().Text; !got.Equals(black) {
		t.Errorf("focused file name fg = %v, want %v", got, black)
	}

	if err := env.app.Execute(CmdCancel); err != nil {
		t.Fatal(err)
	}
	if got := env.app.FileName().Colors().Text; !got.Equals(dimmed) {
		t.Errorf("file name fg after cancel = %v, want %v", got, dimmed)
	}
}

const (
	ctrlMod  = backend.ModCtrl
	shiftMod = backend.ModShift
)

type keyArgs struct {
	r   rune
	mod backend.ModMask
}

func (k keyArgs) event() backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: k.r, Mod: k.mod}
}
