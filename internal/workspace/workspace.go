// Package workspace ties views to buffers: it owns every open Buffer,
// routes each view to the buffer backing it, and notifies subscribers of
// structural changes (buffers opening/closing, views appearing/going away,
// saves). A single buffer may back many views.
package workspace

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/syntax"
	"github.com/dshills/scribe/internal/theme"
)

// Errors returned by workspace operations.
var (
	ErrViewNotFound   = errors.New("workspace: view not found")
	ErrBufferNotFound = errors.New("workspace: buffer not found")
	ErrNoPath         = errors.New("workspace: buffer has no associated path")
)

// BufferID identifies one open buffer within a workspace.
type BufferID uint64

// ViewID identifies one view within a workspace. Distinct from
// buffer.ViewID, which is scoped to a single buffer; a workspace ViewID is
// the handle callers use, and internally maps to a (BufferID, buffer.ViewID)
// pair.
type ViewID uint64

type viewEntry struct {
	bufID     BufferID
	innerView buffer.ViewID
}

// Workspace owns every open buffer and routes views to them.
type Workspace struct {
	mu sync.RWMutex

	buffers map[BufferID]*buffer.Buffer
	views   map[ViewID]viewEntry

	nextBufID BufferID
	nextView  ViewID

	theme *theme.Theme

	subscribers []func(Event)

	logger *zap.SugaredLogger
}

// Option configures a Workspace at construction time.
type Option func(*Workspace)

// WithTheme sets the workspace's active theme. Defaults to theme.DefaultTheme().
func WithTheme(t *theme.Theme) Option {
	return func(w *Workspace) { w.theme = t }
}

// WithLogger sets the workspace's structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates an empty workspace with no open buffers or views.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		buffers: make(map[BufferID]*buffer.Buffer),
		views:   make(map[ViewID]viewEntry),
		theme:   theme.DefaultTheme(),
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(w)
	}
	syntax.Init(w.logger)
	return w
}

// NewView opens path (or, if path is "", a new scratch buffer) and returns a
// view onto it initialized with a single caret at position 0. If a buffer is
// already open for path, a new view is created onto the existing buffer
// rather than reloading it from disk.
func (w *Workspace) NewView(path string) (ViewID, error) {
	w.mu.Lock()

	if path != "" {
		for id, buf := range w.buffers {
			if buf.Path() == path {
				view, events := w.addView(id, buf)
				w.notify(events)
				return view, nil
			}
		}
	}

	var buf *buffer.Buffer
	if path == "" {
		buf = buffer.NewBuffer()
	} else {
		f, err := os.Open(path)
		if err != nil {
			w.mu.Unlock()
			return 0, err
		}
		var openErr error
		buf, openErr = newBufferFromFile(f, path)
		f.Close()
		if openErr != nil {
			w.mu.Unlock()
			return 0, openErr
		}
	}

	if desc := languageForPath(path); desc != nil {
		buf.SetLanguage(desc)
	}

	w.nextBufID++
	bufID := w.nextBufID
	w.buffers[bufID] = buf

	events := []Event{{Kind: BufferOpened, BufferID: bufID, Path: path}}
	view, moreEvents := w.addView(bufID, buf)
	events = append(events, moreEvents...)

	w.notify(events)
	return view, nil
}

func newBufferFromFile(r io.Reader, path string) (*buffer.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	buf, err := buffer.NewBufferFromReader(
		strings.NewReader(text),
		buffer.WithPath(path),
		buffer.WithDetectedLineEnding(text),
	)
	if err != nil {
		return nil, err
	}
	buf.MarkPristine()
	return buf, nil
}

// addView allocates a new workspace ViewID backed by bufID/buf and returns
// it along with the events the caller should notify after unlocking.
// Caller must hold w.mu.
func (w *Workspace) addView(bufID BufferID, buf *buffer.Buffer) (ViewID, []Event) {
	inner := buf.NewView()

	w.nextView++
	id := w.nextView
	w.views[id] = viewEntry{bufID: bufID, innerView: inner}

	return id, []Event{{Kind: ViewAdded, BufferID: bufID, ViewID: id}}
}

// CloseView closes view id. If it was the last view onto its buffer, the
// buffer is closed too.
func (w *Workspace) CloseView(id ViewID) error {
	w.mu.Lock()

	entry, ok := w.views[id]
	if !ok {
		w.mu.Unlock()
		return ErrViewNotFound
	}
	delete(w.views, id)

	buf, ok := w.buffers[entry.bufID]
	if !ok {
		w.mu.Unlock()
		return ErrBufferNotFound
	}
	buf.CloseView(entry.innerView)
	events := []Event{{Kind: ViewRemoved, BufferID: entry.bufID, ViewID: id}}

	if buf.ViewCount() == 0 {
		delete(w.buffers, entry.bufID)
		events = append(events, Event{Kind: BufferClosed, BufferID: entry.bufID})
	}

	w.notify(events)
	return nil
}

// Buffer returns the buffer backing view id, and the buffer.ViewID the
// caller should pass to Buffer operations.
func (w *Workspace) Buffer(id ViewID) (*buffer.Buffer, buffer.ViewID, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	entry, ok := w.views[id]
	if !ok {
		return nil, 0, ErrViewNotFound
	}
	buf, ok := w.buffers[entry.bufID]
	if !ok {
		return nil, 0, ErrBufferNotFound
	}
	return buf, entry.innerView, nil
}

// BufferAndTheme is Buffer plus the workspace's active theme, the pair a
// renderer needs to call LineAttributes.
func (w *Workspace) BufferAndTheme(id ViewID) (*buffer.Buffer, buffer.ViewID, *theme.Theme, error) {
	buf, inner, err := w.Buffer(id)
	if err != nil {
		return nil, 0, nil, err
	}
	w.mu.RLock()
	t := w.theme
	w.mu.RUnlock()
	return buf, inner, t, nil
}

// Theme returns the workspace's active theme.
func (w *Workspace) Theme() *theme.Theme {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.theme
}

// SetTheme replaces the workspace's active theme.
func (w *Workspace) SetTheme(t *theme.Theme) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = t
}

// Save writes view id's buffer to path (or, if path is "", the buffer's
// existing path), marking it pristine on success. Buffer state is
// unchanged if the write fails.
func (w *Workspace) Save(id ViewID, path string) error {
	w.mu.Lock()
	entry, ok := w.views[id]
	if !ok {
		w.mu.Unlock()
		return ErrViewNotFound
	}
	buf, ok := w.buffers[entry.bufID]
	w.mu.Unlock()
	if !ok {
		return ErrBufferNotFound
	}

	if path == "" {
		path = buf.Path()
	}
	if path == "" {
		return ErrNoPath
	}

	if err := os.WriteFile(path, []byte(buf.Text()), 0o644); err != nil {
		return err
	}
	buf.MarkPristine()

	w.mu.Lock()
	w.notify([]Event{{Kind: BufferSaved, BufferID: entry.bufID, Path: path}})
	return nil
}

// ViewCount returns the number of currently open views.
func (w *Workspace) ViewCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.views)
}

// BufferCount returns the number of currently open buffers.
func (w *Workspace) BufferCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.buffers)
}
