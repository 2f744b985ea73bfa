package workspace

import (
	"os"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
)

// SaveSession writes every open buffer's path and every view's cursor
// positions to path as a small, human-diffable JSON document. Buffers with
// no associated path (scratch buffers) are skipped: there is nothing to
// reopen them from.
func (w *Workspace) SaveSession(path string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc := "{}"
	var err error

	for _, buf := range w.buffers {
		if buf.Path() == "" {
			continue
		}
		doc, err = sjson.Set(doc, "buffers.-1", buf.Path())
		if err != nil {
			return err
		}
	}

	j := 0
	for id, entry := range w.views {
		buf, ok := w.buffers[entry.bufID]
		if !ok || buf.Path() == "" {
			continue
		}
		prefix := "views." + strconv.Itoa(j)
		doc, err = sjson.Set(doc, prefix+".id", uint64(id))
		if err != nil {
			return err
		}
		doc, err = sjson.Set(doc, prefix+".path", buf.Path())
		if err != nil {
			return err
		}
		if sel := buf.Selections(entry.innerView); sel != nil && len(sel.Sels) > 0 {
			doc, err = sjson.Set(doc, prefix+".cursor", uint64(sel.Sels[0].Cursor()))
			if err != nil {
				return err
			}
		}
		j++
	}

	formatted := pretty.Pretty([]byte(doc))
	return os.WriteFile(path, formatted, 0o644)
}

// sessionView describes one restored view: the buffer path it should open
// and the char offset its caret should start at.
type sessionView struct {
	path   string
	cursor rope.CharOffset
}

// parseSession reads a session document written by SaveSession.
func parseSession(path string) ([]sessionView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var views []sessionView
	gjson.GetBytes(data, "views").ForEach(func(_, v gjson.Result) bool {
		p := v.Get("path").String()
		if p == "" {
			return true
		}
		views = append(views, sessionView{
			path:   p,
			cursor: rope.CharOffset(v.Get("cursor").Int()),
		})
		return true
	})
	return views, nil
}

// LoadSession reads a session document previously written by SaveSession,
// opens a view onto every buffer path it names, and restores each view's
// caret to its saved position. It returns the newly opened views in
// session order; a path that fails to open is skipped rather than
// aborting the rest of the restore.
func (w *Workspace) LoadSession(path string) ([]ViewID, error) {
	sessViews, err := parseSession(path)
	if err != nil {
		return nil, err
	}

	ids := make([]ViewID, 0, len(sessViews))
	for _, sv := range sessViews {
		id, err := w.NewView(sv.path)
		if err != nil {
			continue
		}
		if buf, inner, bErr := w.Buffer(id); bErr == nil {
			buf.SetSelections(inner, cursor.NewSet(sv.cursor))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
