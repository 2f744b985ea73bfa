package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewViewScratch(t *testing.T) {
	ws := New()

	id, err := ws.NewView("")
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if ws.ViewCount() != 1 {
		t.Errorf("ViewCount() = %d, want 1", ws.ViewCount())
	}
	if ws.BufferCount() != 1 {
		t.Errorf("BufferCount() = %d, want 1", ws.BufferCount())
	}

	buf, inner, err := ws.Buffer(id)
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if buf.Text() != "" {
		t.Errorf("new scratch buffer Text() = %q, want empty", buf.Text())
	}
	if set := buf.Selections(inner); set == nil || len(set.Sels) != 1 {
		t.Fatalf("expected one caret after NewView, got %v", set)
	}
}

func TestNewViewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := New()
	id, err := ws.NewView(path)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	buf, _, err := ws.Buffer(id)
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if buf.Text() != "package main\n" {
		t.Errorf("Text() = %q, want %q", buf.Text(), "package main\n")
	}
	if !buf.IsPristine() {
		t.Error("freshly loaded buffer should be pristine")
	}
	if buf.Layer().Tree() == nil {
		t.Error("a .go file should get a parsed syntax tree")
	}
}

func TestNewViewSharesBufferForSamePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := New()
	id1, err := ws.NewView(path)
	if err != nil {
		t.Fatalf("NewView #1: %v", err)
	}
	id2, err := ws.NewView(path)
	if err != nil {
		t.Fatalf("NewView #2: %v", err)
	}
	if id1 == id2 {
		t.Fatal("expected two distinct view ids")
	}

	buf1, _, _ := ws.Buffer(id1)
	buf2, _, _ := ws.Buffer(id2)
	if buf1 != buf2 {
		t.Error("two views onto the same path should share one buffer")
	}
	if ws.BufferCount() != 1 {
		t.Errorf("BufferCount() = %d, want 1", ws.BufferCount())
	}
	if ws.ViewCount() != 2 {
		t.Errorf("ViewCount() = %d, want 2", ws.ViewCount())
	}
}

func TestCloseViewClosesBufferWhenLast(t *testing.T) {
	ws := New()
	id, err := ws.NewView("")
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	if err := ws.CloseView(id); err != nil {
		t.Fatalf("CloseView: %v", err)
	}
	if ws.ViewCount() != 0 {
		t.Errorf("ViewCount() = %d, want 0", ws.ViewCount())
	}
	if ws.BufferCount() != 0 {
		t.Errorf("BufferCount() = %d, want 0", ws.BufferCount())
	}

	if err := ws.CloseView(id); err != ErrViewNotFound {
		t.Errorf("closing an already-closed view: got %v, want ErrViewNotFound", err)
	}
}

func TestCloseViewKeepsBufferWithRemainingViews(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	os.WriteFile(path, []byte("package a\n"), 0o644)

	ws := New()
	id1, _ := ws.NewView(path)
	id2, _ := ws.NewView(path)

	if err := ws.CloseView(id1); err != nil {
		t.Fatalf("CloseView: %v", err)
	}
	if ws.BufferCount() != 1 {
		t.Errorf("BufferCount() = %d, want 1 (second view keeps buffer alive)", ws.BufferCount())
	}

	if _, _, err := ws.Buffer(id2); err != nil {
		t.Errorf("remaining view should still resolve: %v", err)
	}
}

func TestSaveWritesFileAndMarksPristine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	ws := New()
	id, err := ws.NewView("")
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	buf, _, _ := ws.Buffer(id)
	if _, err := buf.InsertText(0, "hello"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := ws.Save(id, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("saved content = %q, want %q", data, "hello")
	}
	if !buf.IsPristine() {
		t.Error("buffer should be pristine after a successful save")
	}
}

func TestSaveWithNoPathFails(t *testing.T) {
	ws := New()
	id, _ := ws.NewView("")

	if err := ws.Save(id, ""); err != ErrNoPath {
		t.Errorf("Save with no path: got %v, want ErrNoPath", err)
	}
}

func TestSubscribeReceivesStructuralEvents(t *testing.T) {
	ws := New()

	var kinds []EventKind
	ws.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	id, err := ws.NewView("")
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if err := ws.CloseView(id); err != nil {
		t.Fatalf("CloseView: %v", err)
	}

	want := []EventKind{BufferOpened, ViewAdded, ViewRemoved, BufferClosed}
	if len(kinds) != len(want) {
		t.Fatalf("got %v events, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("event %d = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestSaveSessionAndLoadSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.go")
	os.WriteFile(docPath, []byte("package doc\n\nfunc F() {}\n"), 0o644)

	ws := New()
	id, err := ws.NewView(docPath)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	buf, inner, _ := ws.Buffer(id)
	if err := buf.MoveRight(inner); err != nil {
		t.Fatalf("MoveRight: %v", err)
	}

	sessionPath := filepath.Join(dir, "session.json")
	if err := ws.SaveSession(sessionPath); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("session file is empty")
	}

	ws2 := New()
	restored, err := ws2.LoadSession(sessionPath)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(restored) != 1 {
		t.Fatalf("restored %d views, want 1", len(restored))
	}

	buf2, inner2, err := ws2.Buffer(restored[0])
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if buf2.Text() != buf.Text() {
		t.Errorf("restored text = %q, want %q", buf2.Text(), buf.Text())
	}
	set := buf2.Selections(inner2)
	if set == nil || len(set.Sels) != 1 || set.Sels[0].Cursor() != 1 {
		t.Errorf("restored cursor = %v, want caret at 1", set)
	}
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]bool{
		"main.go":   true,
		"lib.rs":    true,
		"Makefile":  false, // "make" is not a registered grammar
		"notes.txt": false,
	}
	for path, wantFound := range cases {
		got := languageForPath(path) != nil
		if got != wantFound {
			t.Errorf("languageForPath(%q) found = %v, want %v", path, got, wantFound)
		}
	}
}
