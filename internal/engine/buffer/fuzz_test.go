package buffer

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/dshills/scribe/internal/engine/rope"
)

// bufferOp is one step of a scripted edit/motion sequence applied to a
// single view, mirroring the original implementation's buffer fuzz target
// (a scripted sequence of inserts/moves/deletes checked against the
// buffer's invariants after every step).
type bufferOp int

const (
	opInsert bufferOp = iota
	opInsertNewline
	opMoveUp
	opMoveDown
	opMoveLeft
	opMoveRight
	opMoveUpModify
	opMoveDownModify
	opMoveLeftModify
	opMoveRightModify
	opDeleteForward
	opDeleteBackward
	opUndo
	opRedo
	numBufferOps
)

// Generate implements quick.Generator so testing/quick can produce random
// op sequences directly, without a custom driver loop.
func (bufferOp) Generate(r *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(bufferOp(r.Intn(int(numBufferOps))))
}

func applyBufferOp(b *Buffer, view ViewID, op bufferOp) {
	switch op {
	case opInsert:
		_ = b.Insert(view, "x")
	case opInsertNewline:
		_ = b.InsertNewline(view)
	case opMoveUp:
		_ = b.MoveUp(view)
	case opMoveDown:
		_ = b.MoveDown(view)
	case opMoveLeft:
		_ = b.MoveLeft(view)
	case opMoveRight:
		_ = b.MoveRight(view)
	case opMoveUpModify:
		_ = b.MoveUpAndModifySelection(view)
	case opMoveDownModify:
		_ = b.MoveDownAndModifySelection(view)
	case opMoveLeftModify:
		_ = b.MoveLeftAndModifySelection(view)
	case opMoveRightModify:
		_ = b.MoveRightAndModifySelection(view)
	case opDeleteForward:
		_ = b.DeleteForward(view)
	case opDeleteBackward:
		_ = b.DeleteBackward(view)
	case opUndo:
		_ = b.Undo(view)
	case opRedo:
		_ = b.Redo(view)
	}
}

// checkInvariants asserts the round-trip and bounds invariants spec §3/§8
// require to hold after every single edit, not just at the end of a
// sequence.
func checkInvariants(t *testing.T, b *Buffer, view ViewID) {
	t.Helper()

	b.mu.RLock()
	defer b.mu.RUnlock()

	totalChars := b.rope.LenChars()
	totalBytes := b.rope.Len()

	for c := rope.CharOffset(0); c <= totalChars; c++ {
		byteOff := b.rope.CharToByte(c)
		if back := b.rope.ByteToChar(byteOff); back != c {
			t.Fatalf("char->byte->char round trip broke at char %d: byte=%d back=%d", c, byteOff, back)
		}
	}

	set, ok := b.views[view]
	if !ok {
		t.Fatalf("view %d missing from views map", view)
	}
	if len(set.Sels) == 0 {
		t.Fatal("selection set must never be empty")
	}
	for _, sel := range set.Sels {
		if sel.Left() > totalChars || sel.Right() > totalChars {
			t.Fatalf("selection %v out of bounds (len=%d chars, %d bytes)", sel, totalChars, totalBytes)
		}
	}
}

func TestBufferFuzzInvariants(t *testing.T) {
	f := func(ops []bufferOp) bool {
		if len(ops) > 200 {
			ops = ops[:200]
		}
		b := NewBuffer()
		view := b.NewView()

		for _, op := range ops {
			applyBufferOp(b, view, op)
			checkInvariants(t, b, view)
		}
		return true
	}

	cfg := &quick.Config{MaxCount: 50}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}
