package engine

import (
	"sync"

	"github.com/go-lynx/wasplug/plugin"
)

// frameTable is the indirection this adapter uses in place of real
// canonical-ABI lowering (see package doc): a host-side, per-call-boundary
// table mapping a guest-visible i32 handle to the actual []plugin.Val list
// being passed across. Every DefineFunc/Func.Call goes through one of
// these.
type frameTable struct {
	mu     sync.Mutex
	next   int32
	frames map[int32][]plugin.Val
}

func newFrameTable() *frameTable {
	return &frameTable{frames: make(map[int32][]plugin.Val)}
}

func (t *frameTable) push(vals []plugin.Val) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	h := t.next
	t.frames[h] = vals
	return h
}

func (t *frameTable) pop(handle int32) []plugin.Val {
	t.mu.Lock()
	defer t.mu.Unlock()
	vals := t.frames[handle]
	delete(t.frames, handle)
	return vals
}
