package plugin

import "sync"

// memResourceTable is the reference ResourceTable implementation: a plain
// mutex-guarded map keyed by a monotonically increasing handle. The engine
// package's Store wraps one of these per instance; GraphHead uses one too,
// standing in for the "store" at the external dispatch boundary where no
// guest store exists yet to own wrapper entries.
type memResourceTable struct {
	mu      sync.Mutex
	next    ResourceHandle
	entries map[ResourceHandle]ResourceWrapper
}

// NewResourceTable constructs the reference ResourceTable implementation.
func NewResourceTable() ResourceTable {
	return &memResourceTable{entries: make(map[ResourceHandle]ResourceWrapper)}
}

func (t *memResourceTable) Push(wrapper ResourceWrapper) (ResourceHandle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	h := t.next
	t.entries[h] = wrapper
	return h, nil
}

func (t *memResourceTable) Get(handle ResourceHandle) (ResourceWrapper, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.entries[handle]
	return w, ok
}

func (t *memResourceTable) Delete(handle ResourceHandle) (ResourceWrapper, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.entries[handle]
	delete(t.entries, handle)
	return w, ok
}
