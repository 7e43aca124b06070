package resource

import (
	"errors"
	"reflect"
	"sync"
)

// ErrExhausted is returned by Allocate when no slot is free.
var ErrExhausted = errors.New("out of handles")

// Table is a fixed-capacity slot table. Slots are handed out lowest index
// first, starting at 1; the table never grows.
type Table struct {
	slots     []slot
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

type slot struct {
	value    any
	reserved bool
}

// NewTable creates a table with the given capacity. Capacities below 2
// (which would leave no usable slot) fall back to DefaultCapacity.
func NewTable(capacity int) *Table {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &Table{
		slots: make([]slot, capacity),
	}
}

// Allocate reserves the lowest-indexed empty slot >= 1.
// Returns ErrExhausted when every slot is taken or the table is closed.
func (t *Table) Allocate() (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.closed {
		for i := 1; i < len(t.slots); i++ {
			if !t.slots[i].reserved {
				t.slots[i].reserved = true
				return Handle(i), nil
			}
		}
	}
	return Invalid, ErrExhausted
}

// Set binds a value to a reserved slot.
func (t *Table) Set(h Handle, value any) bool {
	t.mu.Lock()
	if !t.validLocked(h) {
		t.mu.Unlock()
		return false
	}
	t.slots[h].value = value
	t.mu.Unlock()

	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		Value:  value,
	})
	return true
}

// Get retrieves the value bound to a handle.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validLocked(h) || t.slots[h].value == nil {
		return nil, false
	}
	return t.slots[h].value, true
}

// Release clears a slot unconditionally and returns the value it held.
// The caller owns any cleanup of the returned value.
func (t *Table) Release(h Handle) (any, bool) {
	t.mu.Lock()
	if !t.validLocked(h) {
		t.mu.Unlock()
		return nil, false
	}
	value := t.slots[h].value
	t.slots[h] = slot{}
	t.mu.Unlock()

	if value != nil {
		t.notify(Event{
			Type:   EventDropped,
			Handle: h,
			Value:  value,
		})
	}
	return value, true
}

// Len returns the number of reserved slots.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].reserved {
			count++
		}
	}
	return count
}

// Cap returns the table capacity, including reserved slot 0.
func (t *Table) Cap() int {
	return len(t.slots)
}

// Each iterates over bound slots in handle order.
func (t *Table) Each(fn func(Handle, any) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].reserved && t.slots[i].value != nil {
			if !fn(Handle(i), t.slots[i].value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Observers of uncomparable types, such
// as ObserverFunc, are never matched and stay subscribed.
func (t *Table) Unsubscribe(o Observer) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return
	}
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if reflect.TypeOf(obs).Comparable() && obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close drops every live value and stops handing out slots.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var live []Event
	for i := 1; i < len(t.slots); i++ {
		if v := t.slots[i].value; v != nil {
			if d, ok := v.(Dropper); ok {
				d.Drop()
			}
			live = append(live, Event{Type: EventDropped, Handle: Handle(i), Value: v})
		}
		t.slots[i] = slot{}
	}
	t.mu.Unlock()

	for _, e := range live {
		t.notify(e)
	}
	return nil
}

func (t *Table) validLocked(h Handle) bool {
	return h != Invalid && int(h) < len(t.slots) && t.slots[h].reserved
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
