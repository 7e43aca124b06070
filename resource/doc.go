// Package resource provides the fixed-capacity handle table behind open streams.
//
// A Table maps small integer handles to Go values. Slot 0 is reserved and
// never handed out; the table is allocated once and never grows.
//
// # Handle Lifecycle
//
// Opening a stream is a two-step reservation so the slot is claimed before
// any filesystem work happens:
//
//	table := resource.NewTable(resource.DefaultCapacity)
//
//	h, err := table.Allocate() // lowest free slot >= 1, or ErrExhausted
//	table.Set(h, stream)       // bind the opened stream
//
//	value, ok := table.Get(h)
//	value, ok = table.Release(h) // slot is empty again
//
// A reserved slot whose open failed is simply released without ever being
// bound. Reusing a handle after Release is a caller error.
//
// # Observers
//
// Register observers to track slot lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    logger.Debug("handle", zap.Uint32("handle", uint32(e.Handle)),
//	        zap.Stringer("event", e.Type))
//	}))
//
// # Shutdown
//
// Close drops every live value implementing Dropper and stops further
// allocation. The platform layer calls it once during process teardown.
package resource
