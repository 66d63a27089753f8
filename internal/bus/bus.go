// Package bus implements synchronous per-key publish/subscribe used to tell
// collaborators that store data has changed.
package bus

import (
	apperrors "github.com/umalmyha/fieldops/internal/errors"
)

// DataKey scopes subscription to single collection or to any collection
type DataKey string

const (
	Customers     DataKey = "customers"
	Jobs          DataKey = "jobs"
	Team          DataKey = "team"
	Invoices      DataKey = "invoices"
	Notifications DataKey = "notifications"
	All           DataKey = "all" // notified on every change of any collection
)

// CollectionKeys returns keys of all collections in fixed order, All is not included
func CollectionKeys() []DataKey {
	return []DataKey{Customers, Jobs, Team, Invoices, Notifications}
}

// Valid reports whether k is known key
func (k DataKey) Valid() bool {
	switch k {
	case Customers, Jobs, Team, Invoices, Notifications, All:
		return true
	default:
		return false
	}
}

type subscription struct {
	fn     func()
	active bool
}

// Bus maps data keys to callbacks invoked in registration order.
// Bus is not safe for concurrent use.
type Bus struct {
	subs       map[DataKey][]*subscription
	delivering int
}

// New builds empty Bus
func New() *Bus {
	return &Bus{subs: make(map[DataKey][]*subscription)}
}

// Subscribe registers callback for key and returns function removing it.
// Returned function may be called any number of times.
// Subscribing to unknown key or with nil callback is a programming error and panics.
func (b *Bus) Subscribe(key DataKey, fn func()) func() {
	if !key.Valid() {
		panic(apperrors.ErrUnknownDataKey)
	}

	if fn == nil {
		panic("bus: nil subscription callback")
	}

	sub := &subscription{fn: fn, active: true}
	b.subs[key] = append(b.subs[key], sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		b.remove(key, sub)
	}
}

func (b *Bus) remove(key DataKey, sub *subscription) {
	subs := b.subs[key]
	for i, s := range subs {
		if s == sub {
			// fresh slice, so delivery in progress keeps iterating over its own copy
			rest := make([]*subscription, 0, len(subs)-1)
			rest = append(rest, subs[:i]...)
			rest = append(rest, subs[i+1:]...)
			b.subs[key] = rest
			return
		}
	}
}

// Publish delivers notification for every key once, in given order, followed by All.
// Duplicate keys are delivered once. Callbacks unsubscribed while delivery is running
// are not invoked afterwards, callbacks subscribed while delivery is running are not
// invoked until next Publish.
func (b *Bus) Publish(keys ...DataKey) {
	if len(keys) == 0 {
		return
	}

	b.delivering++
	defer func() { b.delivering-- }()

	for _, key := range Ordered(keys...) {
		for _, sub := range b.subs[key] {
			if sub.active {
				sub.fn()
			}
		}
	}
}

// Delivering reports whether notification delivery is in progress
func (b *Bus) Delivering() bool {
	return b.delivering > 0
}

// Subscribers returns number of callbacks registered for key
func (b *Bus) Subscribers(key DataKey) int {
	return len(b.subs[key])
}

// Ordered deduplicates keys keeping first occurrence and appends All as the last key
func Ordered(keys ...DataKey) []DataKey {
	seen := make(map[DataKey]struct{}, len(keys)+1)
	ordered := make([]DataKey, 0, len(keys)+1)
	for _, k := range keys {
		if k == All {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ordered = append(ordered, k)
	}
	return append(ordered, All)
}
