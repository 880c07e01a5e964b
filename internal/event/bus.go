package event

import "sync"

// Event names published on the bus
const (
	// ConfigChanged - settings were saved; payload is the changed category
	ConfigChanged = "config-changed"
	// AutoBackupCompleted - a periodic backup finished; payload is the
	// completion time in RFC 3339
	AutoBackupCompleted = "auto-backup-completed"
	// DatabaseRestored - the database was replaced from an archive;
	// payload is the source archive name
	DatabaseRestored = "database-restored"
)

// Categories carried as the ConfigChanged payload
const (
	CategoryBackup     = "backup"
	CategoryAppearance = "appearance"
	CategoryTray       = "tray"
)

// Handler receives the payload of a published event
type Handler func(payload any)

// Bus is an in-process publish/subscribe event bus. Publish is
// synchronous: it returns after every subscriber has run.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers fn for events published under name and returns a
// function that removes the subscription
func (b *Bus) Subscribe(name string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[name] == nil {
		b.subs[name] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[name][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[name], id)
	}
}

// Publish delivers payload to every subscriber of name. Handlers run on
// the caller's goroutine, outside the bus lock, so they may subscribe
// or unsubscribe without deadlocking.
func (b *Bus) Publish(name string, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[name]))
	for _, fn := range b.subs[name] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(payload)
	}
}
