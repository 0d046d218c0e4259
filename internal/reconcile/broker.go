package reconcile

import "sync"

// Broker is an in-process change feed. Mutating services publish the table
// they touched; views subscribe to know when to refetch. Both a polling
// syncer and the websocket hub can sit behind the same subscription.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[int]func()
	next int
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[int]func())}
}

// Subscribe registers onChange for a table and returns its unsubscribe
// function. Unsubscribing twice is a no-op.
func (b *Broker) Subscribe(table string, onChange func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[table] == nil {
		b.subs[table] = make(map[int]func())
	}
	id := b.next
	b.next++
	b.subs[table][id] = onChange

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[table], id)
	}
}

// Publish notifies every subscriber of table. Handlers must not block;
// in practice they are Syncer.Trigger, which never does.
func (b *Broker) Publish(table string) {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs[table]))
	for _, fn := range b.subs[table] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
