// Package notify fans application events out to registered providers.
// A provider is any callback interested in events such as a finished
// exam attempt or a completed import.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is a named application event with an arbitrary payload.
type Event struct {
	Name    string
	Payload any
}

// Provider consumes events. Providers must not block; slow consumers
// should hand off internally.
type Provider func(Event)

type registration struct {
	token int
	fn    Provider
}

// Notifier is a concurrency-safe provider registry. Providers are kept
// in registration order and Emit delivers in that order. A panicking
// provider is logged and does not disturb the others.
type Notifier struct {
	mu        sync.Mutex
	next      int
	providers []registration
	log       zerolog.Logger
}

func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{log: log}
}

// Register adds a provider and returns a token for Unregister.
func (n *Notifier) Register(p Provider) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	token := n.next
	n.next++
	n.providers = append(n.providers, registration{token: token, fn: p})
	return token
}

// Unregister removes the provider registered under token. Returns
// false if the token is unknown or already removed.
func (n *Notifier) Unregister(token int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, reg := range n.providers {
		if reg.token == token {
			n.providers = append(n.providers[:i], n.providers[i+1:]...)
			return true
		}
	}
	return false
}

// Emit delivers the event to every registered provider, oldest
// registration first.
func (n *Notifier) Emit(event Event) {
	n.mu.Lock()
	providers := make([]Provider, len(n.providers))
	for i, reg := range n.providers {
		providers[i] = reg.fn
	}
	n.mu.Unlock()

	for _, p := range providers {
		n.deliver(p, event)
	}
}

func (n *Notifier) deliver(p Provider, event Event) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().
				Interface("panic", r).
				Str("event", event.Name).
				Msg("notification provider panicked")
		}
	}()
	p(event)
}
