// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"github.com/recwave/recwave/internal/domain"
)

// EventBus is the interface for publishing and subscribing to domain events.
//
// Implementations must be thread-safe as events may be published from
// multiple goroutines (capture callbacks, timers, UI handlers).
type EventBus interface {
	// Publish delivers an event to all subscribers of its type.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Returns a unique subscription ID that can be used to unsubscribe.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// HasSubscribers reports whether anyone is listening for the given type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the bus and clears all subscriptions.
	Close() error
}
