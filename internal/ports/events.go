package ports

import "context"

const (
	// EventCategoryMounted is emitted when a category page mounts its store.
	EventCategoryMounted = "category.mounted"
	// EventCategoryUnmounted is emitted when the user navigates away from a category.
	EventCategoryUnmounted = "category.unmounted"
	// EventColorToggled is emitted after a color toggle was applied.
	EventColorToggled = "selection.color_toggled"
	// EventOptionToggled is emitted after a texture/fabric/shape/pattern toggle.
	EventOptionToggled = "selection.option_toggled"
	// EventShadeModeChanged is emitted when the store's shade mode changes.
	EventShadeModeChanged = "selection.shade_mode_changed"
	// EventColorFamilyChanged is emitted when the color family filter changes.
	EventColorFamilyChanged = "selection.color_family_changed"
	// EventProductSelected is emitted when a product card is picked.
	EventProductSelected = "selection.product_selected"
	// EventSelectionCleared is emitted after a category's selection was cleared.
	EventSelectionCleared = "selection.cleared"
	// EventPreconditionViolated is emitted when a UI event broke a controller contract.
	EventPreconditionViolated = "selection.precondition_violated"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are surfaced
// via returned errors so publishers can log diagnostics and continue
// delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events.
type Subscription interface {
	Unsubscribe()
}

// Event is the plain DomainEvent used by the application layer.
type Event struct {
	Type string
	Data map[string]interface{}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Data }
