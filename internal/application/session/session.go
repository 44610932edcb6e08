// Package session owns one try-on session: the single render aggregator and
// the controller of the currently mounted category. UI events are dispatched
// one at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/render"
	"github.com/unveels/tryon/internal/domain/selection"
	"github.com/unveels/tryon/internal/infrastructure/logging"
	"github.com/unveels/tryon/internal/ports"
	apperrors "github.com/unveels/tryon/pkg/errors"
)

// ErrNotMounted is returned for category actions with nothing mounted.
var ErrNotMounted = errors.New("no category is mounted")

// Options configures a Session.
type Options struct {
	Products ports.ProductSource
	Logger   ports.Logger
	Events   ports.EventPublisher
	Engines  []render.Engine
	// Strict turns precondition violations into panics.
	Strict bool
	// ID overrides the generated session id.
	ID string
}

// Session coordinates mount/unmount and dispatch for one user. Navigating to
// another category unmounts the previous one.
type Session struct {
	id       string
	rules    []selection.Rules
	byID     map[selection.Category]selection.Rules
	products ports.ProductSource
	agg      *render.Aggregator
	logger   ports.Logger
	events   ports.EventPublisher
	strict   bool

	mu      sync.Mutex
	ctx     context.Context
	active  *selection.Controller
	cards   []catalog.Product
}

// New builds a session and its aggregator from the rule tables.
func New(rules []selection.Rules, opts Options) (*Session, error) {
	owners, err := selection.OwnershipMap(rules)
	if err != nil {
		return nil, apperrors.NewValidationError("categories", err.Error(), err)
	}
	agg, err := render.NewAggregator(owners, opts.Engines...)
	if err != nil {
		return nil, fmt.Errorf("create aggregator: %w", err)
	}

	byID := make(map[selection.Category]selection.Rules, len(rules))
	for _, r := range rules {
		byID[r.Category] = r
	}

	id := opts.ID
	if id == "" {
		id = ports.GenerateCorrelationID()
	}

	return &Session{
		id:       id,
		rules:    append([]selection.Rules(nil), rules...),
		byID:     byID,
		products: opts.Products,
		agg:      agg,
		logger:   logging.OrNoOp(opts.Logger).With("component", "session", "session_id", id),
		events:   opts.Events,
		strict:   opts.Strict,
		ctx:      context.Background(),
	}, nil
}

// ID returns the session id, also used as the correlation id.
func (s *Session) ID() string { return s.id }

// Context returns ctx carrying the session's correlation id.
func (s *Session) Context(ctx context.Context) context.Context {
	if ports.GetCorrelationID(ctx) != "" {
		return ctx
	}
	return ports.WithCorrelationID(ctx, s.id)
}

// Categories returns the configured rule tables in table order.
func (s *Session) Categories() []selection.Rules {
	return append([]selection.Rules(nil), s.rules...)
}

// Aggregator exposes the render-facing state for readers.
func (s *Session) Aggregator() *render.Aggregator { return s.agg }

// Snapshot returns the current channel states.
func (s *Session) Snapshot() render.Snapshot { return s.agg.Snapshot() }

// Active returns the rules of the mounted category.
func (s *Session) Active() (selection.Rules, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return selection.Rules{}, false
	}
	return s.active.Rules(), true
}

// State returns the mounted category's store.
func (s *Session) State() (selection.StoreState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return selection.StoreState{}, false
	}
	return s.active.State(), true
}

// Options returns the options presented for the mounted product.
func (s *Session) Options() (catalog.Options, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return catalog.Options{}, false
	}
	return s.active.Options(), true
}

// Products returns the mounted category's product cards narrowed by the
// store's color family.
func (s *Session) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	return catalog.FilterByFamily(s.cards, s.active.State().ColorFamily)
}

// Dispatch processes one action to completion.
func (s *Session) Dispatch(ctx context.Context, action Action) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = s.Context(ctx)
	s.ctx = ctx
	defer func() { s.ctx = context.Background() }()

	var (
		out selection.Outcome
		err error
	)
	switch action.Kind {
	case ActionMount:
		out, err = s.mount(ctx, action.Category, action.Product)
	case ActionUnmount:
		out = s.unmount(ctx)
	default:
		if s.active == nil {
			return Result{Action: action}, fmt.Errorf("%s: %w", action.Kind, ErrNotMounted)
		}
		out, err = s.apply(ctx, action)
	}
	if err != nil {
		s.logger.Error(ctx, "action failed", "action", action.String(), "error", err)
		return Result{Action: action}, err
	}

	result := Result{Action: action, Outcome: out}
	if s.active != nil {
		state := s.active.State()
		result.State = &state
	}
	if out.Applied {
		s.logger.Debug(ctx, "action applied", "action", action.String(), "commands", len(out.Batch))
	}
	return result, nil
}

// Mount mounts category with the product identified by sku, or the
// category's first product when sku is empty.
func (s *Session) Mount(ctx context.Context, category, sku string) (Result, error) {
	return s.Dispatch(ctx, Action{Kind: ActionMount, Category: category, Product: sku})
}

// Unmount discards the mounted category after clearing its channels.
func (s *Session) Unmount(ctx context.Context) (Result, error) {
	return s.Dispatch(ctx, Action{Kind: ActionUnmount})
}

// Close unmounts and resets the aggregator.
func (s *Session) Close(ctx context.Context) error {
	if _, err := s.Unmount(ctx); err != nil {
		return err
	}
	s.agg.Reset()
	s.logger.Info(s.Context(ctx), "session closed")
	return nil
}

func (s *Session) mount(ctx context.Context, category, sku string) (selection.Outcome, error) {
	rules, ok := s.byID[selection.Category(category)]
	if !ok {
		return selection.Outcome{}, apperrors.NewNotFoundError("category", category)
	}

	var products []catalog.Product
	var product catalog.Product
	if s.products != nil {
		list, err := s.products.Products(ctx, category)
		if err != nil {
			return selection.Outcome{}, fmt.Errorf("load products: %w", err)
		}
		products = list
		product, err = s.products.Product(ctx, category, sku)
		if err != nil {
			return selection.Outcome{}, fmt.Errorf("load product: %w", err)
		}
	} else if sku != "" {
		return selection.Outcome{}, apperrors.NewNotFoundError("product", sku)
	}

	if s.active != nil {
		s.unmount(ctx)
	}

	options := s.buildOptions(ctx, rules, product)
	ctrl := selection.NewController(rules, options, s.agg, selection.WithViolationHandler(selection.ViolationFunc(s.violation)))
	out := ctrl.Mount()
	if !out.Applied {
		return out, nil
	}
	s.active = ctrl
	s.cards = products

	s.logger.Info(ctx, "category mounted", "category", category, "product", product.SKU, "colors", len(options.Colors))
	s.publish(ctx, ports.EventCategoryMounted, map[string]interface{}{
		"category": category,
		"product":  product.SKU,
	})
	return out, nil
}

func (s *Session) unmount(ctx context.Context) selection.Outcome {
	if s.active == nil {
		return selection.Outcome{Operation: string(ActionUnmount)}
	}
	category := s.active.Rules().Category
	out := s.active.Clear()
	s.active = nil
	s.cards = nil

	s.logger.Info(ctx, "category unmounted", "category", string(category))
	s.publish(ctx, ports.EventCategoryUnmounted, map[string]interface{}{"category": string(category)})
	return out
}

func (s *Session) apply(ctx context.Context, action Action) (selection.Outcome, error) {
	ctrl := s.active
	category := string(ctrl.Rules().Category)

	var (
		out       selection.Outcome
		eventType string
	)
	switch action.Kind {
	case ActionToggleColor:
		out, eventType = ctrl.ToggleColor(action.Token), ports.EventColorToggled
	case ActionToggleTexture:
		out, eventType = ctrl.ToggleTexture(action.Token), ports.EventOptionToggled
	case ActionToggleFabric:
		out, eventType = ctrl.ToggleFabric(action.Token), ports.EventOptionToggled
	case ActionToggleShape:
		out, eventType = ctrl.ToggleShape(action.Token), ports.EventOptionToggled
	case ActionTogglePattern:
		out, eventType = ctrl.TogglePattern(action.Token), ports.EventOptionToggled
	case ActionSetMode:
		mode, err := selection.ParseShadeMode(action.Token)
		if err != nil {
			mode = selection.ShadeMode(action.Token)
		}
		out, eventType = ctrl.SetShadeMode(mode), ports.EventShadeModeChanged
	case ActionSetFamily:
		out, eventType = ctrl.SetColorFamily(action.Token), ports.EventColorFamilyChanged
	case ActionSelectProduct:
		if s.products == nil {
			return selection.Outcome{}, apperrors.NewNotFoundError("product", action.Product)
		}
		product, err := s.products.Product(ctx, category, action.Product)
		if err != nil {
			return selection.Outcome{}, fmt.Errorf("load product: %w", err)
		}
		options := s.buildOptions(ctx, ctrl.Rules(), product)
		out, eventType = ctrl.SelectProduct(product.SKU, options), ports.EventProductSelected
	case ActionClear:
		out, eventType = ctrl.Clear(), ports.EventSelectionCleared
	default:
		return selection.Outcome{}, apperrors.NewValidationError("action", fmt.Sprintf("unknown action %q", action.Kind), nil)
	}

	if out.Applied {
		s.publish(ctx, eventType, map[string]interface{}{
			"category": category,
			"token":    out.Token,
			"commands": len(out.Batch),
			"evicted":  out.Evicted,
		})
	}
	return out, nil
}

func (s *Session) buildOptions(ctx context.Context, rules selection.Rules, product catalog.Product) catalog.Options {
	options, rejected := catalog.BuildOptions(product, rules.Options)
	for _, r := range rejected {
		s.logger.Warn(ctx, "attribute token rejected",
			"category", string(rules.Category),
			"product", product.SKU,
			"kind", string(r.Kind),
			"token", r.Token,
			"error", r.Err,
		)
	}
	return options
}

// violation logs and publishes a precondition failure; in strict mode it
// then panics with it.
func (s *Session) violation(err *selection.PreconditionError) {
	ctx := s.ctx
	s.logger.Warn(ctx, "precondition violated",
		"category", string(err.Category),
		"operation", err.Operation,
		"token", err.Token,
		"reason", err.Reason,
	)
	s.publish(ctx, ports.EventPreconditionViolated, map[string]interface{}{
		"category":  string(err.Category),
		"operation": err.Operation,
		"token":     err.Token,
		"reason":    err.Reason,
	})
	if s.strict {
		panic(err)
	}
}

func (s *Session) publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ports.Event{Type: eventType, Data: payload}); err != nil {
		s.logger.Warn(ctx, "failed to publish domain event", "event_type", eventType, "error", err)
	}
}
