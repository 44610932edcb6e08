package selection

import (
	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/render"
)

// Operation names used in outcomes, events, and precondition errors.
const (
	OpMount         = "mount"
	OpToggleColor   = "toggle_color"
	OpToggleOption  = "toggle_option"
	OpSetShadeMode  = "set_shade_mode"
	OpSetFamily     = "set_color_family"
	OpSelectProduct = "select_product"
	OpClear         = "clear"
)

// Outcome reports what one controller operation did.
type Outcome struct {
	Operation string
	Token     string
	Applied   bool
	Batch     render.Batch
	Evicted   []string
	Violation *PreconditionError
}

// Controller mediates UI events for one mounted category. Every store
// mutation is paired with the aggregator batch that keeps the category's
// channels consistent with it; if the batch is rejected the store is rolled
// back.
type Controller struct {
	rules      Rules
	store      *Store
	options    catalog.Options
	agg        *render.Aggregator
	violations ViolationHandler
}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithViolationHandler replaces the default panicking handler.
func WithViolationHandler(handler ViolationHandler) ControllerOption {
	return func(c *Controller) {
		if handler != nil {
			c.violations = handler
		}
	}
}

// NewController creates a controller with a fresh store for rules.Category.
func NewController(rules Rules, options catalog.Options, agg *render.Aggregator, opts ...ControllerOption) *Controller {
	c := &Controller{
		rules:      rules,
		store:      NewStore(rules.Category, rules.DefaultMode),
		options:    options,
		agg:        agg,
		violations: PanicOnViolation(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns the category configuration.
func (c *Controller) Rules() Rules { return c.rules }

// Options returns the options presented for the mounted product.
func (c *Controller) Options() catalog.Options { return c.options }

// State returns a copy of the store.
func (c *Controller) State() StoreState { return c.store.State() }

// Mount aligns the owned channels' mode with the fresh store.
func (c *Controller) Mount() Outcome {
	var batch render.Batch
	if c.rules.Forward.Mode {
		for _, ch := range c.rules.Channels {
			batch = append(batch, render.SetMode(ch, string(c.store.ShadeMode())))
		}
	}
	return c.commit(OpMount, string(c.rules.Category), c.store.State(), batch, nil)
}

// ToggleColor removes token if selected, otherwise adds it within the
// current shade mode's capacity, evicting the oldest colors on overflow.
func (c *Controller) ToggleColor(token string) Outcome {
	if !c.options.HasColor(token) {
		return c.violate(OpToggleColor, token, "color is not in the product palette", nil)
	}

	prev := c.store.State()
	var evicted []string
	if c.store.HasColor(token) {
		c.store.RemoveColor(token)
	} else {
		max, ok := c.rules.MaxColors(c.store.ShadeMode())
		if !ok {
			max = 1
		}
		evicted = c.store.AddColor(token, max)
	}

	batch := append(c.colorCommands(), c.visibilityCommands(false)...)
	return c.commit(OpToggleColor, token, prev, batch, evicted)
}

// ToggleTexture applies radio/toggle semantics to the texture row.
func (c *Controller) ToggleTexture(token string) Outcome {
	return c.ToggleOption(catalog.SlotTexture, token)
}

// ToggleFabric applies radio/toggle semantics to the fabric row.
func (c *Controller) ToggleFabric(token string) Outcome {
	return c.ToggleOption(catalog.SlotFabric, token)
}

// ToggleShape applies radio/toggle semantics to the shape row.
func (c *Controller) ToggleShape(token string) Outcome {
	return c.ToggleOption(catalog.SlotShape, token)
}

// TogglePattern applies radio/toggle semantics to the pattern row.
func (c *Controller) TogglePattern(token string) Outcome {
	return c.ToggleOption(catalog.SlotPattern, token)
}

// ToggleOption selects token in slot, replacing any previous choice, or
// deselects it when it is already selected. The option's index is forwarded
// as the material (texture, fabric) or pattern (shape, pattern) index.
func (c *Controller) ToggleOption(slot catalog.Slot, token string) Outcome {
	if c.options.IndexOf(slot, token) < 0 {
		return c.violate(OpToggleOption, token, "option is not offered in the "+string(slot)+" row", nil)
	}

	prev := c.store.State()
	if c.store.Selected(slot) == token {
		c.store.Select(slot, "")
	} else {
		c.store.Select(slot, token)
	}

	batch := append(c.slotCommands(slot), c.visibilityCommands(false)...)
	return c.commit(OpToggleOption, token, prev, batch, nil)
}

// SetShadeMode changes the store's shade mode only. Nothing is pushed until
// the next color toggle.
func (c *Controller) SetShadeMode(mode ShadeMode) Outcome {
	if _, ok := c.rules.MaxColors(mode); !ok {
		return c.violate(OpSetShadeMode, string(mode), "shade mode is not offered by this category", nil)
	}
	c.store.SetShadeMode(mode)
	return Outcome{Operation: OpSetShadeMode, Token: string(mode), Applied: true}
}

// SetColorFamily replaces the UI-only color family filter.
func (c *Controller) SetColorFamily(family string) Outcome {
	c.store.SetColorFamily(family)
	return Outcome{Operation: OpSetFamily, Token: family, Applied: true}
}

// SelectProduct switches the presented options to another product card. The
// color family follows the product, its first color replaces the color
// selection, and slot choices the new product does not offer are dropped.
func (c *Controller) SelectProduct(sku string, options catalog.Options) Outcome {
	prev := c.store.State()
	prevOptions := c.options

	c.options = options
	c.store.SetColorFamily(options.Family)
	if len(options.Colors) > 0 {
		c.store.SetColors([]string{options.Colors[0]})
	} else {
		c.store.SetColors(nil)
	}
	for _, slot := range catalog.Slots {
		if selected := c.store.Selected(slot); selected != "" && options.IndexOf(slot, selected) < 0 {
			c.store.Select(slot, "")
		}
	}

	batch := c.colorCommands()
	if slot, ok := c.rules.materialSlot(); ok {
		batch = append(batch, c.slotCommands(slot)...)
	}
	if slot, ok := c.rules.patternSlot(); ok {
		batch = append(batch, c.slotCommands(slot)...)
	}
	batch = append(batch, c.visibilityCommands(false)...)

	out := c.commit(OpSelectProduct, sku, prev, batch, nil)
	if !out.Applied {
		c.options = prevOptions
	}
	return out
}

// Clear empties every selection and hides the owned channels. It is
// idempotent.
func (c *Controller) Clear() Outcome {
	prev := c.store.State()
	c.store.ClearSelection()

	var batch render.Batch
	for _, ch := range c.rules.Channels {
		if c.rules.Forward.Colors {
			batch = append(batch, render.SetColors(ch, nil))
		}
		if _, ok := c.rules.materialSlot(); ok && c.rules.Forward.Material {
			batch = append(batch, render.SetMaterial(ch, render.NoIndex))
		}
		if _, ok := c.rules.patternSlot(); ok && c.rules.Forward.Pattern {
			batch = append(batch, render.SetPattern(ch, render.NoIndex))
		}
	}
	batch = append(batch, c.visibilityCommands(true)...)
	return c.commit(OpClear, string(c.rules.Category), prev, batch, nil)
}

func (c *Controller) colorCommands() render.Batch {
	var batch render.Batch
	colors := c.store.Colors()
	for _, ch := range c.rules.Channels {
		if c.rules.Forward.Colors {
			batch = append(batch, render.SetColors(ch, colors))
		}
		if c.rules.Forward.Mode {
			batch = append(batch, render.SetMode(ch, string(c.store.ShadeMode())))
		}
	}
	return batch
}

func (c *Controller) slotCommands(slot catalog.Slot) render.Batch {
	index := render.NoIndex
	if selected := c.store.Selected(slot); selected != "" {
		index = c.options.IndexOf(slot, selected)
	}

	var batch render.Batch
	for _, ch := range c.rules.Channels {
		switch slot {
		case catalog.SlotTexture, catalog.SlotFabric:
			if c.rules.Forward.Material {
				batch = append(batch, render.SetMaterial(ch, index))
			}
		case catalog.SlotShape, catalog.SlotPattern:
			if c.rules.Forward.Pattern {
				batch = append(batch, render.SetPattern(ch, index))
			}
		}
	}
	return batch
}

// active reports whether the store holds a selection that reaches the
// channels.
func (c *Controller) active() bool {
	if c.rules.Forward.Colors && len(c.store.Colors()) > 0 {
		return true
	}
	if c.rules.Forward.Material && (c.store.Texture() != "" || c.store.Fabric() != "") {
		return true
	}
	if c.rules.Forward.Pattern && (c.store.Shape() != "" || c.store.Pattern() != "") {
		return true
	}
	return false
}

// visibilityCommands emits visibility updates for owned channels whose flag
// differs from the store's activity, or for all of them when force is set.
// A clear forces the owned channels hidden.
func (c *Controller) visibilityCommands(force bool) render.Batch {
	if !c.rules.Visibility {
		return nil
	}
	want := c.active()
	var batch render.Batch
	for _, ch := range c.rules.Channels {
		current, _ := c.agg.Channel(ch)
		if force || current.Visible != want {
			batch = append(batch, render.SetVisible(ch, want))
		}
	}
	return batch
}

func (c *Controller) commit(op, token string, prev StoreState, batch render.Batch, evicted []string) Outcome {
	if err := c.agg.Apply(string(c.rules.Category), batch); err != nil {
		c.store.restore(prev)
		return c.violate(op, token, "render command rejected", err)
	}
	return Outcome{
		Operation: op,
		Token:     token,
		Applied:   true,
		Batch:     batch,
		Evicted:   evicted,
	}
}

func (c *Controller) violate(op, token, reason string, cause error) Outcome {
	err := &PreconditionError{
		Category:  c.rules.Category,
		Operation: op,
		Token:     token,
		Reason:    reason,
		Err:       cause,
	}
	c.violations.Violation(err)
	return Outcome{Operation: op, Token: token, Violation: err}
}
