package session

import (
	"fmt"

	"github.com/unveels/tryon/internal/domain/selection"
)

// ActionKind names a UI event the session can dispatch.
type ActionKind string

const (
	ActionMount         ActionKind = "mount"
	ActionUnmount       ActionKind = "unmount"
	ActionToggleColor   ActionKind = "toggle_color"
	ActionToggleTexture ActionKind = "toggle_texture"
	ActionToggleFabric  ActionKind = "toggle_fabric"
	ActionToggleShape   ActionKind = "toggle_shape"
	ActionTogglePattern ActionKind = "toggle_pattern"
	ActionSetMode       ActionKind = "set_mode"
	ActionSetFamily     ActionKind = "set_family"
	ActionSelectProduct ActionKind = "select_product"
	ActionClear         ActionKind = "clear"
)

// ActionKinds lists every dispatchable kind.
var ActionKinds = []ActionKind{
	ActionMount,
	ActionUnmount,
	ActionToggleColor,
	ActionToggleTexture,
	ActionToggleFabric,
	ActionToggleShape,
	ActionTogglePattern,
	ActionSetMode,
	ActionSetFamily,
	ActionSelectProduct,
	ActionClear,
}

// Action is one UI event. Category and Product are used by mount; Product by
// select_product; Token by the toggles, set_mode and set_family.
type Action struct {
	Kind     ActionKind `yaml:"action" json:"action"`
	Category string     `yaml:"category,omitempty" json:"category,omitempty"`
	Product  string     `yaml:"product,omitempty" json:"product,omitempty"`
	Token    string     `yaml:"token,omitempty" json:"token,omitempty"`
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMount:
		if a.Product != "" {
			return fmt.Sprintf("mount %s %s", a.Category, a.Product)
		}
		return fmt.Sprintf("mount %s", a.Category)
	case ActionSelectProduct:
		return fmt.Sprintf("select_product %s", a.Product)
	case ActionUnmount, ActionClear:
		return string(a.Kind)
	default:
		return fmt.Sprintf("%s %s", a.Kind, a.Token)
	}
}

// Result reports what a dispatched action did.
type Result struct {
	Action  Action
	Outcome selection.Outcome
	// State is the active store after the action, if a category is mounted.
	State *selection.StoreState
}
