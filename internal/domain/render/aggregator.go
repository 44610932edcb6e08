package render

import (
	"fmt"
	"sort"
	"sync"
)

// Engine is the push-only command interface of the external render engine.
type Engine interface {
	SetColors(channel string, colors []string)
	SetMaterial(channel string, index int)
	SetPattern(channel string, index int)
	SetVisible(channel string, visible bool)
	SetMode(channel string, mode string)
}

// FrameEngine is implemented by engines that want to know where one user
// action's commands end.
type FrameEngine interface {
	Engine
	Commit(owner string)
}

// OwnershipError reports a command for a channel the issuing category does
// not own, or for a channel that does not exist.
type OwnershipError struct {
	Owner   string
	Channel string
	Actual  string
}

func (e *OwnershipError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("channel %q is not registered (issued by %q)", e.Channel, e.Owner)
	}
	return fmt.Sprintf("channel %q is owned by %q, not %q", e.Channel, e.Actual, e.Owner)
}

// Aggregator is the single render-facing source of truth. Ownership of each
// channel is assigned once at construction. Apply is last-write-wins per
// field; a batch is applied and pushed as a unit so readers and engines see
// whole user actions only.
type Aggregator struct {
	owners map[string]string

	mu       sync.RWMutex
	channels map[string]*ChannelState

	pushMu  sync.Mutex
	engines []Engine
}

// NewAggregator creates an aggregator whose channels are keyed by name and
// owned by the mapped category.
func NewAggregator(ownership map[string]string, engines ...Engine) (*Aggregator, error) {
	if len(ownership) == 0 {
		return nil, fmt.Errorf("aggregator requires at least one channel")
	}
	owners := make(map[string]string, len(ownership))
	channels := make(map[string]*ChannelState, len(ownership))
	for channel, owner := range ownership {
		if channel == "" || owner == "" {
			return nil, fmt.Errorf("channel %q has empty name or owner", channel)
		}
		owners[channel] = owner
		state := EmptyChannel()
		channels[channel] = &state
	}
	a := &Aggregator{owners: owners, channels: channels}
	for _, engine := range engines {
		a.Attach(engine)
	}
	return a, nil
}

// Attach registers an engine that receives every subsequently applied command.
func (a *Aggregator) Attach(engine Engine) {
	if engine == nil {
		return
	}
	a.pushMu.Lock()
	a.engines = append(a.engines, engine)
	a.pushMu.Unlock()
}

// Owner returns the category that owns channel.
func (a *Aggregator) Owner(channel string) (string, bool) {
	owner, ok := a.owners[channel]
	return owner, ok
}

// Channels returns every registered channel name, sorted.
func (a *Aggregator) Channels() []string {
	names := make([]string, 0, len(a.owners))
	for name := range a.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply validates ownership of every command in batch and, if all are owned
// by owner, applies them in order and pushes them to engines. A batch with
// any foreign or unknown channel is rejected as a whole.
func (a *Aggregator) Apply(owner string, batch Batch) error {
	if len(batch) == 0 {
		return nil
	}
	for _, cmd := range batch {
		actual, ok := a.owners[cmd.Channel]
		if !ok || actual != owner {
			return &OwnershipError{Owner: owner, Channel: cmd.Channel, Actual: actual}
		}
	}

	a.pushMu.Lock()
	defer a.pushMu.Unlock()

	a.mu.Lock()
	for _, cmd := range batch {
		a.channels[cmd.Channel].apply(cmd)
	}
	a.mu.Unlock()

	for _, engine := range a.engines {
		for _, cmd := range batch {
			push(engine, cmd)
		}
		if framed, ok := engine.(FrameEngine); ok {
			framed.Commit(owner)
		}
	}
	return nil
}

// SetColors applies a single color command.
func (a *Aggregator) SetColors(owner, channel string, colors []string) error {
	return a.Apply(owner, Batch{SetColors(channel, colors)})
}

// SetMaterial applies a single material command.
func (a *Aggregator) SetMaterial(owner, channel string, index int) error {
	return a.Apply(owner, Batch{SetMaterial(channel, index)})
}

// SetPattern applies a single pattern command.
func (a *Aggregator) SetPattern(owner, channel string, index int) error {
	return a.Apply(owner, Batch{SetPattern(channel, index)})
}

// SetVisible applies a single visibility command.
func (a *Aggregator) SetVisible(owner, channel string, visible bool) error {
	return a.Apply(owner, Batch{SetVisible(channel, visible)})
}

// SetMode applies a single mode command.
func (a *Aggregator) SetMode(owner, channel string, mode string) error {
	return a.Apply(owner, Batch{SetMode(channel, mode)})
}

// Channel returns the current value of one channel.
func (a *Aggregator) Channel(name string) (ChannelState, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	state, ok := a.channels[name]
	if !ok {
		return ChannelState{}, false
	}
	return state.Clone(), true
}

// Snapshot returns a consistent copy of every channel.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(Snapshot, len(a.channels))
	for name, state := range a.channels {
		out[name] = state.Clone()
	}
	return out
}

// Reset returns every channel to its empty state without notifying engines.
// It is used at session teardown.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name := range a.channels {
		state := EmptyChannel()
		a.channels[name] = &state
	}
}

func push(engine Engine, cmd Command) {
	switch cmd.Kind {
	case CommandSetColors:
		engine.SetColors(cmd.Channel, append([]string{}, cmd.Colors...))
	case CommandSetMaterial:
		engine.SetMaterial(cmd.Channel, cmd.Index)
	case CommandSetPattern:
		engine.SetPattern(cmd.Channel, cmd.Index)
	case CommandSetVisible:
		engine.SetVisible(cmd.Channel, cmd.Visible)
	case CommandSetMode:
		engine.SetMode(cmd.Channel, cmd.Mode)
	}
}
