// Package render holds the unified, render-engine-facing state. The
// Aggregator applies channel commands in batches and pushes them to attached
// engines; it carries no selection rules of its own.
package render

import "fmt"

// NoIndex marks a cleared material or pattern index.
const NoIndex = -1

// CommandKind enumerates the channel command shapes understood by engines.
type CommandKind string

const (
	CommandSetColors   CommandKind = "set_colors"
	CommandSetMaterial CommandKind = "set_material"
	CommandSetPattern  CommandKind = "set_pattern"
	CommandSetVisible  CommandKind = "set_visible"
	CommandSetMode     CommandKind = "set_mode"
)

// Command is one last-write-wins mutation of a channel.
type Command struct {
	Kind    CommandKind `yaml:"kind" json:"kind"`
	Channel string      `yaml:"channel" json:"channel"`
	Colors  []string    `yaml:"colors,omitempty" json:"colors,omitempty"`
	Index   int         `yaml:"index" json:"index"`
	Visible bool        `yaml:"visible" json:"visible"`
	Mode    string      `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// SetColors replaces the channel's ordered colors.
func SetColors(channel string, colors []string) Command {
	return Command{Kind: CommandSetColors, Channel: channel, Colors: append([]string{}, colors...)}
}

// SetMaterial sets the material index; NoIndex clears it.
func SetMaterial(channel string, index int) Command {
	return Command{Kind: CommandSetMaterial, Channel: channel, Index: index}
}

// SetPattern sets the pattern index; NoIndex clears it.
func SetPattern(channel string, index int) Command {
	return Command{Kind: CommandSetPattern, Channel: channel, Index: index}
}

// SetVisible toggles whether the engine draws the channel.
func SetVisible(channel string, visible bool) Command {
	return Command{Kind: CommandSetVisible, Channel: channel, Visible: visible}
}

// SetMode sets the channel's shade mode.
func SetMode(channel string, mode string) Command {
	return Command{Kind: CommandSetMode, Channel: channel, Mode: mode}
}

// String renders the command for logs and command listings.
func (c Command) String() string {
	switch c.Kind {
	case CommandSetColors:
		return fmt.Sprintf("%s %s %v", c.Kind, c.Channel, c.Colors)
	case CommandSetMaterial, CommandSetPattern:
		if c.Index == NoIndex {
			return fmt.Sprintf("%s %s none", c.Kind, c.Channel)
		}
		return fmt.Sprintf("%s %s %d", c.Kind, c.Channel, c.Index)
	case CommandSetVisible:
		return fmt.Sprintf("%s %s %t", c.Kind, c.Channel, c.Visible)
	case CommandSetMode:
		return fmt.Sprintf("%s %s %s", c.Kind, c.Channel, c.Mode)
	default:
		return fmt.Sprintf("%s %s", c.Kind, c.Channel)
	}
}

// Batch is the set of commands produced by one user action. It is applied
// as a unit.
type Batch []Command

// Channels returns the distinct channels touched by the batch in order.
func (b Batch) Channels() []string {
	seen := make(map[string]struct{}, len(b))
	out := make([]string, 0, len(b))
	for _, cmd := range b {
		if _, ok := seen[cmd.Channel]; ok {
			continue
		}
		seen[cmd.Channel] = struct{}{}
		out = append(out, cmd.Channel)
	}
	return out
}
