package render

import "sort"

// ChannelState is the merged state of one render channel.
type ChannelState struct {
	Visible  bool     `yaml:"visible" json:"visible"`
	Colors   []string `yaml:"colors" json:"colors"`
	Material int      `yaml:"material" json:"material"`
	Pattern  int      `yaml:"pattern" json:"pattern"`
	Mode     string   `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// EmptyChannel returns the state of a channel that never received a command.
func EmptyChannel() ChannelState {
	return ChannelState{Colors: []string{}, Material: NoIndex, Pattern: NoIndex}
}

// HasMaterial reports whether a material index is set.
func (s ChannelState) HasMaterial() bool { return s.Material != NoIndex }

// HasPattern reports whether a pattern index is set.
func (s ChannelState) HasPattern() bool { return s.Pattern != NoIndex }

// Clone returns a deep copy.
func (s ChannelState) Clone() ChannelState {
	out := s
	out.Colors = append([]string{}, s.Colors...)
	return out
}

func (s *ChannelState) apply(cmd Command) {
	switch cmd.Kind {
	case CommandSetColors:
		s.Colors = append([]string{}, cmd.Colors...)
	case CommandSetMaterial:
		s.Material = cmd.Index
	case CommandSetPattern:
		s.Pattern = cmd.Index
	case CommandSetVisible:
		s.Visible = cmd.Visible
	case CommandSetMode:
		s.Mode = cmd.Mode
	}
}

// Snapshot is a consistent copy of every channel, keyed by channel name.
type Snapshot map[string]ChannelState

// Names returns the channel names in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
