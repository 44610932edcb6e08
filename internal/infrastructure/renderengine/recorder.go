// Package renderengine provides render.Engine implementations that stand in
// for the AR renderer: an in-memory recorder and a logging engine.
package renderengine

import (
	"sync"

	"github.com/unveels/tryon/internal/domain/render"
)

// Frame groups the commands pushed for one applied batch.
type Frame struct {
	Owner    string           `yaml:"owner" json:"owner"`
	Commands []render.Command `yaml:"commands" json:"commands"`
}

// Recorder records every pushed command, grouped into frames at Commit.
type Recorder struct {
	mu      sync.Mutex
	pending []render.Command
	frames  []Frame
}

var _ render.FrameEngine = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetColors(channel string, colors []string) {
	r.record(render.SetColors(channel, colors))
}

func (r *Recorder) SetMaterial(channel string, index int) {
	r.record(render.SetMaterial(channel, index))
}

func (r *Recorder) SetPattern(channel string, index int) {
	r.record(render.SetPattern(channel, index))
}

func (r *Recorder) SetVisible(channel string, visible bool) {
	r.record(render.SetVisible(channel, visible))
}

func (r *Recorder) SetMode(channel string, mode string) {
	r.record(render.SetMode(channel, mode))
}

// Commit closes the current frame.
func (r *Recorder) Commit(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{Owner: owner, Commands: r.pending})
	r.pending = nil
}

// Frames returns a copy of the committed frames.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	for i, frame := range r.frames {
		out[i] = Frame{Owner: frame.Owner, Commands: append([]render.Command(nil), frame.Commands...)}
	}
	return out
}

// Commands returns every committed command in push order.
func (r *Recorder) Commands() []render.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []render.Command
	for _, frame := range r.frames {
		out = append(out, frame.Commands...)
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = nil
	r.frames = nil
}

func (r *Recorder) record(cmd render.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, cmd)
}
