package renderengine

import (
	"context"

	"github.com/unveels/tryon/internal/domain/render"
	"github.com/unveels/tryon/internal/ports"
)

// LogEngine writes each pushed command to a logger at debug level and each
// frame boundary at info level.
type LogEngine struct {
	ctx    context.Context
	logger ports.Logger
	count  int
}

var _ render.FrameEngine = (*LogEngine)(nil)

// NewLogEngine creates a logging engine. ctx supplies the correlation id.
func NewLogEngine(ctx context.Context, logger ports.Logger) *LogEngine {
	if ctx == nil {
		ctx = context.Background()
	}
	return &LogEngine{ctx: ctx, logger: logger.With("component", "render_engine")}
}

func (e *LogEngine) SetColors(channel string, colors []string) {
	e.push(render.SetColors(channel, colors), "colors", colors)
}

func (e *LogEngine) SetMaterial(channel string, index int) {
	e.push(render.SetMaterial(channel, index), "index", index)
}

func (e *LogEngine) SetPattern(channel string, index int) {
	e.push(render.SetPattern(channel, index), "index", index)
}

func (e *LogEngine) SetVisible(channel string, visible bool) {
	e.push(render.SetVisible(channel, visible), "visible", visible)
}

func (e *LogEngine) SetMode(channel string, mode string) {
	e.push(render.SetMode(channel, mode), "mode", mode)
}

// Commit logs the end of a frame with the number of commands it carried.
func (e *LogEngine) Commit(owner string) {
	e.logger.Info(e.ctx, "render frame committed", "owner", owner, "commands", e.count)
	e.count = 0
}

func (e *LogEngine) push(cmd render.Command, key string, value interface{}) {
	e.count++
	e.logger.Debug(e.ctx, "render command", "kind", string(cmd.Kind), "channel", cmd.Channel, key, value)
}
