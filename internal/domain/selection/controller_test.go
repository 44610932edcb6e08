package selection

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/render"
)

const (
	red    = "#ff0000"
	green  = "#00ff00"
	blue   = "#0000ff"
	yellow = "#ffff00"
)

type recordingEngine struct {
	commands []string
	frames   []string
}

func (r *recordingEngine) SetColors(channel string, colors []string) {
	r.commands = append(r.commands, render.SetColors(channel, colors).String())
}
func (r *recordingEngine) SetMaterial(channel string, index int) {
	r.commands = append(r.commands, render.SetMaterial(channel, index).String())
}
func (r *recordingEngine) SetPattern(channel string, index int) {
	r.commands = append(r.commands, render.SetPattern(channel, index).String())
}
func (r *recordingEngine) SetVisible(channel string, visible bool) {
	r.commands = append(r.commands, render.SetVisible(channel, visible).String())
}
func (r *recordingEngine) SetMode(channel string, mode string) {
	r.commands = append(r.commands, render.SetMode(channel, mode).String())
}
func (r *recordingEngine) Commit(owner string) { r.frames = append(r.frames, owner) }

func blushRules() Rules {
	return Rules{
		Category: CategoryBlush,
		Label:    "Blush",
		Channels: []string{"blush"},
		Modes: []ModeRule{
			{Mode: ShadeSingle, MaxColors: 1},
			{Mode: ShadeDual, MaxColors: 2},
			{Mode: ShadeTri, MaxColors: 3},
		},
		DefaultMode: ShadeSingle,
		Forward:     Forwarding{Colors: true, Material: true, Pattern: true, Mode: true},
		Visibility:  true,
		Options: catalog.OptionSpec{
			Colors:   catalog.AttrHexacode,
			Textures: catalog.AttrTexture,
			Shapes:   3,
		},
	}
}

func blushOptions() catalog.Options {
	return catalog.Options{
		Colors:   []string{red, green, blue, yellow},
		Textures: []catalog.Option{{Value: "matte", Label: "Matte"}, {Value: "shimmer", Label: "Shimmer"}},
		Shapes:   catalog.IndexOptions("Shape", 3),
	}
}

func hairRules() Rules {
	return Rules{
		Category:    CategoryHairColor,
		Label:       "Hair Color",
		Channels:    []string{"hair"},
		Modes:       []ModeRule{{Mode: ShadeSingle, MaxColors: 1}},
		DefaultMode: ShadeSingle,
		Forward:     Forwarding{Colors: true},
		Visibility:  true,
		Options:     catalog.OptionSpec{Colors: catalog.AttrHexacode, Family: catalog.AttrColorFamily},
	}
}

type fixture struct {
	agg    *render.Aggregator
	engine *recordingEngine
	blush  *Controller
	hair   *Controller
}

func newFixture(t *testing.T, opts ...ControllerOption) *fixture {
	t.Helper()
	owners, err := OwnershipMap([]Rules{blushRules(), hairRules()})
	require.NoError(t, err)
	engine := &recordingEngine{}
	agg, err := render.NewAggregator(owners, engine)
	require.NoError(t, err)

	f := &fixture{
		agg:    agg,
		engine: engine,
		blush:  NewController(blushRules(), blushOptions(), agg, opts...),
		hair:   NewController(hairRules(), catalog.Options{Colors: []string{"#3b2219", "#a55728"}}, agg, opts...),
	}
	require.True(t, f.blush.Mount().Applied)
	require.True(t, f.hair.Mount().Applied)
	engine.commands = nil
	engine.frames = nil
	return f
}

func (f *fixture) channel(t *testing.T, name string) render.ChannelState {
	t.Helper()
	state, ok := f.agg.Channel(name)
	require.True(t, ok)
	return state
}

func TestMountAlignsChannelMode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.Equal(t, string(ShadeSingle), f.channel(t, "blush").Mode)
	require.Empty(t, f.channel(t, "hair").Mode, "hair color does not forward its mode")
}

func TestSingleModeBlushScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	out := f.blush.ToggleColor(red)
	require.True(t, out.Applied)
	require.Equal(t, []string{red}, f.blush.State().Colors)
	require.Equal(t, []string{red}, f.channel(t, "blush").Colors)
	require.True(t, f.channel(t, "blush").Visible)

	out = f.blush.ToggleColor(blue)
	require.Equal(t, []string{red}, out.Evicted)
	require.Equal(t, []string{blue}, f.blush.State().Colors)
	require.Equal(t, []string{blue}, f.channel(t, "blush").Colors)

	f.blush.ToggleColor(blue)
	require.Empty(t, f.blush.State().Colors)
	require.Empty(t, f.channel(t, "blush").Colors)
	require.False(t, f.channel(t, "blush").Visible)
}

func TestVisibilityStaysWhileAnotherSelectionIsActive(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.blush.ToggleColor(red)
	f.blush.ToggleTexture("shimmer")
	f.blush.ToggleColor(red)

	state := f.channel(t, "blush")
	require.Empty(t, state.Colors)
	require.Equal(t, 1, state.Material)
	require.True(t, state.Visible)
}

func TestDualModeEvictsOldest(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.True(t, f.blush.SetShadeMode(ShadeDual).Applied)
	f.blush.ToggleColor(red)
	f.blush.ToggleColor(green)
	out := f.blush.ToggleColor(blue)

	require.Equal(t, []string{red}, out.Evicted)
	require.Equal(t, []string{green, blue}, f.blush.State().Colors)
	require.Equal(t, []string{green, blue}, f.channel(t, "blush").Colors)
	require.Equal(t, string(ShadeDual), f.channel(t, "blush").Mode)
}

func TestSetShadeModePushesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	out := f.blush.SetShadeMode(ShadeTri)
	require.True(t, out.Applied)
	require.Empty(t, out.Batch)
	require.Empty(t, f.engine.commands)
	require.Equal(t, string(ShadeSingle), f.channel(t, "blush").Mode)
	require.Equal(t, ShadeTri, f.blush.State().ShadeMode)
}

func TestSlidingWindowBoundHolds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	modes := []ShadeMode{ShadeSingle, ShadeDual, ShadeTri}
	palette := blushOptions().Colors

	for run := 0; run < 50; run++ {
		f := newFixture(t)
		for step := 0; step < 40; step++ {
			if rng.Intn(5) == 0 {
				f.blush.SetShadeMode(modes[rng.Intn(len(modes))])
				continue
			}
			token := palette[rng.Intn(len(palette))]
			wasSelected := contains(f.blush.State().Colors, token)
			f.blush.ToggleColor(token)

			state := f.blush.State()
			if !wasSelected {
				max, _ := blushRules().MaxColors(state.ShadeMode)
				require.LessOrEqual(t, len(state.Colors), max, "run %d step %d", run, step)
				require.Equal(t, token, state.Colors[len(state.Colors)-1])
			}
			require.Equal(t, state.Colors, f.channel(t, "blush").Colors)
		}
	}
}

func TestToggleColorSymmetry(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.blush.SetShadeMode(ShadeTri)
	f.blush.ToggleColor(red)
	f.blush.ToggleColor(green)

	beforeStore := f.blush.State()
	beforeChannels := f.agg.Snapshot()

	f.blush.ToggleColor(blue)
	f.blush.ToggleColor(blue)

	require.Empty(t, cmp.Diff(beforeStore, f.blush.State()))
	require.Empty(t, cmp.Diff(beforeChannels, f.agg.Snapshot()))
}

func TestClearHidesAndEmpties(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.blush.ToggleColor(red)
	f.blush.ToggleTexture("matte")
	f.blush.ToggleShape("2")
	f.blush.SetColorFamily("pink")

	out := f.blush.Clear()
	require.True(t, out.Applied)

	state := f.blush.State()
	require.Empty(t, state.Colors)
	require.Empty(t, state.Texture)
	require.Empty(t, state.Shape)
	require.Equal(t, "pink", state.ColorFamily)

	ch := f.channel(t, "blush")
	require.False(t, ch.Visible)
	require.Empty(t, ch.Colors)
	require.False(t, ch.HasMaterial())
	require.False(t, ch.HasPattern())

	before := f.agg.Snapshot()
	require.True(t, f.blush.Clear().Applied)
	require.Empty(t, cmp.Diff(before, f.agg.Snapshot()), "clear is idempotent")
}

func TestRadioExclusivity(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.blush.ToggleTexture("matte")
	require.Equal(t, 0, f.channel(t, "blush").Material)

	f.blush.ToggleTexture("shimmer")
	require.Equal(t, "shimmer", f.blush.State().Texture)
	require.Equal(t, 1, f.channel(t, "blush").Material)

	f.blush.ToggleTexture("shimmer")
	require.Empty(t, f.blush.State().Texture)
	require.Equal(t, render.NoIndex, f.channel(t, "blush").Material)

	f.blush.ToggleShape("1")
	f.blush.ToggleShape("2")
	require.Equal(t, "2", f.blush.State().Shape)
	require.Equal(t, 2, f.channel(t, "blush").Pattern)
}

func TestCrossCategoryIsolation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.hair.ToggleColor("#3b2219")
	hairBefore := f.channel(t, "hair")

	f.blush.ToggleColor(red)
	f.blush.ToggleTexture("matte")
	f.blush.Clear()

	require.Empty(t, cmp.Diff(hairBefore, f.channel(t, "hair")))
	require.Equal(t, []string{"#3b2219"}, f.hair.State().Colors)
}

func TestEveryActionIsOneFrame(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.blush.ToggleColor(red)
	f.blush.ToggleTexture("matte")
	f.hair.ToggleColor("#a55728")

	require.Equal(t, []string{"blush", "blush", "haircolor"}, f.engine.frames)
	require.Equal(t, []string{
		"set_colors blush [#ff0000]",
		"set_mode blush Single",
		"set_visible blush true",
		"set_material blush 0",
		"set_colors hair [#a55728]",
		"set_visible hair true",
	}, f.engine.commands)
}

func TestSelectProductReplacesColorsAndFamily(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.hair.ToggleColor("#3b2219")

	next := catalog.Options{Colors: []string{"#d4a373", "#a55728"}, Family: "blonde"}
	out := f.hair.SelectProduct("HC-2", next)
	require.True(t, out.Applied)

	state := f.hair.State()
	require.Equal(t, "blonde", state.ColorFamily)
	require.Equal(t, []string{"#d4a373"}, state.Colors)
	require.Equal(t, []string{"#d4a373"}, f.channel(t, "hair").Colors)
	require.True(t, f.channel(t, "hair").Visible)
	require.Equal(t, next, f.hair.Options())
}

func TestSelectProductDropsUnofferedOptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.blush.ToggleTexture("matte")
	f.blush.ToggleShape("1")

	next := blushOptions()
	next.Textures = []catalog.Option{{Value: "shimmer", Label: "Shimmer"}}
	f.blush.SelectProduct("BL-2", next)

	state := f.blush.State()
	require.Empty(t, state.Texture)
	require.Equal(t, "1", state.Shape)
	require.Equal(t, render.NoIndex, f.channel(t, "blush").Material)
	require.Equal(t, 1, f.channel(t, "blush").Pattern)
}

func TestViolationsPanicInStrictMode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.PanicsWithError(t, `blush: toggle_color "#123456": color is not in the product palette`, func() {
		f.blush.ToggleColor("#123456")
	})
	require.Panics(t, func() { f.blush.ToggleFabric("silk") })
	require.Panics(t, func() { f.hair.SetShadeMode(ShadeTri) })
}

func TestViolationsAreNoOpsWhenLenient(t *testing.T) {
	t.Parallel()

	var seen []*PreconditionError
	f := newFixture(t, WithViolationHandler(ViolationFunc(func(err *PreconditionError) {
		seen = append(seen, err)
	})))
	f.blush.ToggleColor(red)
	storeBefore := f.blush.State()
	aggBefore := f.agg.Snapshot()

	require.False(t, f.blush.ToggleColor("#123456").Applied)
	require.False(t, f.blush.TogglePattern("0").Applied)
	require.False(t, f.hair.SetShadeMode(ShadeDual).Applied)

	require.Len(t, seen, 3)
	require.Equal(t, OpToggleColor, seen[0].Operation)
	require.Equal(t, CategoryHairColor, seen[2].Category)
	require.Empty(t, cmp.Diff(storeBefore, f.blush.State()))
	require.Empty(t, cmp.Diff(aggBefore, f.agg.Snapshot()))
}

func TestForeignChannelRollsBackStore(t *testing.T) {
	t.Parallel()

	var seen []*PreconditionError
	f := newFixture(t)
	rogue := blushRules()
	rogue.Channels = []string{"hair"}
	c := NewController(rogue, blushOptions(), f.agg, WithViolationHandler(ViolationFunc(func(err *PreconditionError) {
		seen = append(seen, err)
	})))

	out := c.ToggleColor(red)
	require.False(t, out.Applied)
	require.Empty(t, c.State().Colors)
	require.Len(t, seen, 1)

	var ownership *render.OwnershipError
	require.True(t, errors.As(seen[0], &ownership))
	require.Equal(t, "haircolor", ownership.Actual)
	require.Empty(t, f.channel(t, "hair").Colors)
}

func TestVisibilityCouplingDisabled(t *testing.T) {
	t.Parallel()

	rules := hairRules()
	rules.Visibility = false
	owners, err := OwnershipMap([]Rules{rules})
	require.NoError(t, err)
	agg, err := render.NewAggregator(owners)
	require.NoError(t, err)

	c := NewController(rules, catalog.Options{Colors: []string{red}}, agg)
	out := c.ToggleColor(red)
	for _, cmd := range out.Batch {
		require.NotEqual(t, render.CommandSetVisible, cmd.Kind)
	}
	state, _ := agg.Channel("hair")
	require.False(t, state.Visible)
	require.Equal(t, []string{red}, state.Colors)
}

func TestOwnershipMapRejectsSharedChannel(t *testing.T) {
	t.Parallel()

	a := blushRules()
	b := hairRules()
	b.Channels = []string{"blush"}
	_, err := OwnershipMap([]Rules{a, b})
	require.Error(t, err)
}

func TestParseShadeMode(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]ShadeMode{"single": ShadeSingle, "One": ShadeSingle, "DUAL": ShadeDual, " tri ": ShadeTri} {
		got, err := ParseShadeMode(raw)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseShadeMode("quad")
	require.Error(t, err)
}

func contains(list []string, token string) bool {
	for _, v := range list {
		if v == token {
			return true
		}
	}
	return false
}
