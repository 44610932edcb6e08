package scenario

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/unveels/tryon/internal/application/session"
	"github.com/unveels/tryon/internal/domain/render"
	"github.com/unveels/tryon/internal/domain/selection"
	"github.com/unveels/tryon/internal/ports"
	apperrors "github.com/unveels/tryon/pkg/errors"
)

// StepReport records one executed step.
type StepReport struct {
	Index     int      `yaml:"index" json:"index"`
	Step      string   `yaml:"step" json:"step"`
	Applied   bool     `yaml:"applied,omitempty" json:"applied,omitempty"`
	Commands  int      `yaml:"commands,omitempty" json:"commands,omitempty"`
	Evicted   []string `yaml:"evicted,omitempty" json:"evicted,omitempty"`
	Violation string   `yaml:"violation,omitempty" json:"violation,omitempty"`
	Checks    int      `yaml:"checks,omitempty" json:"checks,omitempty"`
	Failures  []string `yaml:"failures,omitempty" json:"failures,omitempty"`
}

// Report summarises a scenario run.
type Report struct {
	Name     string                `yaml:"name" json:"name"`
	Steps    []StepReport          `yaml:"steps" json:"steps"`
	Checks   int                   `yaml:"checks" json:"checks"`
	Failed   int                   `yaml:"failed" json:"failed"`
	Mounted  string                `yaml:"mounted,omitempty" json:"mounted,omitempty"`
	Store    *selection.StoreState `yaml:"store,omitempty" json:"store,omitempty"`
	Channels render.Snapshot       `yaml:"channels" json:"channels"`
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool { return r.Failed == 0 }

// Runner executes scenarios.
type Runner struct {
	logger ports.Logger
}

func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run dispatches every action step to sess and evaluates every expectation.
// Failed expectations do not stop the run; they are collected and returned
// joined. A dispatch error aborts the run.
func (r *Runner) Run(ctx context.Context, sc *Scenario, sess *session.Session) (Report, error) {
	ctx = sess.Context(ctx)
	report := Report{Name: sc.Name}
	if r.logger != nil {
		r.logger.Info(ctx, "running scenario", "scenario", sc.Name, "steps", len(sc.Steps))
	}

	var (
		failures []error
		last     session.Result
	)
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if step.IsAction() {
			action := step.ToAction()
			result, err := dispatch(ctx, sess, action)
			if err != nil {
				report.finish(sess)
				return report, fmt.Errorf("step %d (%s): %w", i, action, err)
			}
			last = result
			entry := StepReport{
				Index:    i,
				Step:     action.String(),
				Applied:  result.Outcome.Applied,
				Commands: len(result.Outcome.Batch),
				Evicted:  result.Outcome.Evicted,
			}
			if result.Outcome.Violation != nil {
				entry.Violation = result.Outcome.Violation.Error()
			}
			report.Steps = append(report.Steps, entry)
			continue
		}

		errs := check(i, step.Expect, sess, last)
		entry := StepReport{Index: i, Step: "expect", Checks: step.Expect.count()}
		for _, err := range errs {
			entry.Failures = append(entry.Failures, err.Error())
		}
		report.Checks += entry.Checks
		report.Failed += len(errs)
		report.Steps = append(report.Steps, entry)
		failures = append(failures, errs...)

		if r.logger != nil && len(errs) > 0 {
			r.logger.Warn(ctx, "expectation failed", "scenario", sc.Name, "step", i, "failures", len(errs))
		}
	}

	report.finish(sess)
	if r.logger != nil {
		r.logger.Info(ctx, "scenario complete", "scenario", sc.Name, "checks", report.Checks, "failed", report.Failed)
	}
	return report, errors.Join(failures...)
}

func (r *Report) finish(sess *session.Session) {
	r.Channels = sess.Snapshot()
	if rules, ok := sess.Active(); ok {
		r.Mounted = string(rules.Category)
	}
	if state, ok := sess.State(); ok {
		r.Store = &state
	}
}

func (e *Expectation) count() int {
	n := 0
	if e.Violation != nil {
		n++
	}
	if e.Mounted != nil {
		n++
	}
	if s := e.Store; s != nil {
		for _, set := range []bool{s.Colors != nil, s.Texture != nil, s.Fabric != nil, s.Shape != nil, s.Pattern != nil, s.ShadeMode != nil, s.ColorFamily != nil} {
			if set {
				n++
			}
		}
	}
	for _, c := range e.Channels {
		for _, set := range []bool{c.Visible != nil, c.Colors != nil, c.Material != nil, c.Pattern != nil, c.Mode != nil} {
			if set {
				n++
			}
		}
	}
	return n
}

func check(step int, exp *Expectation, sess *session.Session, last session.Result) []error {
	var errs []error
	expect := func(subject string, want, got interface{}) {
		if !reflect.DeepEqual(want, got) {
			errs = append(errs, apperrors.NewExpectationError(step, subject, want, got))
		}
	}

	if exp.Violation != nil {
		expect("violation", *exp.Violation, last.Outcome.Violation != nil)
	}

	rules, mounted := sess.Active()
	if exp.Mounted != nil {
		got := ""
		if mounted {
			got = string(rules.Category)
		}
		expect("mounted", *exp.Mounted, got)
	}

	if s := exp.Store; s != nil {
		state, ok := sess.State()
		if !ok {
			errs = append(errs, apperrors.NewExpectationError(step, "store", "a mounted category", "none"))
		} else {
			if s.Colors != nil {
				expect("store.colors", s.Colors, state.Colors)
			}
			checkString(expect, "store.texture", s.Texture, state.Texture)
			checkString(expect, "store.fabric", s.Fabric, state.Fabric)
			checkString(expect, "store.shape", s.Shape, state.Shape)
			checkString(expect, "store.pattern", s.Pattern, state.Pattern)
			checkString(expect, "store.shade_mode", s.ShadeMode, string(state.ShadeMode))
			checkString(expect, "store.color_family", s.ColorFamily, state.ColorFamily)
		}
	}

	for _, name := range sortedChannels(exp.Channels) {
		c := exp.Channels[name]
		state, ok := sess.Aggregator().Channel(name)
		if !ok {
			errs = append(errs, apperrors.NewExpectationError(step, "channels."+name, "a registered channel", "none"))
			continue
		}
		prefix := "channels." + name
		if c.Visible != nil {
			expect(prefix+".visible", *c.Visible, state.Visible)
		}
		if c.Colors != nil {
			expect(prefix+".colors", c.Colors, state.Colors)
		}
		if c.Material != nil {
			expect(prefix+".material", *c.Material, state.Material)
		}
		if c.Pattern != nil {
			expect(prefix+".pattern", *c.Pattern, state.Pattern)
		}
		checkString(expect, prefix+".mode", c.Mode, state.Mode)
	}
	return errs
}

func checkString(expect func(string, interface{}, interface{}), subject string, want *string, got string) {
	if want != nil {
		expect(subject, *want, got)
	}
}

func sortedChannels(channels map[string]ChannelExpectation) []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dispatch converts a strict-mode precondition panic into an error.
func dispatch(ctx context.Context, sess *session.Session, action session.Action) (result session.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			violation, ok := rec.(*selection.PreconditionError)
			if !ok {
				panic(rec)
			}
			err = violation
		}
	}()
	return sess.Dispatch(ctx, action)
}
