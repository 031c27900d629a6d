package plugin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Candidate is a plugin waiting to be resolved.
// Compiled plugins set Factory; declarative ones set Document.
type Candidate struct {
	ID       string
	Origin   string // path or registry key, used in logs
	Factory  Factory
	Document DocumentFunc
}

// Source produces candidates in discovery order. An error means the whole
// source is unavailable; the loader logs it and carries on without it.
type Source interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

// Kind tags an Entry.
type Kind int

const (
	Invalid Kind = iota
	Valid
)

func (k Kind) String() string {
	if k == Valid {
		return "valid"
	}
	return "invalid"
}

// Entry is the outcome of resolving one candidate. Config is set when Kind
// is Valid, Err when it is Invalid.
type Entry struct {
	Kind   Kind
	ID     string
	Origin string
	Config Config
	Err    *LoadError
}

// DefaultParallelism bounds concurrent factory calls per load.
const DefaultParallelism = 4

// Loader resolves plugin candidates from its sources.
type Loader struct {
	schema      *Schema
	sources     []Source
	log         *zap.Logger
	parallelism int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger for skipped plugins and discovery warnings.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.log = l
	}
}

// WithParallelism bounds concurrent factory calls. n < 1 means 1.
func WithParallelism(n int) LoaderOption {
	return func(ld *Loader) {
		if n < 1 {
			n = 1
		}
		ld.parallelism = n
	}
}

// NewLoader creates a Loader validating against schema. Sources are read
// in the order given.
func NewLoader(schema *Schema, sources []Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		schema:      schema,
		sources:     sources,
		log:         zap.NewNop(),
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the configs of every plugin that resolved cleanly, in
// discovery order. It never fails; broken plugins are logged and left out.
// If ctx is done by the time resolution finishes the result is dropped.
func (l *Loader) Load(ctx context.Context) []Config {
	entries := l.Resolve(ctx)
	if err := ctx.Err(); err != nil {
		l.log.Debug("plugin load abandoned", zap.Error(err))
		return nil
	}
	return ValidConfigs(entries)
}

// Resolve attempts every candidate exactly once and returns one Entry per
// candidate, in discovery order regardless of which factory finished first.
func (l *Loader) Resolve(ctx context.Context) []Entry {
	cands := l.candidates(ctx)
	entries := make([]Entry, len(cands))

	var g errgroup.Group
	g.SetLimit(l.parallelism)
	for i, c := range cands {
		g.Go(func() error {
			entries[i] = l.resolve(c)
			return nil
		})
	}
	// resolve records failures in entries; no goroutine returns an error.
	_ = g.Wait()

	for _, e := range entries {
		if e.Kind == Invalid {
			l.log.Error("plugin skipped",
				zap.String("plugin", e.ID),
				zap.String("origin", e.Origin),
				zap.String("stage", string(e.Err.Stage)),
				zap.Error(e.Err.Err))
		}
	}
	return entries
}

func (l *Loader) candidates(ctx context.Context) []Candidate {
	var out []Candidate
	for _, s := range l.sources {
		cands, err := s.Candidates(ctx)
		if err != nil {
			l.log.Warn("plugin discovery failed", zap.Error(err))
			continue
		}
		out = append(out, cands...)
	}
	return out
}

func (l *Loader) resolve(c Candidate) Entry {
	e := Entry{ID: c.ID, Origin: c.Origin}
	fail := func(stage Stage, err error) Entry {
		e.Kind = Invalid
		e.Err = &LoadError{Stage: stage, ID: c.ID, Origin: c.Origin, Err: err}
		return e
	}

	if c.Document != nil {
		return l.resolveDocument(e, c.Document, fail)
	}
	if c.Factory == nil {
		return fail(StageShape, ErrNotCallable)
	}
	cfg, err := invoke(c.Factory)
	if err != nil {
		var ie *ImportError
		if errors.As(err, &ie) {
			return fail(StageImport, err)
		}
		return fail(StageInvoke, err)
	}
	if err := l.schema.Validate(cfg); err != nil {
		return fail(StageValidate, err)
	}
	e.Kind = Valid
	e.Config = cfg
	return e
}

// resolveDocument validates the raw document first, so values of the wrong
// type are reported as validation errors instead of being coerced.
func (l *Loader) resolveDocument(e Entry, read DocumentFunc, fail func(Stage, error) Entry) Entry {
	doc, err := readDocument(read)
	if err != nil {
		var ie *ImportError
		if errors.As(err, &ie) {
			return fail(StageImport, err)
		}
		return fail(StageInvoke, err)
	}
	if err := l.schema.ValidateDocument(doc); err != nil {
		return fail(StageValidate, err)
	}
	cfg, err := DecodeDocument(doc)
	if err != nil {
		return fail(StageValidate, err)
	}
	e.Kind = Valid
	e.Config = cfg
	return e
}

func readDocument(read DocumentFunc) (doc any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return read()
}

func invoke(f Factory) (cfg Config, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return f()
}

// ValidConfigs keeps the configs of Valid entries, in order.
func ValidConfigs(entries []Entry) []Config {
	var out []Config
	for _, e := range entries {
		if e.Kind == Valid {
			out = append(out, e.Config)
		}
	}
	return out
}

// AdminNav flattens the admin routes of every config, in order. Configs
// without routes contribute nothing; duplicates are kept.
func AdminNav(configs []Config) []AdminRoute {
	var nav []AdminRoute
	for _, c := range configs {
		if len(c.AdminRoutes) == 0 {
			continue
		}
		nav = append(nav, c.AdminRoutes...)
	}
	return nav
}
