package discovery

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/observability"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// Engine evaluates an ordered rule set over every asset pair of a graph.
//
// The zero value is not usable; create engines with [New].
type Engine struct {
	params Params
	rules  []Rule
	logger *log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for per-run summaries.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRules appends rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = append(e.rules, rules...) }
}

// WithOnlyRules replaces the built-in rule set.
func WithOnlyRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = append([]Rule(nil), rules...) }
}

// New creates an engine with the built-in rules. It fails with
// INVALID_CONFIG if params are out of range.
func New(params Params, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		params: params,
		rules:  DefaultRules(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Result summarizes one discovery pass.
type Result struct {
	Pairs    int                   // unordered asset pairs evaluated
	Fired    int                   // rule evaluations that produced a relationship
	Added    int                   // stored edges new to the graph, both halves of bidirectional ones
	ByType   map[relgraph.Type]int // added edges per type
	Duration time.Duration
}

// Run evaluates every rule for every unordered pair of distinct assets and
// inserts what fires into g. Relationships already present are skipped, so
// Run is idempotent on an unchanged graph.
func (e *Engine) Run(g *relgraph.Graph) (Result, error) {
	start := time.Now()
	hooks := observability.Discovery()
	hooks.OnDiscoveryStart(g.Len())

	res := Result{ByType: make(map[relgraph.Type]int)}
	ctx := NewContext(e.params, g.Events())
	assets := g.Assets()

	for i := 0; i < len(assets); i++ {
		for j := i + 1; j < len(assets); j++ {
			res.Pairs++
			for _, rule := range e.rules {
				r, ok := rule.Eval(assets[i], assets[j], ctx)
				if !ok {
					continue
				}
				res.Fired++
				before := g.RelationshipCount()
				if _, err := g.AddRelationship(r); err != nil {
					hooks.OnDiscoveryComplete(g.Len(), res.Added, time.Since(start), err)
					return res, errors.Wrap(errors.ErrCodeInternal, err, "rule %q produced an invalid relationship", rule.Name)
				}
				if n := g.RelationshipCount() - before; n > 0 {
					res.Added += n
					res.ByType[r.Type] += n
				}
			}
		}
	}

	res.Duration = time.Since(start)
	e.logger.Debug("discovery complete", "assets", len(assets), "pairs", res.Pairs, "fired", res.Fired, "added", res.Added, "took", res.Duration)
	hooks.OnDiscoveryComplete(len(assets), res.Added, res.Duration, nil)
	return res, nil
}
