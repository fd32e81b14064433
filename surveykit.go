package surveykit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/internal/runtime"
	"github.com/aretw0/surveykit/internal/validator"
	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/observability"
	"github.com/aretw0/surveykit/pkg/ports"
	"github.com/aretw0/surveykit/pkg/schema"
	"github.com/aretw0/surveykit/pkg/scoring"
)

// ErrNilDocument is returned when an operation receives no document.
var ErrNilDocument = errors.New("nil document")

// Engine is the high-level entry point for the surveykit library.
// It wraps the internal runtime and scoring engines and provides a simplified
// API for consumers. An Engine holds no per-document state and is safe for
// concurrent use.
type Engine struct {
	loader  ports.DocumentLoader
	answers ports.AnswerLoader
	hooks   domain.LifecycleHooks
	metrics *observability.Metrics
	strict  bool
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics records every evaluation and score into m, in addition to any
// lifecycle hooks.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictAnswers rejects answer sets that name unknown nodes or whose
// values do not fit the question shape. By default unknown answers are
// dropped with a warning and shape problems surface as node errors.
func WithStrictAnswers() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// WithLoader injects the DocumentLoader used by Load. When l also implements
// ports.AnswerLoader it serves LoadAnswers too.
func WithLoader(l ports.DocumentLoader) Option {
	return func(e *Engine) {
		e.loader = l
		if a, ok := l.(ports.AnswerLoader); ok {
			e.answers = a
		}
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to the runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.metrics != nil {
		eng.hooks = observability.Combine(eng.hooks, eng.metrics.Hooks())
	}
	return eng
}

// Evaluate derives the per-node view of doc for answers: visibility,
// required-ness, validation findings and computed outputs. Neither doc nor
// answers is modified.
func (e *Engine) Evaluate(ctx context.Context, doc *domain.SchemaNode, answers domain.AnswerSet) (*domain.View, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	logger := e.logger.With("document", doc.ID)

	prog, err := compiler.Compile(doc)
	if err != nil {
		e.emitEvaluateFailure(ctx, doc.ID, err)
		return nil, err
	}
	answers, err = e.checkAnswers(logger, prog, answers)
	if err != nil {
		e.emitEvaluateFailure(ctx, doc.ID, err)
		return nil, err
	}

	rt := runtime.NewEngine(
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(logger),
	)
	return rt.Evaluate(ctx, prog, answers)
}

// Score grades the exam questions of doc. manual supplies human scores for
// questions in manual mode and may be nil.
func (e *Engine) Score(ctx context.Context, doc *domain.SchemaNode, answers domain.AnswerSet, manual map[string]float64) (report *scoring.Report, err error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	start := time.Now()
	defer func() {
		e.emitScore(ctx, doc.ID, report, err, time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := e.logger.With("document", doc.ID)

	prog, err := compiler.Compile(doc)
	if err != nil {
		return nil, err
	}
	answers, err = e.checkAnswers(logger, prog, answers)
	if err != nil {
		return nil, err
	}
	for id := range manual {
		if n, lookupErr := prog.Lookup(id); lookupErr != nil || compiler.ExamOf(n.Config) == nil {
			logger.Warn("manual score for a node that is not scored", "node", id)
		}
	}

	report = scoring.ScoreProgram(prog, answers, scoring.WithManualScores(manual))
	logger.Debug("scored", "total", report.Total, "max", report.MaxTotal, "pending", len(report.Manual))
	return report, nil
}

// Validate checks the integrity of doc at authoring time: unique ids, rule
// syntax, attribute consistency, references to existing nodes and the
// absence of dependency cycles. Every finding is reported in one error.
func (e *Engine) Validate(doc *domain.SchemaNode) error {
	return validator.ValidateDocument(doc)
}

// Load retrieves a document from the configured loader.
func (e *Engine) Load(ctx context.Context, id string) (*domain.SchemaNode, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("no document loader configured")
	}
	return e.loader.LoadDocument(ctx, id)
}

// LoadAnswers retrieves an answer set from the configured loader.
func (e *Engine) LoadAnswers(ctx context.Context, id string) (domain.AnswerSet, error) {
	if e.answers == nil {
		return nil, fmt.Errorf("configured loader does not serve answers")
	}
	return e.answers.LoadAnswers(ctx, id)
}

// checkAnswers drops answers for ids the document does not define, or
// rejects them in strict mode along with shape mismatches.
func (e *Engine) checkAnswers(logger *slog.Logger, prog *compiler.Program, answers domain.AnswerSet) (domain.AnswerSet, error) {
	if e.strict {
		if err := schema.Validate(schema.ForDocument(prog.Root().Node), answers); err != nil {
			return nil, fmt.Errorf("invalid answers: %w", err)
		}
		return answers, nil
	}

	var orphans []string
	for id := range answers {
		if n, err := prog.Lookup(id); err != nil || !n.Node.IsDataType() {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) == 0 {
		return answers, nil
	}
	slices.Sort(orphans)
	logger.Warn("dropping answers for unknown nodes", "ids", orphans)

	kept := make(domain.AnswerSet, len(answers)-len(orphans))
	for id, a := range answers {
		if !slices.Contains(orphans, id) {
			kept[id] = a
		}
	}
	return kept, nil
}

func (e *Engine) emitEvaluateFailure(ctx context.Context, docID string, err error) {
	if e.hooks.OnEvaluate == nil {
		return
	}
	e.hooks.OnEvaluate(ctx, &domain.EvaluateEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEvaluate, DocumentID: docID},
		Err:       err,
	})
}

func (e *Engine) emitScore(ctx context.Context, docID string, report *scoring.Report, err error, d time.Duration) {
	if e.hooks.OnScore == nil {
		return
	}
	ev := &domain.ScoreEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventScore, DocumentID: docID},
		Duration:  d,
		Err:       err,
	}
	if report != nil {
		ev.Scored = report.Scored()
		ev.Pending = len(report.Manual)
		ev.Total = report.Total
		ev.MaxTotal = report.MaxTotal
	}
	e.hooks.OnScore(ctx, ev)
}
