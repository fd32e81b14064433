package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/internal/logging"
	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/rules"
)

// Engine evaluates compiled documents against answer sets. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new evaluation engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate derives the per-node view of prog for answers.
//
// Nodes are visited in dependency order. Validation failures are collected
// on the nodes and never abort the pass; only a dependency cycle or a
// cancelled context fails the call, and then no view is returned.
func (e *Engine) Evaluate(ctx context.Context, prog *compiler.Program, answers domain.AnswerSet) (view *domain.View, err error) {
	start := time.Now()
	docID := prog.Root().ID()
	defer func() {
		e.emitEvaluate(ctx, docID, view, err, time.Since(start))
	}()

	order, err := NewGraph(prog).Order()
	if err != nil {
		e.logger.Debug("rule dependency cycle", "error", err)
		return nil, err
	}

	st := newState(prog, answers)
	view = &domain.View{
		DocumentID: docID,
		Nodes:      make(map[string]*domain.NodeView, len(prog.Nodes)),
		Order:      make([]string, 0, len(order)),
	}

	for _, slot := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := prog.Nodes[slot]
		nv := e.evaluateNode(st, n)
		view.Nodes[nv.ID] = nv
		view.Order = append(view.Order, nv.ID)
	}
	e.logger.Debug("evaluation order", "order", view.Order)

	e.finish(st, view)
	return view, nil
}

// EvaluateDocument compiles root and evaluates it.
func (e *Engine) EvaluateDocument(ctx context.Context, root *domain.SchemaNode, answers domain.AnswerSet) (*domain.View, error) {
	prog, err := compiler.Compile(root)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, prog, answers)
}

// evaluateNode computes visibility, required-ness, validation and computed
// outputs of one node. All dependencies have been evaluated already.
func (e *Engine) evaluateNode(st *state, n *compiler.Node) *domain.NodeView {
	nv := &domain.NodeView{ID: n.ID(), Type: n.Node.Type}
	res := st.resolver(n.Slot)
	var diags []rules.Diagnostic

	visible := !n.Hidden && (n.Parent < 0 || st.visible[n.Parent])
	if visible && n.Logic.Visible != nil {
		visible, diags = rules.EvalBool(n.Logic.Visible, res)
	}
	if !visible {
		// Hidden branches expose nothing: no value, no flags, no findings.
		return nv
	}
	nv.Visible = true
	st.visible[n.Slot] = true
	st.values[n.Slot] = st.answerValue(n.Slot)

	if n.Logic.Calculate != nil {
		value, calcDiags := rules.EvalNumber(n.Logic.Calculate, res)
		diags = append(diags, calcDiags...)
		nv.ComputedValue = &value
		st.values[n.Slot] = rules.Number(value)
	}

	if checks := n.Config.AnswerChecks(); checks != nil {
		nv.Required = checks.Required
		if n.Logic.Required != nil {
			var reqDiags []rules.Diagnostic
			nv.Required, reqDiags = rules.EvalBool(n.Logic.Required, res)
			diags = append(diags, reqDiags...)
		}
		diags = append(diags, e.validate(st, n, nv, checks)...)
	}

	if n.Logic.Finish != nil && n.Parent >= 0 {
		e.logger.Debug("ignoring finishRule on non-root node", "node", n.ID())
	}

	if n.Logic.Replace != nil {
		text := n.Logic.Replace.Render(st.displayText)
		nv.ComputedText = &text
	}

	for _, d := range diags {
		e.logger.Debug("rule diagnostic", "node", n.ID(), "code", d.Code, "message", d.Message)
		nv.Warnings = append(nv.Warnings, domain.Warning{NodeID: n.ID(), Code: d.Code, Message: d.Message})
	}
	return nv
}

// finish applies the root finishRule and the document-level flags.
func (e *Engine) finish(st *state, view *domain.View) {
	root := st.prog.Root()
	if root.Logic.Finish != nil && st.visible[root.Slot] {
		finished, diags := rules.EvalBool(root.Logic.Finish, st.resolver(root.Slot))
		view.Finished = finished
		nv := view.Nodes[root.ID()]
		for _, d := range diags {
			nv.Warnings = append(nv.Warnings, domain.Warning{NodeID: root.ID(), Code: d.Code, Message: d.Message})
		}
	}

	view.Submittable = true
	answered := true
	for _, nv := range view.Nodes {
		if len(nv.Errors) > 0 {
			view.Submittable = false
		}
		if nv.Visible && nv.Required && st.answers.Get(nv.ID).IsEmpty() {
			answered = false
		}
	}
	view.Complete = (view.Submittable && answered) || view.Finished
}

func (e *Engine) emitEvaluate(ctx context.Context, docID string, view *domain.View, err error, d time.Duration) {
	if e.hooks.OnEvaluate == nil {
		return
	}
	ev := &domain.EvaluateEvent{
		EventBase: domain.EventBase{
			Timestamp:  time.Now(),
			Type:       domain.EventEvaluate,
			DocumentID: docID,
		},
		Duration: d,
		Err:      err,
	}
	if view != nil {
		ev.Nodes = len(view.Nodes)
		ev.Errors = len(view.Errors())
		ev.Warnings = len(view.Warnings())
		ev.Submittable = view.Submittable
	}
	e.hooks.OnEvaluate(ctx, ev)
}
