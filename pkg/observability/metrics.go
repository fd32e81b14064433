package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation results used as the "result" label.
const (
	ResultSubmittable = "submittable"
	ResultIncomplete  = "incomplete"
	ResultFailed      = "error"
)

// Metrics holds the Prometheus collectors fed by the engine lifecycle hooks.
type Metrics struct {
	Evaluations        *prometheus.CounterVec
	ValidationErrors   prometheus.Counter
	ValidationWarnings prometheus.Counter
	Scores             *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	ScoreRatio         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveykit_evaluations_total",
				Help: "Total number of document evaluations by result",
			},
			[]string{"result"},
		),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surveykit_validation_errors_total",
			Help: "Total number of blocking validation errors reported",
		}),
		ValidationWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surveykit_validation_warnings_total",
			Help: "Total number of non-blocking warnings reported",
		}),
		Scores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveykit_scores_total",
				Help: "Total number of scored exam submissions by result",
			},
			[]string{"result"},
		),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveykit_evaluation_duration_seconds",
			Help:    "Duration of document evaluations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		ScoreRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveykit_score_ratio",
			Help:    "Total score divided by the maximum score of scored submissions",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
	for _, c := range []prometheus.Collector{
		m.Evaluations, m.ValidationErrors, m.ValidationWarnings,
		m.Scores, m.EvaluationDuration, m.ScoreRatio,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record every event into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvaluate: m.observeEvaluate,
		OnScore:    m.observeScore,
	}
}

func (m *Metrics) observeEvaluate(_ context.Context, e *domain.EvaluateEvent) {
	switch {
	case e.Err != nil:
		m.Evaluations.WithLabelValues(ResultFailed).Inc()
		return
	case e.Submittable:
		m.Evaluations.WithLabelValues(ResultSubmittable).Inc()
	default:
		m.Evaluations.WithLabelValues(ResultIncomplete).Inc()
	}
	m.ValidationErrors.Add(float64(e.Errors))
	m.ValidationWarnings.Add(float64(e.Warnings))
	m.EvaluationDuration.Observe(e.Duration.Seconds())
}

func (m *Metrics) observeScore(_ context.Context, e *domain.ScoreEvent) {
	if e.Err != nil {
		m.Scores.WithLabelValues(ResultFailed).Inc()
		return
	}
	m.Scores.WithLabelValues("ok").Inc()
	if e.MaxTotal > 0 {
		m.ScoreRatio.Observe(e.Total / e.MaxTotal)
	}
}

// Combine fans each event out to every non-nil callback of hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	var evaluate []func(context.Context, *domain.EvaluateEvent)
	var score []func(context.Context, *domain.ScoreEvent)
	for _, h := range hooks {
		if h.OnEvaluate != nil {
			evaluate = append(evaluate, h.OnEvaluate)
		}
		if h.OnScore != nil {
			score = append(score, h.OnScore)
		}
	}
	if len(evaluate) > 0 {
		out.OnEvaluate = func(ctx context.Context, e *domain.EvaluateEvent) {
			for _, fn := range evaluate {
				fn(ctx, e)
			}
		}
	}
	if len(score) > 0 {
		out.OnScore = func(ctx context.Context, e *domain.ScoreEvent) {
			for _, fn := range score {
				fn(ctx, e)
			}
		}
	}
	return out
}
