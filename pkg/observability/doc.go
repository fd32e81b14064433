/*
Package observability provides tools for monitoring the surveykit engine.

Metrics registers Prometheus collectors and exposes them as lifecycle hooks,
so counting evaluations and scores needs no change to the engine itself:

	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := surveykit.New(surveykit.WithLifecycleHooks(m.Hooks()))

Combine merges several hook sets when a host also audits events itself.
*/
package observability
