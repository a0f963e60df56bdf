// Package observable wraps command and query handlers with metrics, tracing and logging.
//
// Wrapping happens at wiring time, so the feature handlers stay free of observability:
//
//	handler, err := observable.NewCommandWrapper[borrowbook.Command](
//		borrowbook.NewCommandHandler(guardedLibrary, journal),
//		observable.WithCommandMetrics[borrowbook.Command](metricsCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command](logger),
//	)
//
// Commands refused by a library rule are reported with status "rejected" and logged at info level.
package observable
