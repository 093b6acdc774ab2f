// Package observable wraps command and query handlers with metrics and logging while the
// handlers themselves keep only the use case logic.
//
// The wrappers are applied explicitly when the application is wired:
//
//	coreHandler := createuser.NewCommandHandler(boundary, users)
//
//	handler, err := observable.NewCommandWrapper[createuser.Command, shell.UserView](
//		coreHandler,
//		observable.WithCommandMetrics[createuser.Command, shell.UserView](metricsCollector),
//		observable.WithCommandLogging[createuser.Command, shell.UserView](logger),
//	)
//
// Tests of the use cases call the core handlers directly.
package observable
