package main

import (
	"github.com/AntonStoeckl/library-circulation-go/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/features/query/borrowinghistory"
	"github.com/AntonStoeckl/library-circulation-go/features/query/suggestbook"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/observable"
)

// handlerBundle holds the observable handler of every library operation.
type handlerBundle struct {
	addBook          shell.CommandHandler[addbook.Command]
	registerPatron   shell.CommandHandler[registerpatron.Command]
	borrowBook       shell.CommandHandler[borrowbook.Command]
	returnBook       shell.CommandHandler[returnbook.Command]
	suggestBook      shell.QueryHandler[suggestbook.Query, suggestbook.Suggestion]
	borrowingHistory shell.QueryHandler[borrowinghistory.Query, borrowinghistory.History]
}

type wrapperSettings struct {
	metrics shell.MetricsCollector
	tracing shell.TracingCollector
	logger  shell.ContextualLogger
	retries []shell.RetryOption
}

func newHandlerBundle(lib *shell.GuardedLibrary, j shell.Journal, s wrapperSettings) (handlerBundle, error) {
	var (
		bundle handlerBundle
		err    error
	)

	bundle.addBook, err = observable.NewCommandWrapper[addbook.Command](
		addbook.NewCommandHandler(lib, j, addbook.WithRetryOptions(s.retries...)),
		commandOptions[addbook.Command](s)...,
	)
	if err != nil {
		return handlerBundle{}, err
	}

	bundle.registerPatron, err = observable.NewCommandWrapper[registerpatron.Command](
		registerpatron.NewCommandHandler(lib, j, registerpatron.WithRetryOptions(s.retries...)),
		commandOptions[registerpatron.Command](s)...,
	)
	if err != nil {
		return handlerBundle{}, err
	}

	bundle.borrowBook, err = observable.NewCommandWrapper[borrowbook.Command](
		borrowbook.NewCommandHandler(lib, j, borrowbook.WithRetryOptions(s.retries...)),
		commandOptions[borrowbook.Command](s)...,
	)
	if err != nil {
		return handlerBundle{}, err
	}

	bundle.returnBook, err = observable.NewCommandWrapper[returnbook.Command](
		returnbook.NewCommandHandler(lib, j, returnbook.WithRetryOptions(s.retries...)),
		commandOptions[returnbook.Command](s)...,
	)
	if err != nil {
		return handlerBundle{}, err
	}

	bundle.suggestBook, err = observable.NewQueryWrapper[suggestbook.Query, suggestbook.Suggestion](
		suggestbook.NewQueryHandler(lib),
		queryOptions[suggestbook.Query, suggestbook.Suggestion](s)...,
	)
	if err != nil {
		return handlerBundle{}, err
	}

	bundle.borrowingHistory, err = observable.NewQueryWrapper[borrowinghistory.Query, borrowinghistory.History](
		borrowinghistory.NewQueryHandler(lib, j),
		queryOptions[borrowinghistory.Query, borrowinghistory.History](s)...,
	)
	if err != nil {
		return handlerBundle{}, err
	}

	return bundle, nil
}

func commandOptions[C shell.Command](s wrapperSettings) []observable.CommandOption[C] {
	var opts []observable.CommandOption[C]

	if s.metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](s.metrics))
	}

	if s.tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](s.tracing))
	}

	if s.logger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](s.logger))
	}

	return opts
}

func queryOptions[Q shell.Query, R any](s wrapperSettings) []observable.QueryOption[Q, R] {
	var opts []observable.QueryOption[Q, R]

	if s.metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](s.metrics))
	}

	if s.tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](s.tracing))
	}

	if s.logger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](s.logger))
	}

	return opts
}
