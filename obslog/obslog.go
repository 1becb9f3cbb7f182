// Package obslog provides the structured logger the CLI and report layers
// use. Per spec.md §7, the core analysis packages (state, cna, metric,
// similarity, environs) never log; only the outer command and reporting
// layers do, using this package.
//
// Grounded on the teacher's go.mod dependency on no logging library of
// its own; zap is adopted from the rest of the retrieval pack
// (turtacn-KeyIP-Intelligence/go.mod requires go.uber.org/zap directly)
// as the structured-logging library this module's CLI surface uses.
package obslog

import (
	"go.uber.org/zap"
)

// New builds a production zap logger, or a development logger (human
// readable console output with capitalized level names) when verbose is
// true.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true

		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true

	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that do not want CLI-style output.
func Nop() *zap.Logger {
	return zap.NewNop()
}
