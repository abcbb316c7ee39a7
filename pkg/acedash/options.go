// Package acedash aggregates registration tables into dashboard charts.
//
// A Service fetches the backing tables of a chart through a TableProvider,
// runs the chart's generator over the requested time window and returns a
// render-ready result. Everything below the provider is pure computation.
package acedash

import (
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/acedash-go/pkg/acedash/generator"
)

// Options configures a Service.
type Options struct {
	// Tables maps table roles to sheet names. Missing roles use
	// generator.DefaultTableNames.
	Tables generator.TableNames
	// Fields relabels fields by "<role>.<field>" name. Fields without an
	// entry are read by position.
	Fields generator.Overrides
	// Now is the clock used for the retention horizon.
	// If nil, time.Now is used.
	Now func() time.Time
	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default service options.
func DefaultOptions() Options {
	return Options{
		Tables: generator.DefaultTableNames(),
		Now:    time.Now,
		Logger: zap.NewNop(),
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
