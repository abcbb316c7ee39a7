package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ukaji3/acedash-go/pkg/acedash"
	"github.com/ukaji3/acedash-go/pkg/acedash/cache"
	"github.com/ukaji3/acedash-go/pkg/acedash/config"
	"github.com/ukaji3/acedash-go/pkg/acedash/source"
)

// stack is a configured service plus the resources behind it.
type stack struct {
	service  *acedash.Service
	provider acedash.TableProvider
	cached   *source.Cached
}

func (s *stack) Close() error {
	if s.cached != nil {
		return s.cached.Close()
	}
	return nil
}

// Flush empties the table cache, if any.
func (s *stack) Flush() {
	if s.cached != nil {
		s.cached.Flush()
	}
}

// newStack builds the table provider described by the configuration and a
// service on top of it. reg may be nil.
func (a *app) newStack(ctx context.Context, reg prometheus.Registerer) (*stack, error) {
	var provider acedash.TableProvider
	switch a.cfg.Source.Kind {
	case config.SourceWorkbook:
		provider = source.NewWorkbook(a.cfg.Source.WorkbookPath)
	case config.SourceSheets:
		provider = source.NewSheets(source.SheetsConfig{
			SpreadsheetID: a.cfg.Source.SpreadsheetID,
			BaseURL:       a.cfg.Source.BaseURL,
			UserAgent:     a.cfg.Source.UserAgent,
			Timeout:       a.cfg.Source.Timeout,
			MaxRetries:    a.cfg.Source.MaxRetries,
			RateLimit:     a.cfg.Source.RequestsPerSecond,
			Burst:         a.cfg.Source.Burst,
			Logger:        a.logger.Named("sheets"),
		})
	default:
		return nil, fmt.Errorf("unknown source kind %q", a.cfg.Source.Kind)
	}

	s := &stack{provider: provider}
	if a.cfg.Cache.Enabled {
		cached, err := source.NewCached(ctx, provider,
			cache.WithTTL(a.cfg.Cache.TTL),
			cache.WithCleanupInterval(a.cfg.Cache.CleanupInterval),
			cache.WithMetrics(reg, "tables"),
		)
		if err != nil {
			return nil, fmt.Errorf("create table cache: %w", err)
		}
		s.cached = cached
		s.provider = cached
	}

	opts := acedash.DefaultOptions()
	opts.Tables = a.cfg.TableNames()
	opts.Fields = a.cfg.FieldOverrides()
	opts.Logger = a.logger.Named("service")
	s.service = acedash.NewService(s.provider, opts)

	a.logger.Debug("table provider ready",
		zap.String("source", a.cfg.Source.Kind),
		zap.Bool("cache", a.cfg.Cache.Enabled),
	)
	return s, nil
}
