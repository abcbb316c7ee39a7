package acedash

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/acedash-go/pkg/acedash/calendar"
	"github.com/ukaji3/acedash-go/pkg/acedash/generator"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
	"github.com/ukaji3/acedash-go/pkg/acedash/validate"
)

// TableProvider fetches a backing table by sheet name. Implementations may
// be slow, may fail and may cache; the Service never retries.
type TableProvider interface {
	FetchTable(ctx context.Context, name string) (*models.Table, error)
}

// Service generates charts and time options from a TableProvider.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	provider TableProvider
	opts     Options
	log      *zap.Logger
}

// NewService creates a Service reading tables from provider.
func NewService(provider TableProvider, opts Options) *Service {
	return &Service{
		provider: provider,
		opts:     opts,
		log:      opts.logger(),
	}
}

// Generate builds chart chartID over window in the given aggregation mode.
// Only the tables the chart reads are fetched, concurrently; any failed
// fetch fails the whole request with a *DataSourceError.
func (s *Service) Generate(ctx context.Context, chartID string, window []calendar.MonthKey, mode models.AggregationMode) (*models.ChartResult, error) {
	kind, ok := generator.ParseKind(chartID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChartID, chartID)
	}
	if !validate.IsValidAggregationMode(string(mode)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	spec, _ := generator.Lookup(kind)

	start := time.Now()
	tables, err := s.fetch(ctx, spec.Roles())
	if err != nil {
		return nil, err
	}

	result, err := generator.New(window, mode).Run(spec, tables, s.opts.Fields)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", kind, err)
	}

	s.log.Debug("chart generated",
		zap.Stringer("chart", kind),
		zap.String("mode", string(mode)),
		zap.Int("months", len(window)),
		zap.Int("datasets", len(result.Datasets)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// fetch loads the tables of roles concurrently and joins them.
func (s *Service) fetch(ctx context.Context, roles []generator.Role) (map[generator.Role]*models.Table, error) {
	tables := make([]*models.Table, len(roles))
	g, ctx := errgroup.WithContext(ctx)
	for i, role := range roles {
		g.Go(func() error {
			t, err := s.fetchTable(ctx, role)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRole := make(map[generator.Role]*models.Table, len(roles))
	for i, role := range roles {
		byRole[role] = tables[i]
	}
	return byRole, nil
}

func (s *Service) fetchTable(ctx context.Context, role generator.Role) (*models.Table, error) {
	name := s.opts.Tables.Name(role)
	t, err := s.provider.FetchTable(ctx, name)
	if err != nil {
		return nil, NewDataSourceError(name, err)
	}
	if t == nil {
		return nil, NewDataSourceError(name, fmt.Errorf("provider returned no table"))
	}
	s.log.Debug("table fetched",
		zap.String("role", string(role)),
		zap.String("table", name),
		zap.Int("rows", t.Len()),
	)
	return t, nil
}

// TimeOptions returns the months present in the identity table's date
// field that are not older than the retention horizon, with the semesters
// and academic years they fall in. All three lists are ascending and
// deduplicated.
func (s *Service) TimeOptions(ctx context.Context) (*models.TimeOptions, error) {
	t, err := s.fetchTable(ctx, generator.RoleIdentity)
	if err != nil {
		return nil, err
	}
	idx, err := generator.IdentityDate.Resolve(t.Columns, s.opts.Fields)
	if err != nil {
		return nil, NewDataSourceError(t.Name, err)
	}

	horizon := calendar.MinAvailableMonth(s.opts.now())
	var months []calendar.MonthKey
	for _, r := range t.Rows {
		if m, ok := calendar.ParseMonthKey(r.At(idx)); ok && m >= horizon {
			months = append(months, m)
		}
	}
	return timeOptionsOf(months), nil
}

func timeOptionsOf(months []calendar.MonthKey) *models.TimeOptions {
	slices.Sort(months)
	months = slices.Compact(months)

	var (
		semesters []calendar.Semester
		years     []calendar.AcademicYear
	)
	for _, m := range months {
		if sem, err := m.Semester(); err == nil {
			semesters = append(semesters, sem)
		}
		if y, err := m.AcademicYear(); err == nil {
			years = append(years, y)
		}
	}
	slices.SortFunc(semesters, func(a, b calendar.Semester) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Term - b.Term
	})
	semesters = slices.Compact(semesters)
	slices.Sort(years)
	years = slices.Compact(years)

	opts := &models.TimeOptions{
		Months:    make([]calendar.MonthKey, 0, len(months)),
		Semesters: make([]string, 0, len(semesters)),
		Years:     make([]string, 0, len(years)),
	}
	opts.Months = append(opts.Months, months...)
	for _, sem := range semesters {
		opts.Semesters = append(opts.Semesters, sem.String())
	}
	for _, y := range years {
		opts.Years = append(opts.Years, y.String())
	}
	return opts
}

// Window resolves a user time selection against the current time options.
func (s *Service) Window(ctx context.Context, mode models.TimeMode, selections []string) ([]calendar.MonthKey, error) {
	opts, err := s.TimeOptions(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveTimeWindow(mode, selections, opts.Months)
}
