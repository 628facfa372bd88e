package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/iwvelando/poder-adquisitivo/internal/compare"
	"github.com/iwvelando/poder-adquisitivo/internal/config"
	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Spec describes one dataset to load.
type Spec struct {
	Name         string
	Source       string
	PeriodColumn string
	ValueColumn  string
}

// SpecsFromConfig lists the configured datasets in a fixed order. Datasets
// without a source are left out.
func SpecsFromConfig(conf *config.Configuration) []Spec {
	var specs []Spec
	for _, name := range []string{
		constants.DatasetInflation,
		constants.DatasetOfficialRate,
		constants.DatasetBlueRate,
		constants.DatasetFare,
	} {
		d := conf.Datasets.Named()[name]
		source := conf.ResolveSource(d)
		if source == "" {
			continue
		}
		periodColumn := d.PeriodColumn
		if periodColumn == "" {
			periodColumn = constants.DefaultPeriodColumn
		}
		specs = append(specs, Spec{Name: name, Source: source, PeriodColumn: periodColumn, ValueColumn: d.ValueColumn})
	}
	return specs
}

// NewOpener returns a Router for the configured sources. The S3 client is
// only built when a source needs it.
func NewOpener(ctx context.Context, conf *config.Configuration) (Opener, error) {
	router := Router{
		File: FileOpener{},
		HTTP: NewHTTPOpener(time.Duration(conf.HTTP.Timeout) * time.Second),
	}

	var sources []string
	for _, spec := range SpecsFromConfig(conf) {
		sources = append(sources, spec.Source)
	}
	if UsesS3(sources...) {
		s3Opener, err := NewS3Opener(ctx, conf.S3)
		if err != nil {
			return nil, err
		}
		router.S3 = s3Opener
	}
	return router, nil
}

// LoadOne opens and parses a single dataset.
func LoadOne(ctx context.Context, opener Opener, spec Spec) (series.Series, Stats, error) {
	rc, err := opener.Open(ctx, spec.Source)
	if err != nil {
		return series.Series{}, Stats{}, fmt.Errorf("dataset %s: %w", spec.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	s, stats, err := Parse(spec.Name, rc, spec.PeriodColumn, spec.ValueColumn)
	if err != nil {
		return series.Series{}, stats, fmt.Errorf("dataset %s: %w", spec.Name, err)
	}
	return s, stats, nil
}

// Store holds loaded series by name. It is read-only once built.
type Store struct {
	series map[string]series.Series
}

// NewStore builds a store from series keyed by their names.
func NewStore(list ...series.Series) *Store {
	st := &Store{series: make(map[string]series.Series, len(list))}
	for _, s := range list {
		st.series[s.Name] = s
	}
	return st
}

// Load fetches every spec concurrently. The first failure cancels the
// remaining fetches and is returned.
func Load(ctx context.Context, logger *zap.Logger, opener Opener, specs []Spec) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	names := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if names[spec.Name] {
			return nil, fmt.Errorf("dataset %s configured twice", spec.Name)
		}
		names[spec.Name] = true
	}

	loaded := make([]series.Series, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			start := time.Now()
			s, stats, err := LoadOne(gctx, opener, spec)
			if err != nil {
				return err
			}
			if stats.Dropped > 0 {
				logger.Debug(fmt.Sprintf("dropped %d malformed rows from dataset %s", stats.Dropped, spec.Name),
					zap.String("op", "dataset.Load"),
				)
			}
			logger.Info("loaded dataset",
				zap.String("op", "dataset.Load"),
				zap.String("dataset", spec.Name),
				zap.String("source", spec.Source),
				zap.Int("records", stats.Kept()),
				zap.Duration("elapsed", time.Since(start)),
			)
			if s.Empty() {
				logger.Warn("dataset has no usable records; calculators that need it will fail",
					zap.String("op", "dataset.Load"),
					zap.String("dataset", spec.Name),
				)
			}
			loaded[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, fmt.Errorf("dataset loading cancelled: %w", err)
		}
		return nil, err
	}

	return NewStore(loaded...), nil
}

// Get returns the series named name.
func (st *Store) Get(name string) (series.Series, bool) {
	s, ok := st.series[name]
	return s, ok
}

// Names lists the loaded datasets in sorted order.
func (st *Store) Names() []string {
	names := make([]string, 0, len(st.series))
	for name := range st.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Datasets returns the series the calculators read. Missing datasets are
// empty series.
func (st *Store) Datasets() compare.Datasets {
	get := func(name string) series.Series {
		if s, ok := st.series[name]; ok {
			return s
		}
		return series.New(name, nil)
	}
	return compare.Datasets{
		Inflation:    get(constants.DatasetInflation),
		Fare:         get(constants.DatasetFare),
		OfficialRate: get(constants.DatasetOfficialRate),
		BlueRate:     get(constants.DatasetBlueRate),
	}
}
