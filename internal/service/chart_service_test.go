package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"saju-api/internal/almanac"
	"saju-api/internal/domain"
)

// countingAlmanac delega en otro almanaque y cuenta las consultas.
type countingAlmanac struct {
	mu    sync.Mutex
	inner almanac.Almanac
	calls int
}

func (c *countingAlmanac) Pillars(m domain.BirthMoment) (almanac.Reading, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Pillars(m)
}

type failingChartCache struct{}

func (failingChartCache) Get(context.Context, domain.BirthMoment) (domain.FourPillars, bool, error) {
	return domain.FourPillars{}, false, errors.New("cache down")
}

func (failingChartCache) Set(context.Context, domain.BirthMoment, domain.FourPillars) error {
	return errors.New("cache down")
}

func TestChartService_ChartUsesCache(t *testing.T) {
	counter := &countingAlmanac{inner: almanac.NewLunarAlmanac()}
	svc := NewChartService(NewCalendarResolver(counter), NewMemoryChartCache(0), nil)
	m := domain.BirthMoment{Year: 2000, Month: 1, Day: 1, Hour: 12}

	first, err := svc.Chart(context.Background(), m)
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	second, err := svc.Chart(context.Background(), m)
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	if counter.calls != 1 {
		t.Fatalf("expected 1 almanac call, got %d", counter.calls)
	}
	if first.Pillars != second.Pillars || first.Analysis != second.Analysis {
		t.Fatalf("expected cached report to match, got %+v vs %+v", first, second)
	}
	if first.Pillars.String() != "己卯 丙子 戊午 戊午" {
		t.Fatalf("unexpected pillars %s", first.Pillars)
	}
	if first.Analysis.Balance.Total() != 100 {
		t.Fatalf("expected balance to sum to 100, got %d", first.Analysis.Balance.Total())
	}
}

func TestChartService_CacheFailuresAreNotFatal(t *testing.T) {
	svc := NewChartService(NewCalendarResolver(almanac.NewLunarAlmanac()), failingChartCache{}, nil)
	if _, err := svc.Chart(context.Background(), domain.BirthMoment{Year: 1999, Month: 7, Day: 20, Hour: 8}); err != nil {
		t.Fatalf("expected chart despite cache errors, got %v", err)
	}
}

func TestChartService_InvalidInputSkipsBackend(t *testing.T) {
	counter := &countingAlmanac{inner: almanac.NewLunarAlmanac()}
	svc := NewChartService(NewCalendarResolver(counter), NewMemoryChartCache(0), nil)

	_, err := svc.Chart(context.Background(), domain.BirthMoment{Year: 2000, Month: 13, Day: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if counter.calls != 0 {
		t.Fatalf("expected no almanac calls, got %d", counter.calls)
	}
}

func TestChartService_Compatibility(t *testing.T) {
	svc := NewChartService(NewCalendarResolver(almanac.NewLunarAlmanac()), nil, nil)
	a := domain.BirthMoment{Year: 2000, Month: 1, Day: 1, Hour: 12}
	b := domain.BirthMoment{Year: 1988, Month: 11, Day: 3, Hour: 21, Minute: 15}

	report, err := svc.Compatibility(context.Background(), a, b)
	if err != nil {
		t.Fatalf("compatibility failed: %v", err)
	}
	if report.A.Moment != a || report.B.Moment != b {
		t.Fatalf("expected reports in argument order, got %+v / %+v", report.A.Moment, report.B.Moment)
	}
	want := ScoreCompatibility(report.A.Pillars, report.B.Pillars)
	if report.Result != want {
		t.Fatalf("expected %+v, got %+v", want, report.Result)
	}

	reversed, err := svc.Compatibility(context.Background(), b, a)
	if err != nil {
		t.Fatalf("compatibility failed: %v", err)
	}
	if reversed.Result.Score != report.Result.Score {
		t.Fatalf("expected symmetric score, got %d vs %d", report.Result.Score, reversed.Result.Score)
	}
}

func TestChartService_CompatibilityPropagatesErrors(t *testing.T) {
	svc := NewChartService(NewCalendarResolver(almanac.NewLunarAlmanac()), nil, nil)
	_, err := svc.Compatibility(context.Background(),
		domain.BirthMoment{Year: 2000, Month: 1, Day: 1},
		domain.BirthMoment{Year: 2000, Month: 1, Day: 1, Hour: 24},
	)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "hour" {
		t.Fatalf("expected hour ValidationError, got %v", err)
	}
}
