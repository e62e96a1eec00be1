package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"saju-api/internal/domain"
)

// ChartService coordina resolucion, analisis y compatibilidad con cache opcional.
type ChartService struct {
	resolver *CalendarResolver
	cache    ChartCache
	logger   *zap.Logger
}

func NewChartService(resolver *CalendarResolver, cache ChartCache, logger *zap.Logger) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

type ChartReport struct {
	Moment   domain.BirthMoment     `json:"moment"`
	Pillars  domain.FourPillars     `json:"pillars"`
	Analysis domain.ElementAnalysis `json:"analysis"`
}

type CompatibilityReport struct {
	A      ChartReport                `json:"a"`
	B      ChartReport                `json:"b"`
	Result domain.CompatibilityResult `json:"result"`
}

// Chart resuelve y analiza un instante.
func (s *ChartService) Chart(ctx context.Context, m domain.BirthMoment) (ChartReport, error) {
	chart, err := s.resolve(ctx, m)
	if err != nil {
		return ChartReport{}, err
	}
	return ChartReport{Moment: m, Pillars: chart, Analysis: AnalyzeElements(chart)}, nil
}

// Compatibility resuelve ambas cartas en paralelo y las puntua.
func (s *ChartService) Compatibility(ctx context.Context, a, b domain.BirthMoment) (CompatibilityReport, error) {
	var reportA, reportB ChartReport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reportA, err = s.Chart(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		reportB, err = s.Chart(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return CompatibilityReport{}, err
	}
	return CompatibilityReport{
		A:      reportA,
		B:      reportB,
		Result: ScoreCompatibility(reportA.Pillars, reportB.Pillars),
	}, nil
}

func (s *ChartService) resolve(ctx context.Context, m domain.BirthMoment) (domain.FourPillars, error) {
	// Validar antes de tocar la cache evita claves para instantes imposibles.
	if err := ValidateBirthMoment(m); err != nil {
		return domain.FourPillars{}, err
	}
	if s.cache != nil {
		chart, ok, err := s.cache.Get(ctx, m)
		if err != nil {
			s.logger.Warn("chart cache get failed", zap.Error(err), zap.String("moment", m.Key()))
		} else if ok {
			return chart, nil
		}
	}

	chart, err := s.resolver.Resolve(m)
	if err != nil {
		return domain.FourPillars{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, m, chart); err != nil {
			s.logger.Warn("chart cache set failed", zap.Error(err), zap.String("moment", m.Key()))
		}
	}
	return chart, nil
}
