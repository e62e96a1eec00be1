package service

import (
	"fmt"

	"saju-api/internal/almanac"
	"saju-api/internal/domain"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

// CalendarResolver convierte un instante civil en los cuatro pilares.
// No guarda estado: es seguro llamarlo en paralelo.
type CalendarResolver struct {
	almanac almanac.Almanac
}

func NewCalendarResolver(a almanac.Almanac) *CalendarResolver {
	return &CalendarResolver{almanac: a}
}

// Resolve valida la entrada, consulta el almanaque y verifica la lectura.
func (r *CalendarResolver) Resolve(m domain.BirthMoment) (domain.FourPillars, error) {
	if err := ValidateBirthMoment(m); err != nil {
		return domain.FourPillars{}, err
	}

	reading, err := r.read(m)
	if err != nil {
		return domain.FourPillars{}, &BackendError{Op: "almanac " + m.Key(), Err: err}
	}

	var pillars [4]domain.Pillar
	for i, raw := range [4]string{reading.Year, reading.Month, reading.Day, reading.Hour} {
		p, err := domain.ParsePillar(raw)
		if err != nil {
			return domain.FourPillars{}, &BackendError{Op: "parse " + m.Key(), Err: err}
		}
		pillars[i] = p
	}
	chart := domain.FourPillars{Year: pillars[0], Month: pillars[1], Day: pillars[2], Hour: pillars[3]}

	if want := expectedHourPillar(chart.Day, m.Hour); want != chart.Hour {
		return domain.FourPillars{}, &BackendError{
			Op:  "hour pillar " + m.Key(),
			Err: fmt.Errorf("almanac returned %s, expected %s", chart.Hour, want),
		}
	}
	return chart, nil
}

func (r *CalendarResolver) read(m domain.BirthMoment) (reading almanac.Reading, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("almanac panic: %v", rec)
		}
	}()
	return r.almanac.Pillars(m)
}

// ValidateBirthMoment rechaza el primer campo fuera de rango. El dia no se
// contrasta con la longitud del mes; eso le toca al almanaque.
func ValidateBirthMoment(m domain.BirthMoment) error {
	checks := []struct {
		field    string
		value    int
		min, max int
	}{
		{"year", m.Year, MinYear, MaxYear},
		{"month", m.Month, 1, 12},
		{"day", m.Day, 1, 31},
		{"hour", m.Hour, 0, 23},
		{"minute", m.Minute, 0, 59},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return &ValidationError{
				Field:  c.field,
				Reason: fmt.Sprintf("must be between %d and %d, got %d", c.min, c.max, c.value),
			}
		}
	}
	return nil
}

// HourBranch devuelve la rama de la hora: bloques de dos horas con 子 entre 23:00 y 00:59.
func HourBranch(hour int) domain.Branch {
	return domain.Branch((hour + 1) / 2 % domain.BranchCount)
}

// expectedHourPillar aplica la regla de las cinco ratas. A las 23h la rama ya
// es 子 y el tronco se calcula con el dia siguiente, aunque el pilar del dia
// sigue siendo el de hoy hasta medianoche.
func expectedHourPillar(day domain.Pillar, hour int) domain.Pillar {
	branch := HourBranch(hour)
	dayStem := int(day.Stem())
	if hour == 23 {
		dayStem = (dayStem + 1) % domain.StemCount
	}
	stem := (dayStem%5*2 + int(branch)) % domain.StemCount
	return domain.MustPillar(stem, int(branch))
}
