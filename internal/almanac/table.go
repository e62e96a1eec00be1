package almanac

import (
	"fmt"

	"saju-api/internal/domain"
)

// TableAlmanac calcula los pilares de forma aritmetica sobre una TermTable.
// Es el backend preciso para el rango moderno.
type TableAlmanac struct {
	table *TermTable
}

func NewTableAlmanac(table *TermTable) *TableAlmanac {
	return &TableAlmanac{table: table}
}

func (a *TableAlmanac) Pillars(m domain.BirthMoment) (Reading, error) {
	t, err := civilTime(m)
	if err != nil {
		return Reading{}, fmt.Errorf("%w: %s", err, m.Key())
	}

	terms, ok := a.table.Year(m.Year)
	if !ok {
		return Reading{}, fmt.Errorf("%w: %d", ErrYearNotCovered, m.Year)
	}
	sajuYear := m.Year
	if t.Before(terms.Jie[0]) {
		sajuYear--
		if terms, ok = a.table.Year(sajuYear); !ok {
			return Reading{}, fmt.Errorf("%w: %d", ErrYearNotCovered, sajuYear)
		}
	}

	// Meses contados desde 寅 (0) hasta 丑 (11).
	month := 0
	for i := 1; i < len(terms.Jie); i++ {
		if !t.Before(terms.Jie[i]) {
			month = i
		}
	}

	yearStem := mod(sajuYear-4, domain.StemCount)
	yearBranch := mod(sajuYear-4, domain.BranchCount)
	monthStem := (yearStem%5*2 + 2 + month) % domain.StemCount
	monthBranch := (2 + month) % domain.BranchCount

	jdn := julianDayNumber(m.Year, m.Month, m.Day)
	dayStem := mod(jdn-11, domain.StemCount)
	dayBranch := mod(jdn-11, domain.BranchCount)

	hourBranch := (m.Hour + 1) / 2 % domain.BranchCount
	// A las 23h la rama ya es 子 y el tronco sigue al dia siguiente,
	// aunque el pilar del dia no cambie hasta medianoche.
	stemDay := dayStem
	if m.Hour == 23 {
		stemDay = (dayStem + 1) % domain.StemCount
	}
	hourStem := (stemDay%5*2 + hourBranch) % domain.StemCount

	return Reading{
		Year:  domain.MustPillar(yearStem, yearBranch).String(),
		Month: domain.MustPillar(monthStem, monthBranch).String(),
		Day:   domain.MustPillar(dayStem, dayBranch).String(),
		Hour:  domain.MustPillar(hourStem, hourBranch).String(),
	}, nil
}

// julianDayNumber devuelve el numero de dia juliano (gregoriano) al mediodia.
func julianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
