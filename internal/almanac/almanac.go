package almanac

import (
	"errors"
	"time"

	"saju-api/internal/domain"
)

// CivilZone es la zona horaria fija de todos los instantes: la hora civil
// nativa del almanaque (UTC+8). No se acepta otra zona.
var CivilZone = time.FixedZone("UTC+8", 8*60*60)

var (
	ErrInvalidDate     = errors.New("date does not exist in the calendar")
	ErrYearNotCovered  = errors.New("year not covered by term table")
	ErrTermTableFormat = errors.New("invalid term table")
)

// Reading son los cuatro pilares tal como los entrega el almanaque, en glifos ("甲子").
type Reading struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// Almanac resuelve los pilares de un instante civil segun sus propias tablas de términos solares.
type Almanac interface {
	Pillars(m domain.BirthMoment) (Reading, error)
}

// Ranged despacha por año: primary cubre [from, to] y fallback el resto.
type Ranged struct {
	primary  Almanac
	from, to int
	fallback Almanac
}

func NewRanged(primary Almanac, from, to int, fallback Almanac) *Ranged {
	return &Ranged{primary: primary, from: from, to: to, fallback: fallback}
}

func (r *Ranged) Pillars(m domain.BirthMoment) (Reading, error) {
	return r.BackendFor(m.Year).Pillars(m)
}

// BackendFor devuelve el almanaque que atiende el año dado.
func (r *Ranged) BackendFor(year int) Almanac {
	if r.primary != nil && year >= r.from && year <= r.to {
		return r.primary
	}
	return r.fallback
}

func civilTime(m domain.BirthMoment) (time.Time, error) {
	t := time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, 0, 0, CivilZone)
	if t.Year() != m.Year || int(t.Month()) != m.Month || t.Day() != m.Day {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
