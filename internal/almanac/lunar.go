package almanac

import (
	"fmt"

	"github.com/6tail/lunar-go/calendar"

	"saju-api/internal/domain"
)

// daySectMidnight hace que el pilar del dia cambie a las 00:00 y no a las 23:00.
const daySectMidnight = 2

// LunarAlmanac implementa Almanac con el calendario astronomico de lunar-go.
// Cubre cualquier año y sirve como respaldo fuera del rango de la tabla.
type LunarAlmanac struct{}

func NewLunarAlmanac() *LunarAlmanac {
	return &LunarAlmanac{}
}

func (a *LunarAlmanac) Pillars(m domain.BirthMoment) (reading Reading, err error) {
	if _, err := civilTime(m); err != nil {
		return Reading{}, fmt.Errorf("%w: %s", err, m.Key())
	}
	// lunar-go hace panic con fechas fuera de su dominio.
	defer func() {
		if rec := recover(); rec != nil {
			reading = Reading{}
			err = fmt.Errorf("lunar almanac %s: %v", m.Key(), rec)
		}
	}()

	solar := calendar.NewSolar(m.Year, m.Month, m.Day, m.Hour, m.Minute, 0)
	eightChar := solar.GetLunar().GetEightChar()
	eightChar.SetSect(daySectMidnight)

	return Reading{
		Year:  eightChar.GetYear(),
		Month: eightChar.GetMonth(),
		Day:   eightChar.GetDay(),
		Hour:  eightChar.GetTime(),
	}, nil
}
