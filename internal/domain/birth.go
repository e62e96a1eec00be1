package domain

import "fmt"

// BirthMoment es un instante civil en la zona horaria fija del almanaque.
type BirthMoment struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Key devuelve la forma canonica YYYY-MM-DDTHH:MM, usada como clave de cache.
func (m BirthMoment) Key() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", m.Year, m.Month, m.Day, m.Hour, m.Minute)
}
