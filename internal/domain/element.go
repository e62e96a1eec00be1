package domain

import (
	"encoding/json"
	"fmt"
)

// Element es uno de los cinco elementos (오행).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements fija el orden canonico usado en desempates y vectores.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}

var elementNamesKo = [5]string{"목", "화", "토", "금", "수"}

func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("element(%d)", int(e))
	}
	return elementNames[e]
}

// Korean devuelve el nombre en hangul.
func (e Element) Korean() string {
	if !e.Valid() {
		return ""
	}
	return elementNamesKo[e]
}

func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// Polarity distingue yang de yin.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "yin"
	}
	return "yang"
}

func (p Polarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
