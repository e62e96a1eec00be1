package domain

// ElementBalance reparte 100 puntos porcentuales entre los cinco elementos.
type ElementBalance struct {
	Wood  int `json:"wood"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Metal int `json:"metal"`
	Water int `json:"water"`
}

// NewElementBalance construye el balance desde un vector en orden canonico.
func NewElementBalance(v [5]int) ElementBalance {
	return ElementBalance{Wood: v[Wood], Fire: v[Fire], Earth: v[Earth], Metal: v[Metal], Water: v[Water]}
}

// Vector devuelve los porcentajes en orden wood, fire, earth, metal, water.
func (b ElementBalance) Vector() [5]int {
	return [5]int{b.Wood, b.Fire, b.Earth, b.Metal, b.Water}
}

func (b ElementBalance) Of(e Element) int {
	if !e.Valid() {
		return 0
	}
	return b.Vector()[e]
}

func (b ElementBalance) Total() int {
	return b.Wood + b.Fire + b.Earth + b.Metal + b.Water
}

// ElementCounts son las apariciones de cada elemento entre los ocho caracteres.
type ElementCounts struct {
	Wood  int `json:"wood"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Metal int `json:"metal"`
	Water int `json:"water"`
}

func NewElementCounts(v [5]int) ElementCounts {
	return ElementCounts{Wood: v[Wood], Fire: v[Fire], Earth: v[Earth], Metal: v[Metal], Water: v[Water]}
}

func (c ElementCounts) Vector() [5]int {
	return [5]int{c.Wood, c.Fire, c.Earth, c.Metal, c.Water}
}

func (c ElementCounts) Of(e Element) int {
	if !e.Valid() {
		return 0
	}
	return c.Vector()[e]
}

// Total es 8 para cualquier carta completa.
func (c ElementCounts) Total() int {
	return c.Wood + c.Fire + c.Earth + c.Metal + c.Water
}

// YinYang es el reparto de polaridad sobre los cuatro troncos.
type YinYang struct {
	Yang int `json:"yang"`
	Yin  int `json:"yin"`
}

type ElementAnalysis struct {
	Balance   ElementBalance `json:"balance"`
	Counts    ElementCounts  `json:"counts"`
	YinYang   YinYang        `json:"yin_yang"`
	DayMaster Element        `json:"day_master"`
	Dominant  Element        `json:"dominant"`
	Weakest   Element        `json:"weakest"`
}

type CompatibilityResult struct {
	Score        int     `json:"score"`
	DayMasterA   Element `json:"day_master_a"`
	DayMasterB   Element `json:"day_master_b"`
	Relationship string  `json:"relationship"`
	Description  string  `json:"description"`
}
