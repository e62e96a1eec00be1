package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	StemCount   = 10
	BranchCount = 12
)

var (
	ErrStemOutOfRange   = errors.New("stem index out of range")
	ErrBranchOutOfRange = errors.New("branch index out of range")
	ErrMalformedPillar  = errors.New("malformed pillar")
)

// Stem es un tronco celeste (천간), indice 0-9.
type Stem int

// Branch es una rama terrestre (지지), indice 0-11.
type Branch int

var (
	stemGlyphs   = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemHangul   = [StemCount]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
	branchGlyphs = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchHangul = [BranchCount]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}

	branchElements = [BranchCount]Element{
		Water, Earth, Wood, Wood, Earth, Fire,
		Fire, Earth, Metal, Metal, Earth, Water,
	}
)

func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

// Element: dos troncos consecutivos por elemento, en orden canonico.
func (s Stem) Element() Element { return Element(int(s) / 2) }

func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

func (s Stem) Glyph() string  { return stemGlyphs[s] }
func (s Stem) Hangul() string { return stemHangul[s] }

func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) Element() Element { return branchElements[b] }

func (b Branch) Glyph() string  { return branchGlyphs[b] }
func (b Branch) Hangul() string { return branchHangul[b] }

// Pillar es un par tronco-rama inmutable.
type Pillar struct {
	stem   Stem
	branch Branch
}

// NewPillar construye un pilar validando el rango de ambos indices.
func NewPillar(stem, branch int) (Pillar, error) {
	if stem < 0 || stem >= StemCount {
		return Pillar{}, fmt.Errorf("%w: %d", ErrStemOutOfRange, stem)
	}
	if branch < 0 || branch >= BranchCount {
		return Pillar{}, fmt.Errorf("%w: %d", ErrBranchOutOfRange, branch)
	}
	return Pillar{stem: Stem(stem), branch: Branch(branch)}, nil
}

// MustPillar es NewPillar para tablas fijas y tests.
func MustPillar(stem, branch int) Pillar {
	p, err := NewPillar(stem, branch)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePillar interpreta dos glifos ("甲子"). Rechaza pares de paridad distinta,
// que no existen en el ciclo sexagenario.
func ParsePillar(s string) (Pillar, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 2 {
		return Pillar{}, fmt.Errorf("%w: %q", ErrMalformedPillar, s)
	}
	stem := indexOf(stemGlyphs[:], string(runes[0]))
	branch := indexOf(branchGlyphs[:], string(runes[1]))
	if stem < 0 || branch < 0 {
		return Pillar{}, fmt.Errorf("%w: unknown glyph in %q", ErrMalformedPillar, s)
	}
	if stem%2 != branch%2 {
		return Pillar{}, fmt.Errorf("%w: %q is not a sexagenary pair", ErrMalformedPillar, s)
	}
	return Pillar{stem: Stem(stem), branch: Branch(branch)}, nil
}

func indexOf(table []string, glyph string) int {
	for i, g := range table {
		if g == glyph {
			return i
		}
	}
	return -1
}

func (p Pillar) Stem() Stem     { return p.stem }
func (p Pillar) Branch() Branch { return p.branch }

// String devuelve la forma combinada en glifos.
func (p Pillar) String() string { return p.stem.Glyph() + p.branch.Glyph() }

// Hangul devuelve la forma combinada en escritura nativa.
func (p Pillar) Hangul() string { return p.stem.Hangul() + p.branch.Hangul() }

type pillarJSON struct {
	Stem       string `json:"stem"`
	Branch     string `json:"branch"`
	Combined   string `json:"combined"`
	StemKo     string `json:"stem_ko"`
	BranchKo   string `json:"branch_ko"`
	CombinedKo string `json:"combined_ko"`
}

func (p Pillar) MarshalJSON() ([]byte, error) {
	return json.Marshal(pillarJSON{
		Stem:       p.stem.Glyph(),
		Branch:     p.branch.Glyph(),
		Combined:   p.String(),
		StemKo:     p.stem.Hangul(),
		BranchKo:   p.branch.Hangul(),
		CombinedKo: p.Hangul(),
	})
}

// FourPillars es la carta completa: año, mes, dia y hora.
type FourPillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// Stems devuelve los cuatro troncos en orden año, mes, dia, hora.
func (fp FourPillars) Stems() [4]Stem {
	return [4]Stem{fp.Year.stem, fp.Month.stem, fp.Day.stem, fp.Hour.stem}
}

func (fp FourPillars) Branches() [4]Branch {
	return [4]Branch{fp.Year.branch, fp.Month.branch, fp.Day.branch, fp.Hour.branch}
}

// Valid comprueba que los ocho indices esten en rango.
func (fp FourPillars) Valid() bool {
	for _, s := range fp.Stems() {
		if !s.Valid() {
			return false
		}
	}
	for _, b := range fp.Branches() {
		if !b.Valid() {
			return false
		}
	}
	return true
}

// String serializa la carta como "年 月 日 時" en glifos.
func (fp FourPillars) String() string {
	return strings.Join([]string{fp.Year.String(), fp.Month.String(), fp.Day.String(), fp.Hour.String()}, " ")
}

// ParseFourPillars es la inversa de FourPillars.String.
func ParseFourPillars(s string) (FourPillars, error) {
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return FourPillars{}, fmt.Errorf("%w: expected 4 pillars, got %d", ErrMalformedPillar, len(parts))
	}
	var out [4]Pillar
	for i, part := range parts {
		p, err := ParsePillar(part)
		if err != nil {
			return FourPillars{}, err
		}
		out[i] = p
	}
	return FourPillars{Year: out[0], Month: out[1], Day: out[2], Hour: out[3]}, nil
}
