package service

import (
	"math"

	"saju-api/internal/domain"
)

// AnalyzeElements resume la carta en distribucion de elementos y polaridad.
// Es una funcion total sobre cualquier FourPillars valido.
func AnalyzeElements(chart domain.FourPillars) domain.ElementAnalysis {
	var counts [5]int
	for _, s := range chart.Stems() {
		counts[s.Element()]++
	}
	for _, b := range chart.Branches() {
		counts[b.Element()]++
	}

	yang := 0
	for _, s := range chart.Stems() {
		if s.Polarity() == domain.Yang {
			yang++
		}
	}
	yangPct := yang * 100 / 4

	return domain.ElementAnalysis{
		Balance:   domain.NewElementBalance(percentages(counts)),
		Counts:    domain.NewElementCounts(counts),
		YinYang:   domain.YinYang{Yang: yangPct, Yin: 100 - yangPct},
		DayMaster: chart.Day.Stem().Element(),
		Dominant:  extremeElement(counts, func(a, b int) bool { return a > b }),
		Weakest:   extremeElement(counts, func(a, b int) bool { return a < b }),
	}
}

// percentages redondea cada cuenta sobre 8 y ajusta el sobrante en el
// elemento con mas cuentas, para que la suma sea exactamente 100.
func percentages(counts [5]int) [5]int {
	total := 0
	for _, c := range counts {
		total += c
	}
	var pct [5]int
	if total == 0 {
		return pct
	}
	sum := 0
	for i, c := range counts {
		pct[i] = int(math.Round(float64(c) * 100 / float64(total)))
		sum += pct[i]
	}
	top := extremeElement(counts, func(a, b int) bool { return a > b })
	pct[top] += 100 - sum
	return pct
}

// extremeElement recorre en orden canonico; solo una mejora estricta
// desplaza al candidato, asi los empates quedan en el primero.
func extremeElement(counts [5]int, better func(a, b int) bool) domain.Element {
	best := domain.Elements[0]
	for _, e := range domain.Elements[1:] {
		if better(counts[e], counts[best]) {
			best = e
		}
	}
	return best
}
