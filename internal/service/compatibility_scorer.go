package service

import (
	"fmt"
	"math"
	"sort"

	"saju-api/internal/domain"
)

const (
	baseCompatibilityScore = 50
	generatingBonus        = 20
	overcomingPenalty      = -10
	sameElementBonus       = 10
	similarityWeight       = 20
	polarityBonus          = 10
)

var sameElementLabels = map[domain.Element]string{
	domain.Wood:  "Twin Forests",
	domain.Fire:  "Twin Flames",
	domain.Earth: "Twin Mountains",
	domain.Metal: "Twin Blades",
	domain.Water: "Twin Rivers",
}

// Claves con los nombres de ambos elementos en orden alfabetico.
var pairLabels = map[string]string{
	"fire-wood":   "Wood feeds Fire",
	"earth-fire":  "Fire enriches Earth",
	"earth-metal": "Earth bears Metal",
	"metal-water": "Metal carries Water",
	"water-wood":  "Water nourishes Wood",
	"earth-wood":  "Wood breaks Earth",
	"earth-water": "Earth dams Water",
	"fire-water":  "Water quenches Fire",
	"fire-metal":  "Fire forges Metal",
	"metal-wood":  "Metal prunes Wood",
}

type scoreBand struct {
	min  int
	text string
}

// compatibilityBands va de mayor a menor umbral.
var compatibilityBands = []scoreBand{
	{90, "A rare match: the two charts complete each other."},
	{80, "Strong affinity with natural mutual support."},
	{70, "A warm bond that grows easily with attention."},
	{60, "Good compatibility with a few points to tend."},
	{50, "Balanced: harmony depends on shared effort."},
	{40, "Noticeable differences that call for patience."},
	{30, "Frequent friction; understanding takes work."},
	{20, "Opposing rhythms that rarely align on their own."},
	{10, "Deep contrasts that demand constant care."},
	{0, "A challenging pairing that tests both sides."},
}

// ScoreCompatibility puntua dos cartas de 0 a 100. Es simetrica en sus argumentos.
func ScoreCompatibility(a, b domain.FourPillars) domain.CompatibilityResult {
	analysisA := AnalyzeElements(a)
	analysisB := AnalyzeElements(b)
	dmA, dmB := analysisA.DayMaster, analysisB.DayMaster

	score := baseCompatibilityScore
	if generates(dmA, dmB) || generates(dmB, dmA) {
		score += generatingBonus
	}
	if overcomes(dmA, dmB) || overcomes(dmB, dmA) {
		score += overcomingPenalty
	}
	if dmA == dmB {
		score += sameElementBonus
	}
	score += int(math.Round(similarityWeight * cosineSimilarity(analysisA.Balance.Vector(), analysisB.Balance.Vector())))
	if a.Day.Stem().Polarity() != b.Day.Stem().Polarity() {
		score += polarityBonus
	}
	score = clampScore(score)

	return domain.CompatibilityResult{
		Score:        score,
		DayMasterA:   dmA,
		DayMasterB:   dmB,
		Relationship: relationshipLabel(dmA, dmB),
		Description:  describeScore(score),
	}
}

// generates: wood→fire→earth→metal→water→wood.
func generates(from, to domain.Element) bool {
	return (int(from)+1)%5 == int(to)
}

// overcomes: wood→earth→water→fire→metal→wood.
func overcomes(from, to domain.Element) bool {
	return (int(from)+2)%5 == int(to)
}

func cosineSimilarity(a, b [5]int) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		magA += float64(a[i] * a[i])
		magB += float64(b[i] * b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func relationshipLabel(a, b domain.Element) string {
	if a == b {
		if label, ok := sameElementLabels[a]; ok {
			return label
		}
	}
	names := []string{a.String(), b.String()}
	sort.Strings(names)
	if label, ok := pairLabels[names[0]+"-"+names[1]]; ok {
		return label
	}
	return fmt.Sprintf("%s meets %s", titleCase(names[0]), titleCase(names[1]))
}

func describeScore(score int) string {
	for _, band := range compatibilityBands {
		if score >= band.min {
			return band.text
		}
	}
	return compatibilityBands[len(compatibilityBands)-1].text
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
