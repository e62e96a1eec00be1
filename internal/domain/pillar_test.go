package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewPillar_RangeChecks(t *testing.T) {
	if _, err := NewPillar(10, 0); !errors.Is(err, ErrStemOutOfRange) {
		t.Fatalf("expected ErrStemOutOfRange, got %v", err)
	}
	if _, err := NewPillar(-1, 0); !errors.Is(err, ErrStemOutOfRange) {
		t.Fatalf("expected ErrStemOutOfRange for -1, got %v", err)
	}
	if _, err := NewPillar(0, 12); !errors.Is(err, ErrBranchOutOfRange) {
		t.Fatalf("expected ErrBranchOutOfRange, got %v", err)
	}

	p, err := NewPillar(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "甲子" || p.Hangul() != "갑자" {
		t.Fatalf("expected 甲子/갑자, got %s/%s", p.String(), p.Hangul())
	}
}

func TestParsePillar(t *testing.T) {
	p, err := ParsePillar("癸亥")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Stem() != 9 || p.Branch() != 11 {
		t.Fatalf("expected stem 9 branch 11, got %d %d", p.Stem(), p.Branch())
	}

	bad := []string{"", "甲", "甲子子", "AB", "甲丑", "子甲"}
	for _, s := range bad {
		if _, err := ParsePillar(s); !errors.Is(err, ErrMalformedPillar) {
			t.Fatalf("expected ErrMalformedPillar for %q, got %v", s, err)
		}
	}
}

func TestParsePillar_AllSexagenaryPairs(t *testing.T) {
	for i := 0; i < 60; i++ {
		want := MustPillar(i%StemCount, i%BranchCount)
		got, err := ParsePillar(want.String())
		if err != nil {
			t.Fatalf("cycle %d: parse %s: %v", i, want, err)
		}
		if got != want {
			t.Fatalf("cycle %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestStemAndBranchElements(t *testing.T) {
	stemWant := []Element{Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}
	for i, want := range stemWant {
		s := Stem(i)
		if s.Element() != want {
			t.Fatalf("stem %s: expected %s, got %s", s.Glyph(), want, s.Element())
		}
		wantPolarity := Yang
		if i%2 == 1 {
			wantPolarity = Yin
		}
		if s.Polarity() != wantPolarity {
			t.Fatalf("stem %s: expected %s, got %s", s.Glyph(), wantPolarity, s.Polarity())
		}
	}

	branchWant := map[string]Element{
		"子": Water, "丑": Earth, "寅": Wood, "卯": Wood, "辰": Earth, "巳": Fire,
		"午": Fire, "未": Earth, "申": Metal, "酉": Metal, "戌": Earth, "亥": Water,
	}
	for i := 0; i < BranchCount; i++ {
		b := Branch(i)
		if b.Element() != branchWant[b.Glyph()] {
			t.Fatalf("branch %s: expected %s, got %s", b.Glyph(), branchWant[b.Glyph()], b.Element())
		}
	}
}

func TestFourPillars_StringRoundTrip(t *testing.T) {
	chart := FourPillars{
		Year:  MustPillar(5, 3),
		Month: MustPillar(2, 0),
		Day:   MustPillar(4, 6),
		Hour:  MustPillar(4, 6),
	}
	if chart.String() != "己卯 丙子 戊午 戊午" {
		t.Fatalf("unexpected string: %q", chart.String())
	}
	parsed, err := ParseFourPillars(chart.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != chart {
		t.Fatalf("expected %s, got %s", chart, parsed)
	}
	if !parsed.Valid() {
		t.Fatalf("expected parsed chart to be valid")
	}

	if _, err := ParseFourPillars("己卯 丙子 戊午"); !errors.Is(err, ErrMalformedPillar) {
		t.Fatalf("expected ErrMalformedPillar for three pillars, got %v", err)
	}
}

func TestPillar_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(MustPillar(0, 0))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got["combined"] != "甲子" || got["combined_ko"] != "갑자" || got["stem"] != "甲" || got["branch_ko"] != "자" {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestElement_StringAndKorean(t *testing.T) {
	if Metal.String() != "metal" || Metal.Korean() != "금" {
		t.Fatalf("unexpected metal names: %s %s", Metal.String(), Metal.Korean())
	}
	if Element(7).Valid() || Element(7).String() != "element(7)" {
		t.Fatalf("expected invalid element to render as element(7), got %s", Element(7))
	}
	raw, _ := json.Marshal(Water)
	if string(raw) != `"water"` {
		t.Fatalf("expected \"water\", got %s", raw)
	}
}

func TestElementCounts(t *testing.T) {
	counts := NewElementCounts([5]int{1, 3, 3, 0, 1})
	if counts.Total() != 8 || counts.Of(Fire) != 3 || counts.Of(Element(9)) != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `{"wood":1,"fire":3,"earth":3,"metal":0,"water":1}` {
		t.Fatalf("unexpected json: %s", raw)
	}
}
