package almanac

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/6tail/lunar-go/calendar"
	"gopkg.in/yaml.v3"
)

const termTimeLayout = "2006-01-02 15:04:05"

// jieNames son los doce términos "jie" que abren cada mes, desde 立春.
// El ultimo (小寒) cae en enero del año siguiente.
var jieNames = [12]string{"立春", "惊蛰", "清明", "立夏", "芒种", "小暑", "立秋", "白露", "寒露", "立冬", "大雪", "小寒"}

// lunar-go nombra en pinyin los términos que pertenecen a años vecinos.
var pinyinTermNames = map[string]string{
	"DA_XUE":   "大雪",
	"DONG_ZHI": "冬至",
	"XIAO_HAN": "小寒",
	"DA_HAN":   "大寒",
	"LI_CHUN":  "立春",
	"YU_SHUI":  "雨水",
	"JING_ZHE": "惊蛰",
}

// TermYear guarda los instantes de los doce jie de un año de saju.
// Jie[0] es 立春 del año y Jie[11] es 小寒 del año siguiente.
type TermYear struct {
	Year int
	Jie  [12]time.Time
}

// TermTable es una tabla precalculada de términos solares por año.
type TermTable struct {
	years map[int]TermYear
}

func NewTermTable(years ...TermYear) (*TermTable, error) {
	t := &TermTable{years: make(map[int]TermYear, len(years))}
	for _, y := range years {
		if err := y.validate(); err != nil {
			return nil, err
		}
		t.years[y.Year] = y
	}
	return t, nil
}

// Year devuelve los términos del año, si estan en la tabla.
func (t *TermTable) Year(year int) (TermYear, bool) {
	y, ok := t.years[year]
	return y, ok
}

// Span devuelve el primer y ultimo año cubiertos.
func (t *TermTable) Span() (from, to int) {
	years := t.sortedYears()
	if len(years) == 0 {
		return 0, -1
	}
	return years[0], years[len(years)-1]
}

func (t *TermTable) sortedYears() []int {
	years := make([]int, 0, len(t.years))
	for y := range t.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func (y TermYear) validate() error {
	for i := 1; i < len(y.Jie); i++ {
		if !y.Jie[i-1].Before(y.Jie[i]) {
			return fmt.Errorf("%w: year %d: %s not after %s", ErrTermTableFormat, y.Year, jieNames[i], jieNames[i-1])
		}
	}
	if y.Jie[0].Year() != y.Year {
		return fmt.Errorf("%w: year %d: start of spring falls in %d", ErrTermTableFormat, y.Year, y.Jie[0].Year())
	}
	return nil
}

// BuildTermTable calcula la tabla para [from, to] con el motor astronomico de lunar-go.
func BuildTermTable(from, to int) (*TermTable, error) {
	if from > to {
		return nil, fmt.Errorf("%w: empty range %d-%d", ErrTermTableFormat, from, to)
	}
	years := make([]TermYear, 0, to-from+1)
	for y := from; y <= to; y++ {
		ty, err := lunarTermYear(y)
		if err != nil {
			return nil, err
		}
		years = append(years, ty)
	}
	return NewTermTable(years...)
}

func lunarTermYear(year int) (ty TermYear, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: year %d: %v", ErrTermTableFormat, year, rec)
		}
	}()

	// El año lunar que contiene junio trae los términos desde diciembre previo
	// hasta marzo siguiente.
	table := calendar.NewSolarFromYmd(year, 6, 1).GetLunar().GetJieQiTable()
	found := make(map[string]time.Time, len(table))
	for key, solar := range table {
		name := key
		if zh, ok := pinyinTermNames[key]; ok {
			name = zh
		}
		found[fmt.Sprintf("%s/%d", name, solar.GetYear())] = time.Date(
			solar.GetYear(), time.Month(solar.GetMonth()), solar.GetDay(),
			solar.GetHour(), solar.GetMinute(), solar.GetSecond(), 0, CivilZone,
		)
	}

	ty.Year = year
	for i, name := range jieNames {
		want := year
		if i == len(jieNames)-1 {
			want = year + 1
		}
		instant, ok := found[fmt.Sprintf("%s/%d", name, want)]
		if !ok {
			return TermYear{}, fmt.Errorf("%w: year %d: %s missing", ErrTermTableFormat, year, name)
		}
		ty.Jie[i] = instant
	}
	return ty, nil
}

type termTableFile struct {
	Zone  string         `yaml:"zone"`
	Years []termYearFile `yaml:"years"`
}

type termYearFile struct {
	Year int      `yaml:"year"`
	Jie  []string `yaml:"jie"`
}

// WriteYAML serializa la tabla; LoadTermTable la lee de vuelta.
func (t *TermTable) WriteYAML(w io.Writer) error {
	doc := termTableFile{Zone: "+08:00"}
	for _, year := range t.sortedYears() {
		ty := t.years[year]
		row := termYearFile{Year: year, Jie: make([]string, len(ty.Jie))}
		for i, instant := range ty.Jie {
			row.Jie[i] = instant.In(CivilZone).Format(termTimeLayout)
		}
		doc.Years = append(doc.Years, row)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// LoadTermTable lee una tabla en el formato de WriteYAML.
func LoadTermTable(r io.Reader) (*TermTable, error) {
	var doc termTableFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTermTableFormat, err)
	}
	if doc.Zone != "" && doc.Zone != "+08:00" {
		return nil, fmt.Errorf("%w: unsupported zone %q", ErrTermTableFormat, doc.Zone)
	}
	years := make([]TermYear, 0, len(doc.Years))
	for _, row := range doc.Years {
		if len(row.Jie) != len(jieNames) {
			return nil, fmt.Errorf("%w: year %d: expected %d terms, got %d", ErrTermTableFormat, row.Year, len(jieNames), len(row.Jie))
		}
		ty := TermYear{Year: row.Year}
		for i, raw := range row.Jie {
			instant, err := time.ParseInLocation(termTimeLayout, raw, CivilZone)
			if err != nil {
				return nil, fmt.Errorf("%w: year %d: %v", ErrTermTableFormat, row.Year, err)
			}
			ty.Jie[i] = instant
		}
		years = append(years, ty)
	}
	return NewTermTable(years...)
}
