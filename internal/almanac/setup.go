package almanac

import (
	"fmt"
	"os"
)

// Open arma el almanaque por rangos: tabla precisa para el rango moderno y
// lunar-go para el resto. Si path esta vacio la tabla se calcula para
// [from, to]; si no, se lee del archivo y su cobertura manda.
func Open(path string, from, to int) (*Ranged, error) {
	var (
		table *TermTable
		err   error
	)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open term table: %w", err)
		}
		defer f.Close()
		if table, err = LoadTermTable(f); err != nil {
			return nil, err
		}
		first, last := table.Span()
		if first > last {
			return nil, fmt.Errorf("%w: %s has no years", ErrTermTableFormat, path)
		}
		// Enero del primer año necesita los términos del año anterior.
		from, to = first+1, last
	} else {
		if table, err = BuildTermTable(from-1, to); err != nil {
			return nil, err
		}
	}
	return NewRanged(NewTableAlmanac(table), from, to, NewLunarAlmanac()), nil
}
