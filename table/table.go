// Package table turns records into a display grid: headers, rendered
// cells, an empty placeholder and a loading state. Sorting is owned by the
// caller; the grid only shows the direction it was given.
package table

import (
	"fmt"
	"reflect"
	"strings"

	"wms-finance/types"
)

// Placeholder is the text of the single row shown for an empty grid.
const Placeholder = "No data"

// SkeletonRows is how many placeholder rows a loading grid renders.
const SkeletonRows = 5

type Column[T any] struct {
	Key   string
	Label string
	// Value extracts the cell value. When nil the record field whose JSON
	// name is Key is used.
	Value func(T) any
	// Render formats the value. When nil the raw value is printed.
	Render   func(value any, row T) string
	Sortable bool
}

type SortState struct {
	Key       string              `json:"key"`
	Direction types.SortDirection `json:"direction"`
}

// NextSort is the state after the header of key is activated: the same
// key ascending flips to descending, anything else starts ascending.
func NextSort(current *SortState, key string) SortState {
	if current != nil && current.Key == key && current.Direction == types.Ascending {
		return SortState{Key: key, Direction: types.Descending}
	}
	return SortState{Key: key, Direction: types.Ascending}
}

type Header struct {
	Key       string              `json:"key"`
	Label     string              `json:"label"`
	Sortable  bool                `json:"sortable"`
	Direction types.SortDirection `json:"direction,omitempty"`
}

type Cell struct {
	Text    string `json:"text"`
	ColSpan int    `json:"colSpan,omitempty"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

type Grid struct {
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
	Empty   bool     `json:"empty"`
	Loading bool     `json:"loading"`
}

// Build lays records out under columns. Rows keep the order of records.
func Build[T any](records []T, columns []Column[T], sort *SortState, loading bool) Grid {
	g := Grid{
		Headers: make([]Header, len(columns)),
		Rows:    []Row{},
		Loading: loading,
	}
	for i, col := range columns {
		h := Header{Key: col.Key, Label: col.Label, Sortable: col.Sortable}
		if col.Sortable && sort != nil && sort.Key == col.Key {
			h.Direction = sort.Direction
		}
		g.Headers[i] = h
	}
	if loading {
		return g
	}
	if len(records) == 0 {
		g.Empty = true
		g.Rows = append(g.Rows, Row{Cells: []Cell{{Text: Placeholder, ColSpan: len(columns)}}})
		return g
	}
	for _, rec := range records {
		row := Row{Cells: make([]Cell, len(columns))}
		for i, col := range columns {
			row.Cells[i] = Cell{Text: col.cell(rec)}
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

func (c Column[T]) cell(rec T) string {
	var v any
	if c.Value != nil {
		v = c.Value(rec)
	} else {
		v = FieldByJSON(rec, c.Key)
	}
	if c.Render != nil {
		return c.Render(v, rec)
	}
	return Text(v)
}

// Text prints a raw cell value. Nil values and nil pointers print empty.
func Text(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		v = rv.Elem().Interface()
	}
	return fmt.Sprint(v)
}

// FieldByJSON returns the field of rec whose JSON name is key, looking
// through embedded structs. Fields hidden from JSON are never matched. It
// returns nil when there is no such field.
func FieldByJSON(rec any, key string) any {
	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if f, ok := fieldByJSON(rv, key); ok {
		return f.Interface()
	}
	return nil
}

func fieldByJSON(rv reflect.Value, key string) (reflect.Value, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		if name == "-" {
			continue
		}
		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			if f, ok := fieldByJSON(rv.Field(i), key); ok {
				return f, true
			}
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if name == key {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "-"
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
