// Package align maps arbitrary-shaped source tables onto a fixed target
// column schema. The schema is supplied externally at run time (read
// from a blank-template sheet); nothing here assumes a particular
// column vocabulary.
package align

import (
	"fmt"
	"sort"
)

// Schema is an ordered sequence of target column names with no
// duplicates. It defines the column set and order of every exported
// table.
type Schema []string

// NewSchema validates column names: non-empty, no duplicates.
func NewSchema(cols []string) (Schema, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c == "" {
			return nil, fmt.Errorf("schema: empty column name")
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("schema: duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return Schema(cols), nil
}

// Contains reports whether col is a declared target column.
func (s Schema) Contains(col string) bool {
	for _, c := range s {
		if c == col {
			return true
		}
	}
	return false
}

// Identity is the column map that carries every schema column through
// under its own name. Aligning aligned rows with it is the identity.
func Identity(s Schema) map[string]string {
	m := make(map[string]string, len(s))
	for _, c := range s {
		m[c] = c
	}
	return m
}

// Align maps each source row onto the target schema. For every
// (sourceKey, targetKey) pair where the source row has sourceKey and the
// schema declares targetKey, the value is copied; every target column
// not populated this way is the empty string. Output rows hold exactly
// the schema's columns, no more, no less. Row order is preserved.
func Align(sourceRows []map[string]any, schema Schema, columnMap map[string]string) []map[string]any {
	// Deterministic application order when several source keys feed the
	// same target column.
	sourceKeys := make([]string, 0, len(columnMap))
	for k := range columnMap {
		sourceKeys = append(sourceKeys, k)
	}
	sort.Strings(sourceKeys)

	out := make([]map[string]any, 0, len(sourceRows))
	for _, src := range sourceRows {
		row := make(map[string]any, len(schema))
		for _, col := range schema {
			row[col] = ""
		}
		for _, sk := range sourceKeys {
			tk := columnMap[sk]
			v, ok := src[sk]
			if !ok || !schema.Contains(tk) {
				continue
			}
			row[tk] = v
		}
		out = append(out, row)
	}
	return out
}

// AlignAll aligns several source tables independently against one schema
// and concatenates the results in input order. Row order within each
// source is preserved.
func AlignAll(tables [][]map[string]any, schema Schema, columnMap map[string]string) []map[string]any {
	var out []map[string]any
	for _, t := range tables {
		out = append(out, Align(t, schema, columnMap)...)
	}
	return out
}

// Table pairs aligned rows with the schema that orders their columns,
// ready for the workbook writer.
type Table struct {
	Schema Schema
	Rows   []map[string]any
}
