// Copyright 2026 SingleStore, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sqltypes

import "strings"

// RowFormat selects the materialized shape of a decoded row
// (spec.md §3.2 `results_type`).
type RowFormat int

const (
	// RowFormatTuple yields a positional Row (a plain slice).
	RowFormatTuple RowFormat = iota
	// RowFormatDict yields a Row keyed by column name.
	RowFormatDict
	// RowFormatStructSeq yields a Row with named, ordered fields built
	// from a struct-sequence-like type.
	RowFormatStructSeq
	// RowFormatNamedTuple yields a Row with named, ordered fields built
	// from a named-tuple-like type.
	RowFormatNamedTuple
)

// ParseRowFormat maps the `results_type` option string (spec.md
// §4.2.1's options table) onto a RowFormat. Anything unrecognized
// means RowFormatTuple, matching "Anything else means tuples."
func ParseRowFormat(s string) RowFormat {
	switch s {
	case "dict", "dicts":
		return RowFormatDict
	case "structsequence", "structsequences":
		return RowFormatStructSeq
	case "namedtuple", "namedtuples":
		return RowFormatNamedTuple
	default:
		return RowFormatTuple
	}
}

// Row is the tagged sum described in spec.md §9 ("Row = Tuple | Dict |
// Struct | Named"). Implementations are TupleRow, DictRow, StructRow
// and NamedRow; the decoder's hot per-cell loop never branches on the
// concrete type — only the row-construction boundary does, via
// RowBuilder.
type Row interface {
	Format() RowFormat
}

// TupleRow is a positional row: index i holds the value of column i.
type TupleRow []any

// Format implements Row.
func (TupleRow) Format() RowFormat { return RowFormatTuple }

// DictRow is a row keyed by (unique) column name.
type DictRow map[string]any

// Format implements Row.
func (DictRow) Format() RowFormat { return RowFormatDict }

// StructRow is a row with named, ordered fields, modeling a Python
// struct-sequence result row.
type StructRow struct {
	Names  []string
	Values []any
}

// Format implements Row.
func (StructRow) Format() RowFormat { return RowFormatStructSeq }

// NamedRow is a row with named, ordered fields, modeling a Python
// named-tuple result row. It is a distinct Go type from StructRow
// even though the payload shape is identical, because the two
// represent different host-side materializations (spec.md §3.2).
type NamedRow struct {
	Names  []string
	Values []any
}

// Format implements Row.
func (NamedRow) Format() RowFormat { return RowFormatNamedTuple }

// structShapeCache memoizes the field-name slice used to build
// StructRow/NamedRow values across batches of the same result, keyed
// by the joined column-name list. This mirrors the reference client's
// behavior of caching its compiled struct-sequence/named-tuple type
// per distinct column-name set instead of rebuilding it per row
// (SPEC_FULL.md §11).
type structShapeCache struct {
	key   string
	names []string
}

func (c *structShapeCache) namesFor(names []string) []string {
	key := strings.Join(names, ",")
	if c.key == key && c.names != nil {
		return c.names
	}
	c.key = key
	c.names = names
	return c.names
}

// RowBuilder assembles decoded cell values into the row shape selected
// by a result's RowFormat. One RowBuilder is created per ResultState
// and reused across every row in the batch, so it owns the
// structShapeCache and a reusable scratch slice.
type RowBuilder struct {
	format RowFormat
	names  []string
	cache  structShapeCache
	scratch []any
}

// NewRowBuilder constructs a RowBuilder for the given column names and
// output format.
func NewRowBuilder(format RowFormat, names []string) *RowBuilder {
	return &RowBuilder{
		format:  format,
		names:   names,
		scratch: make([]any, len(names)),
	}
}

// Build converts one row's worth of decoded cell values (ordered by
// column index) into the configured Row shape. values is consumed by
// value (copied where the output type requires its own backing
// array) and may be reused by the caller afterward.
func (b *RowBuilder) Build(values []any) Row {
	switch b.format {
	case RowFormatDict:
		d := make(DictRow, len(values))
		for i, name := range b.names {
			d[name] = values[i]
		}
		return d
	case RowFormatStructSeq:
		out := make([]any, len(values))
		copy(out, values)
		return StructRow{Names: b.cache.namesFor(b.names), Values: out}
	case RowFormatNamedTuple:
		out := make([]any, len(values))
		copy(out, values)
		return NamedRow{Names: b.cache.namesFor(b.names), Values: out}
	default:
		out := make(TupleRow, len(values))
		copy(out, values)
		return out
	}
}

// Field describes the metadata of one column of a result set
// (spec.md §3.2, §4.2.1).
type Field struct {
	Name      string
	TableName string
	Type      Type
	Flags     Flag
	Scale     uint8
	Encoding  string // character-set name, or "binary"
	Charset   uint16
}

// UniqueNames rewrites a slice of (possibly duplicate) bare column
// names into pairwise-unique names by prefixing later occurrences of a
// repeated name with their table name, per spec.md §4.2.1's "Column
// names are made unique by prefixing table_name + '.' to any later
// occurrence of a repeated bare name."
func UniqueNames(fields []Field) []string {
	seen := make(map[string]int, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		name := f.Name
		seen[name]++
		if seen[name] > 1 {
			name = f.TableName + "." + f.Name
		}
		names[i] = name
	}
	return names
}
