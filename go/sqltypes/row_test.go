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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowFormat(t *testing.T) {
	assert.Equal(t, RowFormatDict, ParseRowFormat("dict"))
	assert.Equal(t, RowFormatDict, ParseRowFormat("dicts"))
	assert.Equal(t, RowFormatStructSeq, ParseRowFormat("structsequence"))
	assert.Equal(t, RowFormatNamedTuple, ParseRowFormat("namedtuple"))
	assert.Equal(t, RowFormatTuple, ParseRowFormat(""))
	assert.Equal(t, RowFormatTuple, ParseRowFormat("whatever"))
}

func TestUniqueNames(t *testing.T) {
	fields := []Field{
		{Name: "id", TableName: "orders"},
		{Name: "id", TableName: "customers"},
		{Name: "name", TableName: "customers"},
	}
	names := UniqueNames(fields)
	require.Equal(t, []string{"id", "customers.id", "name"}, names)
}

func TestRowBuilder_Tuple(t *testing.T) {
	b := NewRowBuilder(RowFormatTuple, []string{"a", "b"})
	row := b.Build([]any{1, "x"})
	tuple, ok := row.(TupleRow)
	require.True(t, ok)
	assert.Equal(t, TupleRow{1, "x"}, tuple)
	assert.Equal(t, RowFormatTuple, row.Format())
}

func TestRowBuilder_Dict(t *testing.T) {
	b := NewRowBuilder(RowFormatDict, []string{"a", "b"})
	row := b.Build([]any{1, "x"})
	dict, ok := row.(DictRow)
	require.True(t, ok)
	assert.Equal(t, DictRow{"a": 1, "b": "x"}, dict)
}

func TestRowBuilder_StructSeq(t *testing.T) {
	b := NewRowBuilder(RowFormatStructSeq, []string{"a", "b"})
	row1 := b.Build([]any{1, "x"}).(StructRow)
	row2 := b.Build([]any{2, "y"}).(StructRow)
	assert.Equal(t, []string{"a", "b"}, row1.Names)
	// Same column-name set across rows should share the cached slice.
	assert.Same(t, &row1.Names[0], &row2.Names[0])
	assert.Equal(t, []any{2, "y"}, row2.Values)
}

func TestRowBuilder_NamedTuple(t *testing.T) {
	b := NewRowBuilder(RowFormatNamedTuple, []string{"a"})
	row := b.Build([]any{42}).(NamedRow)
	assert.Equal(t, []any{42}, row.Values)
	assert.Equal(t, RowFormatNamedTuple, row.Format())
}

func TestRowBuilder_BuildCopiesValues(t *testing.T) {
	b := NewRowBuilder(RowFormatTuple, []string{"a"})
	values := []any{1}
	row := b.Build(values).(TupleRow)
	values[0] = 2
	assert.Equal(t, 1, row[0], "Build must not alias the caller's slice")
}
