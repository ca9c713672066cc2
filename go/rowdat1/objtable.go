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

package rowdat1

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// ObjectTable is the auxiliary string/blob object table the columnar
// codec uses to give string and blob cells an opaque integer handle
// (spec.md §3.4, §4.3.3, §5: "the codec owns an object table keeping
// string/blob objects alive for the lifetime of the returned column
// arrays; ownership is transferred to the caller"). A handle is simply
// a table index (the open-question decision recorded in SPEC_FULL.md
// §12: a slice index, not a pointer).
//
// Entries are deduplicated by content hash within one LoadColumn call,
// so repeated values across rows share a handle instead of allocating
// a duplicate Objects entry.
type ObjectTable struct {
	Objects []any // string or []byte, indexed by handle

	byHash map[uint64][]int
}

// NewObjectTable constructs an empty table sized for an expected
// number of distinct values.
func NewObjectTable(sizeHint int) *ObjectTable {
	return &ObjectTable{
		Objects: make([]any, 0, sizeHint),
		byHash:  make(map[uint64][]int, sizeHint),
	}
}

// InternString returns a handle for s, reusing an existing entry if an
// identical string was already interned in this table.
func (t *ObjectTable) InternString(s string) uint64 {
	h := xxhash.Sum64String(s)
	for _, idx := range t.byHash[h] {
		if existing, ok := t.Objects[idx].(string); ok && existing == s {
			return uint64(idx)
		}
	}
	idx := len(t.Objects)
	t.Objects = append(t.Objects, s)
	t.byHash[h] = append(t.byHash[h], idx)
	return uint64(idx)
}

// InternBytes returns a handle for b, reusing an existing entry if an
// identical byte slice was already interned in this table. The stored
// copy is independent of b's backing array.
func (t *ObjectTable) InternBytes(b []byte) uint64 {
	h := xxhash.Sum64(b)
	for _, idx := range t.byHash[h] {
		if existing, ok := t.Objects[idx].([]byte); ok && bytes.Equal(existing, b) {
			return uint64(idx)
		}
	}
	idx := len(t.Objects)
	stored := append([]byte(nil), b...)
	t.Objects = append(t.Objects, stored)
	t.byHash[h] = append(t.byHash[h], idx)
	return uint64(idx)
}

// Get dereferences a handle back to its string or []byte value.
func (t *ObjectTable) Get(handle uint64) (any, bool) {
	idx := int(handle)
	if idx < 0 || idx >= len(t.Objects) {
		return nil, false
	}
	return t.Objects[idx], true
}
