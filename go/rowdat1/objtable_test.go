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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectTable_InternStringDedup(t *testing.T) {
	tbl := NewObjectTable(4)
	h1 := tbl.InternString("hello")
	h2 := tbl.InternString("hello")
	h3 := tbl.InternString("world")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, tbl.Objects, 2)
}

func TestObjectTable_InternBytesDedup(t *testing.T) {
	tbl := NewObjectTable(4)
	a := []byte("payload")
	b := []byte("payload")
	h1 := tbl.InternBytes(a)
	h2 := tbl.InternBytes(b)
	assert.Equal(t, h1, h2)
	assert.Len(t, tbl.Objects, 1)

	// Mutating the caller's slice after interning must not corrupt the
	// stored copy.
	a[0] = 'X'
	v, ok := tbl.Get(h1)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), v)
}

func TestObjectTable_StringVsBytesHashCollisionSafe(t *testing.T) {
	tbl := NewObjectTable(4)
	hs := tbl.InternString("abc")
	hb := tbl.InternBytes([]byte("abc"))
	// Same content, different Go type — InternString/InternBytes key by
	// content hash but compare concrete-typed values, so the string and
	// []byte entries must not collapse into a single handle.
	assert.NotEqual(t, hs, hb)
}

func TestObjectTable_GetOutOfRange(t *testing.T) {
	tbl := NewObjectTable(0)
	_, ok := tbl.Get(0)
	assert.False(t, ok)

	tbl.InternString("x")
	_, ok = tbl.Get(99)
	assert.False(t, ok)
}
