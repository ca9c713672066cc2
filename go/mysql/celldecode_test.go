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

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singlestore-labs/rowcodec/go/sqltypes"
)

func TestDecodeInteger(t *testing.T) {
	v, err := decodeInteger([]byte("-42"), false)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v)

	v, err = decodeInteger([]byte("42"), true)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = decodeInteger([]byte("not-a-number"), false)
	require.Error(t, err)
}

func TestDecodeFloatCell(t *testing.T) {
	v, err := decodeFloatCell([]byte("3.5"))
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestDecodeYear(t *testing.T) {
	v, err := decodeYear([]byte("2024"))
	require.NoError(t, err)
	assert.Equal(t, int64(2024), v)
}

func TestDecodeDecimal(t *testing.T) {
	v, err := decodeDecimal([]byte("123.456"))
	require.NoError(t, err)
	r, ok := v.(*big.Rat)
	require.True(t, ok)
	want := new(big.Rat)
	want.SetString("123.456")
	assert.Equal(t, 0, r.Cmp(want))

	_, err = decodeDecimal([]byte("garbage"))
	require.Error(t, err)
}

func TestDecodeDateCell(t *testing.T) {
	v, err := decodeDateCell([]byte("2024-01-01"), nil)
	require.NoError(t, err)
	assert.NotNil(t, v)

	v, err = decodeDateCell([]byte("0000-00-00"), nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = decodeDateCell([]byte("2024-13-40"), "INVALID")
	require.NoError(t, err)
	assert.Equal(t, "INVALID", v)

	v, err = decodeDateCell([]byte("2024-13-40"), nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-13-40", v)
}

func TestDecodeTimeCell_NegativeDuration(t *testing.T) {
	v, err := decodeTimeCell([]byte("-12:30:00"), nil)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestCompileCellDecoder_UnknownType(t *testing.T) {
	field := sqltypes.Field{Name: "x", Type: sqltypes.Type(999), Encoding: "binary"}
	dec := compileCellDecoder(field, nil, nil, "strict", false)
	_, err := dec([]byte("x"))
	require.Error(t, err)
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestCompileCellDecoder_Converter(t *testing.T) {
	field := sqltypes.Field{Name: "x", Type: sqltypes.Tiny, Encoding: "binary"}
	var gotRaw any
	conv := func(v any) (any, error) {
		gotRaw = v
		return "converted", nil
	}
	dec := compileCellDecoder(field, conv, nil, "strict", false)
	v, err := dec([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "converted", v)
	assert.Equal(t, []byte("hi"), gotRaw)
}

func TestCompileStringDecoder_JSON(t *testing.T) {
	field := sqltypes.Field{Name: "x", Type: sqltypes.JSON, Encoding: "utf8mb4"}
	dec := compileStringDecoder(field, "strict", true)
	v, err := dec([]byte(`{"a":1}`))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), m["a"])
}

func TestCompileStringDecoder_BinaryBlob(t *testing.T) {
	field := sqltypes.Field{Name: "x", Type: sqltypes.Blob, Encoding: "binary"}
	dec := compileStringDecoder(field, "strict", false)
	v, err := dec([]byte{0x00, 0xff})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, v)
}
