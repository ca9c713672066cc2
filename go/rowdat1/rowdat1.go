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

// Package rowdat1 implements the ROWDAT_1 batch codec (spec.md §3.3,
// §4.3): a length-prefixed, per-row, per-column binary layout used to
// exchange table batches with externally hosted UDF servers. It is
// independent of go/mysql's packet transport and row decoder — it
// operates purely on in-memory byte buffers.
package rowdat1

import (
	"encoding/binary"

	"github.com/singlestore-labs/rowcodec/go/mysql"
	"github.com/singlestore-labs/rowcodec/go/sqltypes"
)

// rowItemSize returns the ROWDAT_1 row-oriented fixed-width payload
// size for t, per spec.md §3.3's payload table. This is distinct from
// sqltypes.ItemSize, which describes the columnar representation (e.g.
// YEAR is 2 bytes here, but 8 in the columnar handle-sized slot).
func rowItemSize(t sqltypes.Type) (int, bool) {
	switch t {
	case sqltypes.Tiny:
		return 1, true
	case sqltypes.Short:
		return 2, true
	case sqltypes.Long, sqltypes.Int24:
		return 4, true
	case sqltypes.LongLong:
		return 8, true
	case sqltypes.Float:
		return 4, true
	case sqltypes.Double:
		return 8, true
	case sqltypes.Year:
		return 2, true
	default:
		return 0, false
	}
}

// isStringPayload reports whether t is encoded as i64-length-prefixed
// bytes in the ROWDAT_1 layout (spec.md §3.3's string/blob row).
func isStringPayload(t sqltypes.Type) bool {
	switch t {
	case sqltypes.VarChar, sqltypes.VarString, sqltypes.String, sqltypes.Enum, sqltypes.Set,
		sqltypes.JSON, sqltypes.TinyBlob, sqltypes.MediumBlob, sqltypes.LongBlob, sqltypes.Blob,
		sqltypes.Geometry:
		return true
	default:
		return false
	}
}

// checkSupported rejects the type codes spec.md §3.3 reserves as
// currently unsupported: NULL, BIT, DECIMAL/NEWDECIMAL, and the
// date/time family.
func checkSupported(t sqltypes.Type) error {
	if _, ok := rowItemSize(t); ok {
		return nil
	}
	if isStringPayload(t) {
		return nil
	}
	return mysql.NewTypeError("ROWDAT_1: unsupported column type %s", t)
}

func need(buf []byte, pos, n int) error {
	if n < 0 || pos < 0 || pos+n > len(buf) {
		return mysql.NewValueError("data length does not align with specified column values")
	}
	return nil
}

func readU64(buf []byte, pos int) (uint64, int, error) {
	if err := need(buf, pos, 8); err != nil {
		return 0, pos, err
	}
	return binary.LittleEndian.Uint64(buf[pos : pos+8]), pos + 8, nil
}

func writeU64(out []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(out, tmp[:]...)
}

func readI64(buf []byte, pos int) (int64, int, error) {
	u, newPos, err := readU64(buf, pos)
	return int64(u), newPos, err
}

func writeI64(out []byte, v int64) []byte {
	return writeU64(out, uint64(v))
}

// asInt64 coerces common Go integer kinds to int64, for use by
// DumpRow/DumpColumn callers who may hand back the exact types
// LoadRow/LoadColumn produced.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// asUint64 coerces common Go integer kinds to uint64.
func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		return uint64(n), true
	case int8:
		return uint64(n), true
	case int16:
		return uint64(n), true
	case int32:
		return uint64(n), true
	case int64:
		return uint64(n), true
	default:
		return 0, false
	}
}

// asFloat64 coerces float32/float64 to float64.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toPayloadBytes converts a decoded string/blob cell value to the
// bytes ROWDAT_1 should write for it: verbatim for binary columns,
// UTF-8 for text columns (spec.md §4.3.2: "Strings are UTF-8 encoded;
// binary-coded types ... are emitted verbatim").
func toPayloadBytes(v any, binaryColumn bool) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		kind := "string"
		if binaryColumn {
			kind = "[]byte"
		}
		return nil, mysql.NewTypeError("ROWDAT_1: expected a %s cell value, got %T", kind, v)
	}
}
