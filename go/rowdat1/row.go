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
	"math"

	"github.com/singlestore-labs/rowcodec/go/mysql"
	"github.com/singlestore-labs/rowcodec/go/sqltypes"
)

// LoadRow decodes a ROWDAT_1 buffer in row-oriented form (spec.md
// §4.3.1) into a parallel row-id list and a list of per-row tuples,
// each of arity len(colspec).
func LoadRow(colspec sqltypes.ColSpec, buf []byte) ([]uint64, [][]any, error) {
	for _, e := range colspec {
		if err := checkSupported(e.AbsType()); err != nil {
			return nil, nil, err
		}
	}

	var rowIDs []uint64
	var rows [][]any
	pos := 0
	for pos < len(buf) {
		rowID, newPos, err := readU64(buf, pos)
		if err != nil {
			return nil, nil, err
		}
		pos = newPos

		row := make([]any, len(colspec))
		for i, e := range colspec {
			if err := need(buf, pos, 1); err != nil {
				return nil, nil, err
			}
			isNull := buf[pos] != 0
			pos++

			value, newPos, err := readRowColumn(buf, pos, e)
			if err != nil {
				return nil, nil, err
			}
			pos = newPos
			if !isNull {
				row[i] = value
			}
		}

		rowIDs = append(rowIDs, rowID)
		rows = append(rows, row)
	}
	return rowIDs, rows, nil
}

// readRowColumn reads one column's payload unconditionally — callers
// that determined the cell is NULL still must advance pos past the
// payload (spec.md §3.3: "consumers must skip the payload when
// is_null=1"), so the parsed value is simply discarded in that case.
func readRowColumn(buf []byte, pos int, e sqltypes.ColSpecEntry) (any, int, error) {
	t := e.AbsType()

	if width, ok := rowItemSize(t); ok {
		if err := need(buf, pos, width); err != nil {
			return nil, pos, err
		}
		raw := buf[pos : pos+width]
		v, err := decodeFixedWidth(t, e.Unsigned(), raw)
		return v, pos + width, err
	}

	length, newPos, err := readI64(buf, pos)
	if err != nil {
		return nil, pos, err
	}
	pos = newPos
	if err := need(buf, pos, int(length)); err != nil {
		return nil, pos, err
	}
	raw := buf[pos : pos+int(length)]
	pos += int(length)

	if e.Binary() {
		return append([]byte(nil), raw...), pos, nil
	}
	return string(raw), pos, nil
}

func decodeFixedWidth(t sqltypes.Type, unsigned bool, raw []byte) (any, error) {
	switch t {
	case sqltypes.Tiny:
		if unsigned {
			return raw[0], nil
		}
		return int8(raw[0]), nil
	case sqltypes.Short:
		u := leUint16(raw)
		if unsigned {
			return u, nil
		}
		return int16(u), nil
	case sqltypes.Long, sqltypes.Int24:
		u := leUint32(raw)
		if unsigned {
			return u, nil
		}
		return int32(u), nil
	case sqltypes.LongLong:
		u := leUint64(raw)
		if unsigned {
			return u, nil
		}
		return int64(u), nil
	case sqltypes.Float:
		return math.Float32frombits(leUint32(raw)), nil
	case sqltypes.Double:
		return math.Float64frombits(leUint64(raw)), nil
	case sqltypes.Year:
		return leUint16(raw), nil
	default:
		return nil, mysql.NewTypeError("ROWDAT_1: unsupported column type %s", t)
	}
}

// DumpRow encodes rowIDs/rows into a ROWDAT_1 buffer in row-oriented
// form (spec.md §4.3.2), matching the exact layout of §3.3.
func DumpRow(returns sqltypes.ColSpec, rowIDs []uint64, rows [][]any) ([]byte, error) {
	for _, e := range returns {
		if err := checkSupported(e.AbsType()); err != nil {
			return nil, err
		}
	}
	if len(rowIDs) != len(rows) {
		return nil, mysql.NewValueError("row_ids and rows must have the same length")
	}

	out := make([]byte, 0, 16*len(rows))
	for ri, row := range rows {
		if len(row) != len(returns) {
			return nil, mysql.NewValueError("row arity %d does not match colspec arity %d", len(row), len(returns))
		}
		out = writeU64(out, rowIDs[ri])

		for i, e := range returns {
			v := row[i]
			isNull := v == nil
			if isNull {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}

			var err error
			out, err = writeRowColumn(out, e, v, isNull)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func writeRowColumn(out []byte, e sqltypes.ColSpecEntry, v any, isNull bool) ([]byte, error) {
	t := e.AbsType()

	if width, ok := rowItemSize(t); ok {
		if isNull {
			var zeros [8]byte
			return append(out, zeros[:width]...), nil
		}
		return encodeFixedWidth(out, t, e.Unsigned(), v)
	}

	if isNull {
		return writeI64(out, 0), nil
	}
	payload, err := toPayloadBytes(v, e.Binary())
	if err != nil {
		return out, err
	}
	out = writeI64(out, int64(len(payload)))
	return append(out, payload...), nil
}

func encodeFixedWidth(out []byte, t sqltypes.Type, unsigned bool, v any) ([]byte, error) {
	switch t {
	case sqltypes.Tiny:
		if unsigned {
			u, ok := asUint64(v)
			if !ok {
				return out, mysql.NewTypeError("ROWDAT_1: expected an integer for TINY column, got %T", v)
			}
			return append(out, byte(u)), nil
		}
		i, ok := asInt64(v)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected an integer for TINY column, got %T", v)
		}
		return append(out, byte(int8(i))), nil
	case sqltypes.Short:
		u, i, ok := intOrUint(v, unsigned)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected an integer for SHORT column, got %T", v)
		}
		if unsigned {
			return appendLE16(out, uint16(u)), nil
		}
		return appendLE16(out, uint16(int16(i))), nil
	case sqltypes.Long, sqltypes.Int24:
		u, i, ok := intOrUint(v, unsigned)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected an integer for %s column, got %T", t, v)
		}
		if unsigned {
			return appendLE32(out, uint32(u)), nil
		}
		return appendLE32(out, uint32(int32(i))), nil
	case sqltypes.LongLong:
		u, i, ok := intOrUint(v, unsigned)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected an integer for LONGLONG column, got %T", v)
		}
		if unsigned {
			return appendLE64(out, u), nil
		}
		return appendLE64(out, uint64(i)), nil
	case sqltypes.Float:
		f, ok := asFloat64(v)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected a float for FLOAT column, got %T", v)
		}
		return appendLE32(out, math.Float32bits(float32(f))), nil
	case sqltypes.Double:
		f, ok := asFloat64(v)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected a float for DOUBLE column, got %T", v)
		}
		return appendLE64(out, math.Float64bits(f)), nil
	case sqltypes.Year:
		u, ok := asUint64(v)
		if !ok {
			return out, mysql.NewTypeError("ROWDAT_1: expected an integer for YEAR column, got %T", v)
		}
		return appendLE16(out, uint16(u)), nil
	default:
		return out, mysql.NewTypeError("ROWDAT_1: unsupported column type %s", t)
	}
}

func intOrUint(v any, unsigned bool) (uint64, int64, bool) {
	if unsigned {
		u, ok := asUint64(v)
		return u, 0, ok
	}
	i, ok := asInt64(v)
	return 0, i, ok
}

func leUint16(raw []byte) uint16 { return uint16(raw[0]) | uint16(raw[1])<<8 }
func leUint32(raw []byte) uint32 {
	return uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
}
func leUint64(raw []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v
}

func appendLE16(out []byte, v uint16) []byte {
	return append(out, byte(v), byte(v>>8))
}
func appendLE32(out []byte, v uint32) []byte {
	return append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
func appendLE64(out []byte, v uint64) []byte {
	var tmp [8]byte
	for i := 0; i < 8; i++ {
		tmp[i] = byte(v >> (8 * i))
	}
	return append(out, tmp[:]...)
}
