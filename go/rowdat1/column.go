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

// Column is one column's worth of the columnar ROWDAT_1 representation
// (spec.md §3.4): a contiguous data buffer plus a parallel null mask,
// tagged with the format that describes Data's contents.
//
// For string/blob columns (Format == sqltypes.FormatObject) Data still
// holds one little-endian u64 handle per row (spec.md §3.4: "the value
// stored is an opaque pointer/handle"), dereferenceable through the
// ObjectTable LoadColumn returns. On the Dump side, since spec.md's
// dump_column signature carries no object table, Objects supplies the
// actual per-row string/[]byte values directly (one entry per row,
// parallel to Mask) — a documented, Go-idiomatic adaptation of the
// handle-dereference step (see DESIGN.md open questions).
type Column struct {
	Data    []byte
	Mask    []byte
	Format  sqltypes.FormatTag
	Objects []any
}

// formatTagFor reports the format tag LoadColumn/DumpColumn uses for
// colspec entry e. String/blob columns report sqltypes.FormatObject
// (this module uses 'O' rather than the literal 'Q' spec.md §4.3.3's
// table lists for the load
// direction — the two subsections of spec.md disagree on this tag,
// and 'O' is the one spec.md §4.3.4 requires for the dump direction,
// so a single consistent choice was made here).
func formatTagFor(e sqltypes.ColSpecEntry) sqltypes.FormatTag {
	t := e.AbsType()
	switch t {
	case sqltypes.Tiny:
		if e.Unsigned() {
			return sqltypes.FormatUint8
		}
		return sqltypes.FormatInt8
	case sqltypes.Short:
		if e.Unsigned() {
			return sqltypes.FormatUint16
		}
		return sqltypes.FormatInt16
	case sqltypes.Long, sqltypes.Int24:
		if e.Unsigned() {
			return sqltypes.FormatUint32
		}
		return sqltypes.FormatInt32
	case sqltypes.LongLong:
		if e.Unsigned() {
			return sqltypes.FormatUint64
		}
		return sqltypes.FormatInt64
	case sqltypes.Float:
		return sqltypes.FormatFloat32
	case sqltypes.Double:
		return sqltypes.FormatFloat64
	case sqltypes.Year:
		return sqltypes.FormatUint64
	default:
		return sqltypes.FormatObject
	}
}

// scanRows walks buf once without materializing cell values, to
// determine n_rows and validate that the buffer's shape agrees with
// colspec (spec.md §4.3.3: "scans the buffer once to determine n_rows
// and validate shape").
func scanRows(colspec sqltypes.ColSpec, buf []byte) (int, error) {
	pos := 0
	nRows := 0
	for pos < len(buf) {
		_, newPos, err := readU64(buf, pos)
		if err != nil {
			return 0, err
		}
		pos = newPos

		for _, e := range colspec {
			if err := need(buf, pos, 1); err != nil {
				return 0, err
			}
			pos++ // is_null

			t := e.AbsType()
			if width, ok := rowItemSize(t); ok {
				if err := need(buf, pos, width); err != nil {
					return 0, err
				}
				pos += width
				continue
			}
			length, newPos, err := readI64(buf, pos)
			if err != nil {
				return 0, err
			}
			pos = newPos
			if err := need(buf, pos, int(length)); err != nil {
				return 0, err
			}
			pos += int(length)
		}
		nRows++
	}
	return nRows, nil
}

// LoadColumn decodes a ROWDAT_1 buffer (spec.md §3.3's row-major wire
// layout) into the columnar representation of spec.md §3.4/§4.3.3: a
// row-id array, one Column per colspec entry, and the object table
// backing any string/blob handles.
func LoadColumn(colspec sqltypes.ColSpec, buf []byte) ([]uint64, []Column, *ObjectTable, error) {
	for _, e := range colspec {
		if err := checkSupported(e.AbsType()); err != nil {
			return nil, nil, nil, err
		}
	}

	nRows, err := scanRows(colspec, buf)
	if err != nil {
		return nil, nil, nil, err
	}

	rowIDs := make([]uint64, nRows)
	columns := make([]Column, len(colspec))
	for i, e := range colspec {
		width, _ := sqltypes.ItemSize(e.AbsType())
		columns[i] = Column{
			Data:   make([]byte, width*nRows),
			Mask:   make([]byte, nRows),
			Format: formatTagFor(e),
		}
	}
	objects := NewObjectTable(nRows)

	pos := 0
	for row := 0; row < nRows; row++ {
		rowID, newPos, err := readU64(buf, pos)
		if err != nil {
			return nil, nil, nil, err
		}
		pos = newPos
		rowIDs[row] = rowID

		for i, e := range colspec {
			isNull := buf[pos] != 0
			pos++

			value, newPos, err := readRowColumn(buf, pos, e)
			if err != nil {
				return nil, nil, nil, err
			}
			pos = newPos

			col := &columns[i]
			if isNull {
				col.Mask[row] = 1
				continue
			}
			if err := placeColumnValue(col, row, e, value, objects); err != nil {
				return nil, nil, nil, err
			}
		}
	}
	return rowIDs, columns, objects, nil
}

// placeColumnValue writes one decoded cell value into column c's data
// buffer at row index row, per spec.md §4.3.3.
func placeColumnValue(c *Column, row int, e sqltypes.ColSpecEntry, value any, objects *ObjectTable) error {
	t := e.AbsType()
	if width, ok := sqltypes.ItemSize(t); ok && t != sqltypes.Year && !t.IsStringLike() {
		off := row * width
		return writeNumericSlot(c.Data[off:off+width], c.Format, value)
	}

	if t == sqltypes.Year {
		u, ok := asUint64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected an integer YEAR value, got %T", value)
		}
		off := row * 8
		putLE64(c.Data[off:off+8], u)
		return nil
	}

	var handle uint64
	switch v := value.(type) {
	case string:
		handle = objects.InternString(v)
	case []byte:
		handle = objects.InternBytes(v)
	default:
		return mysql.NewTypeError("ROWDAT_1: expected a string/blob cell value, got %T", value)
	}
	off := row * 8
	putLE64(c.Data[off:off+8], handle)
	return nil
}

func putLE64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}
func putLE32(dst []byte, v uint32) {
	for i := 0; i < 4; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}
func putLE16(dst []byte, v uint16) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
}

// writeNumericSlot writes value into dst (already sized to the
// format's width) according to format's numeric kind.
func writeNumericSlot(dst []byte, format sqltypes.FormatTag, value any) error {
	switch format {
	case sqltypes.FormatInt8, sqltypes.FormatUint8:
		u, ok := asUint64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected an integer cell value, got %T", value)
		}
		dst[0] = byte(u)
	case sqltypes.FormatInt16, sqltypes.FormatUint16:
		u, ok := asUint64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected an integer cell value, got %T", value)
		}
		putLE16(dst, uint16(u))
	case sqltypes.FormatInt32, sqltypes.FormatUint32:
		u, ok := asUint64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected an integer cell value, got %T", value)
		}
		putLE32(dst, uint32(u))
	case sqltypes.FormatInt64, sqltypes.FormatUint64:
		u, ok := asUint64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected an integer cell value, got %T", value)
		}
		putLE64(dst, u)
	case sqltypes.FormatFloat32:
		f, ok := asFloat64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected a float cell value, got %T", value)
		}
		putLE32(dst, math.Float32bits(float32(f)))
	case sqltypes.FormatFloat64:
		f, ok := asFloat64(value)
		if !ok {
			return mysql.NewTypeError("ROWDAT_1: expected a float cell value, got %T", value)
		}
		putLE64(dst, math.Float64bits(f))
	default:
		return mysql.NewTypeError("ROWDAT_1: unsupported numeric format tag %q", byte(format))
	}
	return nil
}

// readNumericSlot reads a Column's stored cell at byte offset off,
// using format to determine width and numeric kind, returning it in
// whichever of the three numeric representations matches its kind.
func readNumericSlot(data []byte, format sqltypes.FormatTag, off int) (asInt int64, asUint uint64, asFloat float64, kind byte) {
	switch format {
	case sqltypes.FormatInt8:
		return int64(int8(data[off])), 0, 0, 'i'
	case sqltypes.FormatUint8:
		return 0, uint64(data[off]), 0, 'u'
	case sqltypes.FormatInt16:
		return int64(int16(leUint16(data[off : off+2]))), 0, 0, 'i'
	case sqltypes.FormatUint16:
		return 0, uint64(leUint16(data[off : off+2])), 0, 'u'
	case sqltypes.FormatInt32:
		return int64(int32(leUint32(data[off : off+4]))), 0, 0, 'i'
	case sqltypes.FormatUint32:
		return 0, uint64(leUint32(data[off : off+4])), 0, 'u'
	case sqltypes.FormatInt64:
		return int64(leUint64(data[off : off+8])), 0, 0, 'i'
	case sqltypes.FormatUint64:
		return 0, leUint64(data[off : off+8]), 0, 'u'
	case sqltypes.FormatFloat32:
		return 0, 0, float64(math.Float32frombits(leUint32(data[off : off+4]))), 'f'
	case sqltypes.FormatFloat64:
		return 0, 0, math.Float64frombits(leUint64(data[off : off+8])), 'f'
	default:
		return 0, 0, 0, 0
	}
}

// DumpColumn encodes parallel column arrays into a ROWDAT_1 buffer in
// the row-major wire layout of spec.md §3.3 (spec.md §4.3.4). returns
// gives each column's target SQL type/sign; columns gives the source
// data for each, which may use a different numeric width/sign than
// the target, triggering a range check and narrow/widen per spec.md
// §4.3.5.
func DumpColumn(returns sqltypes.ColSpec, rowIDs []uint64, columns []Column) ([]byte, error) {
	if len(returns) != len(columns) {
		return nil, mysql.NewValueError("returns and columns must have the same length")
	}
	for _, e := range returns {
		if err := checkSupported(e.AbsType()); err != nil {
			return nil, err
		}
	}

	nRows := len(rowIDs)
	for i, c := range columns {
		if len(c.Mask) != 0 && len(c.Mask) != nRows {
			return nil, mysql.NewValueError("column %d mask length does not match row_ids length", i)
		}
		if c.Format != sqltypes.FormatObject {
			width := formatItemSize(c.Format)
			if width == 0 || len(c.Data) != width*nRows {
				return nil, mysql.NewValueError("column %d data length does not match row_ids length", i)
			}
		} else if len(c.Objects) != nRows {
			return nil, mysql.NewValueError("column %d objects length does not match row_ids length", i)
		}
	}

	out := make([]byte, 0, 16*nRows)
	for row := 0; row < nRows; row++ {
		out = writeU64(out, rowIDs[row])
		for i, e := range returns {
			c := &columns[i]
			isNull := len(c.Mask) != 0 && c.Mask[row] != 0
			out = append(out, boolByte(isNull))

			var err error
			out, err = dumpColumnCell(out, e, c, row, isNull)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func formatItemSize(f sqltypes.FormatTag) int {
	switch f {
	case sqltypes.FormatInt8, sqltypes.FormatUint8, sqltypes.FormatBool:
		return 1
	case sqltypes.FormatInt16, sqltypes.FormatUint16:
		return 2
	case sqltypes.FormatInt32, sqltypes.FormatUint32, sqltypes.FormatFloat32:
		return 4
	case sqltypes.FormatInt64, sqltypes.FormatUint64, sqltypes.FormatFloat64:
		return 8
	default:
		return 0
	}
}

// dumpColumnCell writes one row's worth of a single target column,
// range-checking and narrowing/widening numeric sources per spec.md
// §4.3.4/§4.3.5, or dereferencing a string/blob Objects entry.
func dumpColumnCell(out []byte, e sqltypes.ColSpecEntry, c *Column, row int, isNull bool) ([]byte, error) {
	t := e.AbsType()

	if width, ok := rowItemSize(t); ok {
		if isNull {
			var zeros [8]byte
			return append(out, zeros[:width]...), nil
		}
		if c.Format == sqltypes.FormatObject {
			return out, mysql.NewTypeError("ROWDAT_1: cannot dump an object-handle source into numeric column %s", t)
		}
		off := row * formatItemSize(c.Format)
		asInt, asUint, asFloat, kind := readNumericSlot(c.Data, c.Format, off)
		return writeRangeChecked(out, t, e.Unsigned(), asInt, asUint, asFloat, kind)
	}

	// string/blob target
	if isNull {
		return writeI64(out, 0), nil
	}
	if c.Format != sqltypes.FormatObject {
		return out, mysql.NewTypeError("ROWDAT_1: column %s requires an object-handle source", t)
	}
	payload, err := toPayloadBytes(c.Objects[row], e.Binary())
	if err != nil {
		return out, err
	}
	out = writeI64(out, int64(len(payload)))
	return append(out, payload...), nil
}

// writeRangeChecked converts a source numeric cell (given in whichever
// of asInt/asUint/asFloat its kind populated) into target type t's
// fixed-width wire payload, range-checking per spec.md §4.3.5.
func writeRangeChecked(out []byte, t sqltypes.Type, unsigned bool, asInt int64, asUint uint64, asFloat float64, kind byte) ([]byte, error) {
	if t == sqltypes.Float || t == sqltypes.Double {
		f := asFloat
		switch kind {
		case 'i':
			f = float64(asInt)
		case 'u':
			f = float64(asUint)
		}
		if t == sqltypes.Float {
			return appendLE32(out, math.Float32bits(float32(f))), nil
		}
		return appendLE64(out, math.Float64bits(f)), nil
	}

	if kind == 'f' {
		return out, mysql.NewValueError("cannot narrow a float source into integer column %s", t)
	}

	if t == sqltypes.Year {
		v := asInt
		if kind == 'u' {
			v = int64(asUint)
		}
		if !yearInRange(v) {
			return out, mysql.NewValueError("value %d out of range for YEAR", v)
		}
		return appendLE16(out, uint16(v)), nil
	}

	width, _ := rowItemSize(t)
	if unsigned {
		u := asUint
		if kind == 'i' {
			if asInt < 0 {
				return out, mysql.NewValueError("value %d out of range for unsigned %s", asInt, t)
			}
			u = uint64(asInt)
		}
		if err := checkUnsignedRange(t, u); err != nil {
			return out, err
		}
		switch width {
		case 1:
			return append(out, byte(u)), nil
		case 2:
			return appendLE16(out, uint16(u)), nil
		case 4:
			return appendLE32(out, uint32(u)), nil
		default:
			return appendLE64(out, u), nil
		}
	}

	v := asInt
	if kind == 'u' {
		if asUint > uint64(1<<63-1) {
			return out, mysql.NewValueError("value %d out of range for %s", asUint, t)
		}
		v = int64(asUint)
	}
	if err := checkSignedRange(t, v); err != nil {
		return out, err
	}
	switch width {
	case 1:
		return append(out, byte(int8(v))), nil
	case 2:
		return appendLE16(out, uint16(int16(v))), nil
	case 4:
		return appendLE32(out, uint32(int32(v))), nil
	default:
		return appendLE64(out, uint64(v)), nil
	}
}
