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

// Package sqltypes holds the column-type-code table, the MySQL column
// flag bits, and the row-shape model shared by the text-protocol row
// decoder and the ROWDAT_1 codecs.
package sqltypes

// Type is a MySQL column type code, as sent on the wire in a column
// definition packet. The numeric values are bit-exact with the MySQL
// wire protocol (see include/mysql/mysql_com.h upstream); the same
// codes, possibly negated, are used in a ROWDAT_1 colspec.
type Type int16

const (
	Decimal    Type = 0
	Tiny       Type = 1
	Short      Type = 2
	Long       Type = 3
	Float      Type = 4
	Double     Type = 5
	Null       Type = 6
	Timestamp  Type = 7
	LongLong   Type = 8
	Int24      Type = 9
	Date       Type = 10
	Time       Type = 11
	DateTime   Type = 12
	Year       Type = 13
	NewDate    Type = 14
	VarChar    Type = 15
	Bit        Type = 16
	JSON       Type = 245
	NewDecimal Type = 246
	Enum       Type = 247
	Set        Type = 248
	TinyBlob   Type = 249
	MediumBlob Type = 250
	LongBlob   Type = 251
	Blob       Type = 252
	VarString  Type = 253
	String     Type = 254
	Geometry   Type = 255
)

var typeNames = map[Type]string{
	Decimal:    "DECIMAL",
	Tiny:       "TINY",
	Short:      "SHORT",
	Long:       "LONG",
	Float:      "FLOAT",
	Double:     "DOUBLE",
	Null:       "NULL",
	Timestamp:  "TIMESTAMP",
	LongLong:   "LONGLONG",
	Int24:      "INT24",
	Date:       "DATE",
	Time:       "TIME",
	DateTime:   "DATETIME",
	Year:       "YEAR",
	NewDate:    "NEWDATE",
	VarChar:    "VARCHAR",
	Bit:        "BIT",
	JSON:       "JSON",
	NewDecimal: "NEWDECIMAL",
	Enum:       "ENUM",
	Set:        "SET",
	TinyBlob:   "TINY_BLOB",
	MediumBlob: "MEDIUM_BLOB",
	LongBlob:   "LONG_BLOB",
	Blob:       "BLOB",
	VarString:  "VAR_STRING",
	String:     "STRING",
	Geometry:   "GEOMETRY",
}

// String renders the type's canonical wire name, e.g. "VARCHAR". Unknown
// codes render as the fixed placeholder "UNKNOWN_TYPE" rather than panicking, since
// this is primarily used inside error messages for codes we don't
// recognize.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN_TYPE"
}

// IsInteger reports whether t is one of the fixed-width signed/unsigned
// integer types decoded from text as an integer (TINY/SHORT/LONG/
// LONGLONG/INT24). YEAR is handled separately even though it is also
// integral, because it has its own valid-range rules (spec.md §4.3.5).
func (t Type) IsInteger() bool {
	switch t {
	case Tiny, Short, Long, LongLong, Int24:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is FLOAT or DOUBLE.
func (t Type) IsFloat() bool {
	return t == Float || t == Double
}

// IsDecimal reports whether t is DECIMAL or NEWDECIMAL.
func (t Type) IsDecimal() bool {
	return t == Decimal || t == NewDecimal
}

// IsDateOrTime reports whether t is one of the five date/time family
// types that use the strict grammars of spec.md §4.2.3.
func (t Type) IsDateOrTime() bool {
	switch t {
	case Date, NewDate, DateTime, Timestamp, Time:
		return true
	default:
		return false
	}
}

// IsStringLike reports whether t's text-protocol payload is a run of
// bytes interpreted either as character data or as opaque binary
// data, depending on the column's encoding (spec.md §4.2.2, final
// bullet).
func (t Type) IsStringLike() bool {
	switch t {
	case Bit, JSON, Enum, Set, VarChar, VarString, String, Geometry,
		TinyBlob, MediumBlob, LongBlob, Blob:
		return true
	default:
		return false
	}
}

// ColSpecEntry describes one column of a ROWDAT_1 batch: a name and a
// signed type code. A negative Code means "unsigned integer" for
// integer codes and "binary payload" for string/blob codes, per
// spec.md §3.1.
type ColSpecEntry struct {
	Name string
	Code Type
}

// Unsigned reports whether the colspec entry's integer column should
// be read/written as unsigned.
func (e ColSpecEntry) Unsigned() bool { return e.Code < 0 }

// Binary reports whether the colspec entry's string/blob column
// carries binary (not UTF-8 text) payload.
func (e ColSpecEntry) Binary() bool { return e.Code < 0 }

// AbsType returns the unsigned/positive type code, stripping the
// sign-encoded unsigned/binary marker.
func (e ColSpecEntry) AbsType() Type {
	if e.Code < 0 {
		return -e.Code
	}
	return e.Code
}

// ColSpec is an ordered list of columns for a ROWDAT_1 batch.
type ColSpec []ColSpecEntry

// FormatTag is the single-byte array-protocol format code the
// columnar ROWDAT_1 codec reports per column, per spec.md §4.3.3.
type FormatTag byte

const (
	FormatInt8    FormatTag = 'b'
	FormatUint8   FormatTag = 'B'
	FormatInt16   FormatTag = 'h'
	FormatUint16  FormatTag = 'H'
	FormatInt32   FormatTag = 'i'
	FormatUint32  FormatTag = 'I'
	FormatInt64   FormatTag = 'q'
	FormatUint64  FormatTag = 'Q'
	FormatFloat32 FormatTag = 'f'
	FormatFloat64 FormatTag = 'd'
	FormatBool    FormatTag = '?'
	FormatObject  FormatTag = 'O'
)

// ItemSize returns the per-row byte width of a column's data buffer in
// the columnar ROWDAT_1 representation (spec.md §3.4): 1/2/4/8 for
// integer and float columns, 8 for the opaque string/blob handle, and
// 8 for YEAR (stored widened to a handle-sized slot per spec.md
// §4.3.3's tag table, which lists YEAR's tag as 'Q').
func ItemSize(code Type) (int, bool) {
	abs := code
	if abs < 0 {
		abs = -abs
	}
	switch abs {
	case Tiny:
		return 1, true
	case Short:
		return 2, true
	case Long, Int24:
		return 4, true
	case LongLong:
		return 8, true
	case Float:
		return 4, true
	case Double:
		return 8, true
	case Year:
		return 8, true
	default:
		if abs.IsStringLike() {
			return 8, true
		}
		return 0, false
	}
}
