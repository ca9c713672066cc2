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
	"github.com/singlestore-labs/rowcodec/go/mysql"
	"github.com/singlestore-labs/rowcodec/go/sqltypes"
)

// yearInRange implements spec.md §4.3.5's discontinuous YEAR range:
// 0..99 or 1901..2155.
func yearInRange(v int64) bool {
	return (v >= 0 && v <= 99) || (v >= 1901 && v <= 2155)
}

// signedRange returns the inclusive [min, max] bounds for a signed
// fixed-width integer target, per spec.md §4.3.5.
func signedRange(t sqltypes.Type) (min, max int64) {
	switch t {
	case sqltypes.Tiny:
		return -128, 127
	case sqltypes.Short:
		return -32768, 32767
	case sqltypes.Int24:
		return -8388608, 8388607
	case sqltypes.Long:
		return -2147483648, 2147483647
	case sqltypes.LongLong:
		return -1 << 63, 1<<63 - 1
	default:
		return 0, 0
	}
}

// unsignedMax returns the inclusive maximum for an unsigned
// fixed-width integer target, per spec.md §4.3.5 (the minimum is
// always 0).
func unsignedMax(t sqltypes.Type) uint64 {
	switch t {
	case sqltypes.Tiny:
		return 255
	case sqltypes.Short:
		return 65535
	case sqltypes.Int24:
		return 16777215
	case sqltypes.Long:
		return 4294967295
	case sqltypes.LongLong:
		return 1<<64 - 1
	default:
		return 0
	}
}

// checkSignedRange validates a signed source value v against target
// type t (itself interpreted as signed), raising *ValueError naming
// the target on violation.
func checkSignedRange(t sqltypes.Type, v int64) error {
	min, max := signedRange(t)
	if v < min || v > max {
		return mysql.NewValueError("value %d out of range for %s", v, t)
	}
	return nil
}

// checkUnsignedRange validates an unsigned source value v against
// target type t (itself interpreted as unsigned).
func checkUnsignedRange(t sqltypes.Type, v uint64) error {
	if v > unsignedMax(t) {
		return mysql.NewValueError("value %d out of range for unsigned %s", v, t)
	}
	return nil
}
