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

// readLengthCodedString reads one length-coded string (LCS) cell from
// a text-protocol row payload starting at pos, per spec.md §4.2.2's
// table:
//
//	0xfb           -> NULL
//	c < 0xfb       -> literal length c
//	0xfc           -> next 2 bytes, little-endian, is the length
//	0xfd           -> next 3 bytes, little-endian, is the length
//	0xfe           -> next 8 bytes, little-endian, is the length
//
// It returns the raw payload bytes (a subslice of data, no copy), the
// position just past the cell, and whether the cell is NULL.
//
// Two permissive behaviors are preserved deliberately (spec.md §9
// "Open questions"):
//   - if the decoded length exceeds the remaining bytes in the
//     packet, it is clamped to the remaining length instead of
//     raising an error;
//   - a truncated 0xfc/0xfd/0xfe prefix (fewer bytes available than
//     the sentinel promises) decodes to NULL rather than erroring.
func readLengthCodedString(data []byte, pos int) (raw []byte, newPos int, isNull bool) {
	if pos >= len(data) {
		return nil, pos, true
	}

	first := data[pos]
	var length int
	var headerLen int

	switch {
	case first == lcsNull:
		return nil, pos + 1, true
	case first < lcsMaxInlined:
		length = int(first)
		headerLen = 1
	case first == lcs2ByteLen:
		if pos+3 > len(data) {
			return nil, pos + (len(data) - pos), true
		}
		length = int(data[pos+1]) | int(data[pos+2])<<8
		headerLen = 3
	case first == lcs3ByteLen:
		if pos+4 > len(data) {
			return nil, pos + (len(data) - pos), true
		}
		length = int(data[pos+1]) | int(data[pos+2])<<8 | int(data[pos+3])<<16
		headerLen = 4
	case first == lcs8ByteLen:
		if pos+9 > len(data) {
			return nil, pos + (len(data) - pos), true
		}
		length = int(data[pos+1]) | int(data[pos+2])<<8 | int(data[pos+3])<<16 |
			int(data[pos+4])<<24 | int(data[pos+5])<<32 | int(data[pos+6])<<40 |
			int(data[pos+7])<<48 | int(data[pos+8])<<56
		headerLen = 9
	default:
		// Any other leading byte is not a valid LCS sentinel in the
		// text-protocol row format; treat it as NULL without reading
		// further, matching the decoder's general permissiveness on
		// malformed prefixes.
		return nil, pos + 1, true
	}

	start := pos + headerLen
	if start > len(data) {
		return nil, len(data), true
	}
	end := start + length
	if end > len(data) || end < start {
		end = len(data)
	}
	return data[start:end], end, false
}
