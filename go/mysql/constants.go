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

// Packet-level marker bytes and limits (spec.md §6.1).
const (
	// errPacketHeader is the first byte of a MySQL error packet.
	errPacketHeader = 0xff

	// eofPacketHeader is the first byte of an End-Of-Result packet. A
	// payload is only an EOF packet if its length is also < eofMaxLen.
	eofPacketHeader = 0xfe

	// eofMaxLen is the exclusive upper bound on an EOF packet's payload
	// length (spec.md §4.1: "length is strictly less than 9").
	eofMaxLen = 9

	// serverMoreResultsExist is bit 0x08 of the EOF packet's
	// server_status field: "more result sets follow" (spec.md §4.1).
	serverMoreResultsExist = 0x0008

	// packetContinuationLen is the physical-packet length that signals
	// "payload continues in the next packet" (spec.md §4.1): 2^24 - 1.
	packetContinuationLen = 0xffffff

	// packetHeaderLen is the 3-byte length + 1-byte sequence header on
	// every physical MySQL packet.
	packetHeaderLen = 4
)

// Length-coded-string sentinel bytes (spec.md §6.1, §4.2.2).
const (
	lcsNull       = 0xfb
	lcs2ByteLen   = 0xfc
	lcs3ByteLen   = 0xfd
	lcs8ByteLen   = 0xfe
	lcsMaxInlined = 0xfb // first byte strictly below this is its own length
)
