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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPacket_Single(t *testing.T) {
	payload := []byte("hello")
	stream := buildPacket(0, payload)

	var seq uint8
	pr := NewPacketReader(&fakeByteSource{r: bytes.NewReader(stream)}, &seq, 0, nil)

	got, err := pr.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.EqualValues(t, 1, seq)
}

func TestReadPacket_Continuation(t *testing.T) {
	chunk := bytes.Repeat([]byte{'x'}, packetContinuationLen)
	tail := []byte("tail")

	var stream []byte
	header := []byte{
		byte(packetContinuationLen), byte(packetContinuationLen >> 8), byte(packetContinuationLen >> 16), 0,
	}
	stream = append(stream, header...)
	stream = append(stream, chunk...)
	stream = append(stream, buildPacket(1, tail)...)

	var seq uint8
	pr := NewPacketReader(&fakeByteSource{r: bytes.NewReader(stream)}, &seq, 0, nil)

	got, err := pr.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, len(chunk)+len(tail), len(got))
	assert.Equal(t, tail, got[len(chunk):])
}

func TestReadPacket_WrongSequenceNumber(t *testing.T) {
	stream := buildPacket(5, []byte("x"))

	var seq uint8 // expected 0
	pr := NewPacketReader(&fakeByteSource{r: bytes.NewReader(stream)}, &seq, 0, nil)

	_, err := pr.ReadPacket()
	require.Error(t, err)
	var internalErr *InternalError
	assert.ErrorAs(t, err, &internalErr)
}

func TestReadPacket_ShortReadForcesClose(t *testing.T) {
	stream := []byte{5, 0, 0, 0, 'a'} // promises 5 bytes, only 1 follows
	closed := false
	var seq uint8
	pr := NewPacketReader(&fakeByteSource{r: bytes.NewReader(stream)}, &seq, 0, func() error {
		closed = true
		return nil
	})

	_, err := pr.ReadPacket()
	require.Error(t, err)
	var opErr *OperationalError
	assert.ErrorAs(t, err, &opErr)
	assert.True(t, closed)
}

func TestIsErrorPacket(t *testing.T) {
	assert.True(t, IsErrorPacket([]byte{0xff, 1, 2}))
	assert.False(t, IsErrorPacket([]byte{0xfe, 1, 2}))
	assert.False(t, IsErrorPacket(nil))
}

func TestIsEOFPacket(t *testing.T) {
	assert.True(t, IsEOFPacket([]byte{0xfe, 0, 0, 0, 0}))
	assert.False(t, IsEOFPacket([]byte{0xfe, 0, 0, 0, 0, 0, 0, 0, 0})) // len 9, not < 9
	assert.False(t, IsEOFPacket([]byte{0xff, 0, 0, 0}))
}

func TestParseEOFPacket(t *testing.T) {
	payload := []byte{0xfe, 7, 0, 0x08, 0x00} // warnings=7, status has more-results bit
	eof := ParseEOFPacket(payload)
	assert.EqualValues(t, 7, eof.WarningCount)
	assert.True(t, eof.HasMore)
}
