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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singlestore-labs/rowcodec/go/sqltypes"
)

// fakeByteSource replays a fixed byte stream for PacketReader tests.
type fakeByteSource struct {
	r *bytes.Reader
}

func (f *fakeByteSource) Read(p []byte) (int, error)            { return f.r.Read(p) }
func (f *fakeByteSource) SetReadDeadline(t time.Time) error { return nil }

// fakeResultSink records every call ReadRowdataPacket makes into it.
type fakeResultSink struct {
	rows          []sqltypes.Row
	warningCount  uint16
	hasMore       bool
	affectedRows  int64
	raisedPayload []byte
	raiseErr      error
}

func (s *fakeResultSink) AppendRow(row sqltypes.Row)   { s.rows = append(s.rows, row) }
func (s *fakeResultSink) SetWarningCount(n uint16)      { s.warningCount = n }
func (s *fakeResultSink) SetHasMore(v bool)             { s.hasMore = v }
func (s *fakeResultSink) SetAffectedRows(n int64)       { s.affectedRows = n }
func (s *fakeResultSink) RaiseServerError(payload []byte) error {
	s.raisedPayload = payload
	return s.raiseErr
}

func tinyField(name string) sqltypes.Field {
	return sqltypes.Field{Name: name, Type: sqltypes.Tiny, Encoding: "binary"}
}

func binaryBlobField(name string) sqltypes.Field {
	return sqltypes.Field{Name: name, Type: sqltypes.Blob, Encoding: "binary"}
}

func TestResultState_InitAndDecodeRow(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id"), binaryBlobField("payload")}
	var rs ResultState
	require.NoError(t, rs.Init(fields, nil, Options{}))
	require.Equal(t, []string{"id", "payload"}, rs.Names)

	// LCS-encoded row: col0 = "5" (literal length 1), col1 = "abc".
	payload := []byte{1, '5', 3, 'a', 'b', 'c'}
	row, err := rs.decodeRow(payload)
	require.NoError(t, err)

	tuple, ok := row.(sqltypes.TupleRow)
	require.True(t, ok)
	assert.Equal(t, int64(5), tuple[0])
	assert.Equal(t, []byte("abc"), tuple[1])
}

func TestResultState_InitConverterLengthMismatch(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id")}
	var rs ResultState
	err := rs.Init(fields, []ColumnConverter{nil, nil}, Options{})
	require.Error(t, err)
}

func TestResultState_DecodeRow_NullCell(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id"), binaryBlobField("payload")}
	var rs ResultState
	require.NoError(t, rs.Init(fields, nil, Options{}))

	payload := []byte{1, '7', lcsNull}
	row, err := rs.decodeRow(payload)
	require.NoError(t, err)
	tuple := row.(sqltypes.TupleRow)
	assert.Equal(t, int64(7), tuple[0])
	assert.Nil(t, tuple[1])
}

func buildPacket(seq byte, payload []byte) []byte {
	n := len(payload)
	header := []byte{byte(n), byte(n >> 8), byte(n >> 16), seq}
	return append(header, payload...)
}

func TestReadRowdataPacket_DrainsToEOF(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id"), binaryBlobField("payload")}
	var rs ResultState
	require.NoError(t, rs.Init(fields, nil, Options{}))

	row1 := []byte{1, '5', 3, 'a', 'b', 'c'}
	row2 := []byte{1, '7', lcsNull}
	eof := []byte{eofPacketHeader, 2, 0, 0, 0} // warning_count=2, status=0

	var stream []byte
	stream = append(stream, buildPacket(0, row1)...)
	stream = append(stream, buildPacket(1, row2)...)
	stream = append(stream, buildPacket(2, eof)...)

	var seq uint8
	src := &fakeByteSource{r: bytes.NewReader(stream)}
	pr := NewPacketReader(src, &seq, 0, nil)

	sink := &fakeResultSink{}
	err := rs.ReadRowdataPacket(pr, sink, 0)
	require.NoError(t, err)

	require.Len(t, sink.rows, 2)
	assert.Equal(t, uint16(2), sink.warningCount)
	assert.False(t, sink.hasMore)
	assert.Equal(t, int64(2), sink.affectedRows)
	assert.True(t, rs.IsEOF)
	assert.EqualValues(t, 2, rs.NRows)
}

func TestReadRowdataPacket_ServerError(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id")}
	var rs ResultState
	require.NoError(t, rs.Init(fields, nil, Options{}))

	errPacket := []byte{errPacketHeader, 1, 2, 3}
	stream := buildPacket(0, errPacket)

	var seq uint8
	src := &fakeByteSource{r: bytes.NewReader(stream)}
	pr := NewPacketReader(src, &seq, 0, nil)

	sentinel := NewOperationalError("server says no")
	sink := &fakeResultSink{raiseErr: sentinel}
	err := rs.ReadRowdataPacket(pr, sink, 0)
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, errPacket, sink.raisedPayload)
}

func TestReadRowdataPacket_AlreadyAtEOF(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id")}
	var rs ResultState
	require.NoError(t, rs.Init(fields, nil, Options{}))
	rs.IsEOF = true

	var seq uint8
	src := &fakeByteSource{r: bytes.NewReader(nil)}
	pr := NewPacketReader(src, &seq, 0, nil)

	sink := &fakeResultSink{}
	require.NoError(t, rs.ReadRowdataPacket(pr, sink, 0))
	assert.Empty(t, sink.rows)
}

func TestReadRowdataPacket_SizeLimitedBatch(t *testing.T) {
	fields := []sqltypes.Field{tinyField("id")}
	var rs ResultState
	require.NoError(t, rs.Init(fields, nil, Options{Unbuffered: true}))

	row1 := []byte{1, '1'}
	row2 := []byte{1, '2'}
	var stream []byte
	stream = append(stream, buildPacket(0, row1)...)
	stream = append(stream, buildPacket(1, row2)...)

	var seq uint8
	src := &fakeByteSource{r: bytes.NewReader(stream)}
	pr := NewPacketReader(src, &seq, 0, nil)

	sink := &fakeResultSink{}
	require.NoError(t, rs.ReadRowdataPacket(pr, sink, 1))
	assert.Len(t, sink.rows, 1)
	assert.Len(t, rs.Rows, 1)

	require.NoError(t, rs.ReadRowdataPacket(pr, sink, 1))
	assert.Len(t, sink.rows, 2)
}
