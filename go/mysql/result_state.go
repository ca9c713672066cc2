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

import "github.com/singlestore-labs/rowcodec/go/sqltypes"

// ResultSink is the owning result/connection collaborator C2 mutates
// as it drains a result set (spec.md §6.2's "result attrs" row,
// realized as an interface rather than a struct of bare fields since
// the decoder never needs to read these back — only push into them).
type ResultSink interface {
	// AppendRow is called once per decoded row, in wire order.
	AppendRow(row sqltypes.Row)
	// SetWarningCount records the warning count carried in the EOF
	// packet.
	SetWarningCount(n uint16)
	// SetHasMore records the EOF packet's "more result sets follow" bit.
	SetHasMore(v bool)
	// SetAffectedRows records the final row count for this batch/result.
	SetAffectedRows(n int64)
	// RaiseServerError hands a raw MySQL error-packet payload to the
	// connection's error mapper (spec.md §6.2 "_raise_mysql_exception").
	RaiseServerError(payload []byte) error
}

// ResultState is the per-result-set state machine described in
// spec.md §3.2. One ResultState is owned by exactly one result and
// is not safe for concurrent use (spec.md §5).
type ResultState struct {
	NCols      int
	Fields     []sqltypes.Field
	Names      []string
	Converters []ColumnConverter

	Unbuffered   bool
	ResultsType  sqltypes.RowFormat
	ParseJSON    bool

	NRows        int64
	NRowsInBatch int64
	Rows         []sqltypes.Row
	IsEOF        bool

	decoders []cellDecoder
	builder  *sqltypes.RowBuilder
	scratch  []any
}

// Init builds the decoder state for a new result set: it compiles the
// per-column decoder vtable and makes column names unique, per
// spec.md §4.2.1.
func (rs *ResultState) Init(fields []sqltypes.Field, converters []ColumnConverter, opts Options) error {
	if converters != nil && len(converters) != len(fields) {
		return NewInternalError("converters slice length %d does not match field count %d", len(converters), len(fields))
	}

	rs.NCols = len(fields)
	rs.Fields = fields
	rs.Names = sqltypes.UniqueNames(fields)
	rs.Converters = converters
	rs.Unbuffered = opts.Unbuffered
	rs.ResultsType = sqltypes.ParseRowFormat(opts.ResultsType)
	rs.ParseJSON = opts.ParseJSON

	rs.decoders = make([]cellDecoder, rs.NCols)
	encodingErrors := opts.encodingErrorsOrDefault()
	for i, f := range fields {
		var conv ColumnConverter
		if converters != nil {
			conv = converters[i]
		}
		rs.decoders[i] = compileCellDecoder(f, conv, opts.InvalidValues, encodingErrors, opts.ParseJSON)
	}
	rs.builder = sqltypes.NewRowBuilder(rs.ResultsType, rs.Names)
	rs.scratch = make([]any, rs.NCols)
	return nil
}

// decodeRow decodes one packet payload (n_cols length-coded strings,
// spec.md §4.2.2) into the configured row shape.
func (rs *ResultState) decodeRow(payload []byte) (sqltypes.Row, error) {
	pos := 0
	for i := 0; i < rs.NCols; i++ {
		raw, newPos, isNull := readLengthCodedString(payload, pos)
		pos = newPos
		if isNull {
			rs.scratch[i] = nil
			continue
		}
		v, err := rs.decoders[i](raw)
		if err != nil {
			// Per-cell parse errors are fatal to the current row
			// (spec.md §4.2.5): the row is not built and the error is
			// returned as-is. Rows decoded earlier in the batch stay
			// in rs.Rows.
			return nil, err
		}
		rs.scratch[i] = v
	}
	return rs.builder.Build(rs.scratch), nil
}

// ReadRowdataPacket runs the batch loop of spec.md §4.2.4: it reads
// packets from pr until EOF or until size rows have been read
// (size <= 0 means "drain the whole result"), decoding and appending
// each row, and notifies sink of EOF metadata, server errors, and the
// final affected-row count.
func (rs *ResultState) ReadRowdataPacket(pr *PacketReader, sink ResultSink, size int) error {
	if size > 0 {
		rs.Rows = rs.Rows[:0]
		rs.NRowsInBatch = 0
	}
	if rs.IsEOF {
		return nil
	}

	var rowsRead int64
	limit := int64(size)
	for limit <= 0 || rowsRead < limit {
		payload, err := pr.ReadPacket()
		if err != nil {
			return err
		}

		if IsErrorPacket(payload) {
			rs.Unbuffered = false
			return sink.RaiseServerError(payload)
		}

		if IsEOFPacket(payload) {
			eof := ParseEOFPacket(payload)
			sink.SetWarningCount(eof.WarningCount)
			sink.SetHasMore(eof.HasMore)
			rs.IsEOF = true
			break
		}

		row, err := rs.decodeRow(payload)
		if err != nil {
			return err
		}
		rs.Rows = append(rs.Rows, row)
		sink.AppendRow(row)
		rs.NRows++
		rs.NRowsInBatch++
		rowsRead++
	}

	if rs.Unbuffered {
		if rs.IsEOF && rowsRead == 0 {
			sink.SetAffectedRows(rs.NRows)
			rs.Rows = nil
		}
	} else {
		sink.SetAffectedRows(rs.NRows)
	}
	return nil
}
