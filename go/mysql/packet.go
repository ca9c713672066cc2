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
	"encoding/binary"
	"errors"
	"io"
	"net"
	"os"
	"syscall"
	"time"

	log "github.com/golang/glog"
)

// ByteSource is the blocking byte source collaborator C1 reads from
// (spec.md §4.1, §6.2). It is normally a *net.TCPConn or *tls.Conn;
// SetReadDeadline mirrors net.Conn's method of the same name and is
// called before every blocking read, per spec.md §5 ("a read timeout
// is re-applied before every call to the byte source").
type ByteSource interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

// PacketReader assembles MySQL wire packets out of a ByteSource. It
// owns no connection state of its own beyond a pointer to the shared
// sequence counter (spec.md §5: "the decoder borrows ... its
// next_seq_id field").
type PacketReader struct {
	src     ByteSource
	seq     *uint8
	timeout time.Duration
	// closer force-closes the owning connection on any fatal transport
	// error, per spec.md §4.1/§7.
	closer func() error
}

// NewPacketReader constructs a PacketReader over src, sharing seq (the
// connection's next_seq_id) and using closer to force-close the
// connection on a fatal error. timeout of zero means no deadline is
// applied.
func NewPacketReader(src ByteSource, seq *uint8, timeout time.Duration, closer func() error) *PacketReader {
	return &PacketReader{src: src, seq: seq, timeout: timeout, closer: closer}
}

func (p *PacketReader) forceClose() {
	if p.closer != nil {
		_ = p.closer()
	}
}

// ReadBytes performs a blocking read of exactly n bytes, honoring the
// configured read timeout (re-applied before the read, per spec.md
// §4.1) and retrying transparently on EINTR. If fewer than n bytes
// are ultimately delivered, the connection is forced closed and an
// *OperationalError is returned. I/O errors other than a short read
// also force a close; errors that are not I/O errors (anything
// isTransportError rejects) also force a close and are then returned
// verbatim.
func (p *PacketReader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		if p.timeout > 0 {
			if err := p.src.SetReadDeadline(time.Now().Add(p.timeout)); err != nil {
				p.forceClose()
				return nil, &OperationalError{Message: "Lost connection to MySQL server during query", Cause: err}
			}
		}
		m, err := p.src.Read(buf[read:])
		read += m
		if err == nil {
			continue
		}
		if errors.Is(err, syscall.EINTR) {
			warnOnEINTRRetry(n - read)
			continue
		}
		if isTransportError(err) {
			p.forceClose()
			return nil, &OperationalError{Message: "Lost connection to MySQL server during query", Cause: err}
		}
		// Not recognizably an I/O error: force the connection closed,
		// then propagate the error as-is (spec.md §4.1).
		p.forceClose()
		return nil, err
	}
	return buf, nil
}

// isTransportError reports whether err is the kind of I/O failure
// spec.md §4.1 says forces the connection closed: end of stream, a
// timeout, or any other net.Error/os.PathError-shaped failure from
// the underlying byte source. Anything else (e.g. an application
// error a wrapping ByteSource chooses to surface) is propagated
// verbatim instead.
func isTransportError(err error) bool {
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr)
}

// ReadPacket reads one logical MySQL packet: a sequence of physical
// packets chained by the 0xffffff continuation-length marker,
// concatenated into a single payload (spec.md §4.1). Sequence numbers
// are validated and advanced as each physical packet arrives.
func (p *PacketReader) ReadPacket() ([]byte, error) {
	var payload []byte
	for {
		header, err := p.ReadBytes(packetHeaderLen)
		if err != nil {
			return nil, err
		}
		length := int(header[0]) | int(header[1])<<8 | int(header[2])<<16
		seq := header[3]

		if err := p.checkSequence(seq); err != nil {
			return nil, err
		}

		chunk, err := p.ReadBytes(length)
		if err != nil {
			return nil, err
		}
		payload = append(payload, chunk...)

		if length < packetContinuationLen {
			return payload, nil
		}
		// length == packetContinuationLen: payload continues in the
		// next physical packet (spec.md §4.1).
	}
}

// checkSequence validates a physical packet's sequence number against
// the shared next_seq_id counter and advances it, per spec.md §4.1's
// sequence discipline.
func (p *PacketReader) checkSequence(seq uint8) error {
	expected := *p.seq
	if seq != expected {
		*p.seq = (seq + 1) % 256
		if seq == 0 {
			p.forceClose()
			return NewOperationalError("Lost connection to MySQL server during query")
		}
		p.forceClose()
		return NewInternalError("Packet sequence number wrong")
	}
	*p.seq = (seq + 1) % 256
	return nil
}

// IsErrorPacket reports whether payload is a MySQL error packet
// (spec.md §4.1: first byte 0xff).
func IsErrorPacket(payload []byte) bool {
	return len(payload) > 0 && payload[0] == errPacketHeader
}

// IsEOFPacket reports whether payload is an End-Of-Result packet
// (spec.md §4.1: first byte 0xfe and length < 9).
func IsEOFPacket(payload []byte) bool {
	return len(payload) > 0 && payload[0] == eofPacketHeader && len(payload) < eofMaxLen
}

// EOFPacket is the decoded body of an End-Of-Result packet (spec.md §4.1).
type EOFPacket struct {
	WarningCount uint16
	HasMore      bool
}

// ParseEOFPacket decodes an EOF packet payload already identified by
// IsEOFPacket. Payload layout: 1 type byte, then u16 warning_count,
// then u16 server_status.
func ParseEOFPacket(payload []byte) EOFPacket {
	var out EOFPacket
	if len(payload) < 5 {
		return out
	}
	out.WarningCount = binary.LittleEndian.Uint16(payload[1:3])
	status := binary.LittleEndian.Uint16(payload[3:5])
	out.HasMore = status&serverMoreResultsExist != 0
	return out
}

// warnOnEINTRRetry logs one warning each time ReadBytes retries after
// an EINTR; it is called only on that path, so the packet-reading hot
// path makes no log call unless an EINTR actually happens.
func warnOnEINTRRetry(n int) {
	log.Warningf("mysql: retrying read of %d bytes after EINTR", n)
}
