package Relay

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

type ReadPolicy int

const (
	// StrictEOF treats any header shortfall, even one byte short, as a
	// clean end of stream. Used for file-backed sources.
	StrictEOF ReadPolicy = iota
	// DistinguishTruncation treats zero bytes as a clean end of stream
	// and a partial header as a truncated-stream error. Used for the
	// upstream socket source, where a half-written header means the
	// upstream died mid-packet.
	DistinguishTruncation
)

// Source reads packets sequentially from a byte stream with a per-call
// byte budget: 12 bytes for a header, then the declared payload size.
// Payloads are streamed through, never buffered whole.
type Source struct {
	r      *bufio.Reader
	policy ReadPolicy
}

func NewSource(r io.Reader, policy ReadPolicy) *Source {
	return &Source{
		r:      bufio.NewReaderSize(r, 32*1024),
		policy: policy,
	}
}

// ReadHeader fills buf with the next meta header. done reports the
// stream ended before a full header was available.
func (s *Source) ReadHeader(buf []byte) (done bool, err error) {
	n, err := io.ReadFull(s.r, buf)
	if err == nil {
		return false, nil
	}
	if err == io.EOF {
		return true, nil
	}
	if err == io.ErrUnexpectedEOF {
		if s.policy == StrictEOF {
			return true, nil
		}
		return true, errors.Errorf("truncated stream: %d of %d header bytes", n, len(buf))
	}
	return false, errors.Wrap(err, "read meta header fail")
}

// CopyPayload streams exactly size payload bytes to w. done reports the
// stream ended before the declared payload was complete; whatever bytes
// were available have already been forwarded to w.
func (s *Source) CopyPayload(w io.Writer, size uint32) (n int64, done bool, err error) {
	n, err = io.CopyN(w, s.r, int64(size))
	if err == nil {
		return n, false, nil
	}
	if err == io.EOF {
		return n, true, nil
	}
	return n, false, errors.Wrap(err, "copy payload fail")
}
