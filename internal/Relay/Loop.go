package Relay

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"git.hub.com/wangyl/KYMUX_RELAY/internal/Kymux"
)

// Sink is the destination side of the relay. Handshake runs once before
// the first packet; afterwards each packet is a WriteHeader followed by
// exactly the declared payload bytes written through Write, in packet
// order, with no interleaving.
type Sink interface {
	io.Writer
	Handshake() error
	WriteHeader(header []byte) error
	Flush() error
}

// Reporter observes relay progress after each forwarded packet.
type Reporter interface {
	Progress(pts uint64)
}

type State int

const (
	AwaitHeader State = iota
	Pace
	Forward
	Done
)

// Loop drives one relay run: AwaitHeader -> Pace -> Forward ->
// AwaitHeader, terminal Done on end of stream. Any I/O failure other
// than a clean end of stream aborts the run immediately, no retries.
// The loop owns its source, pacer and sink for the whole run; it is
// single-threaded and the pacer sleeps are the only suspension points.
type Loop struct {
	Source   *Source
	Sink     Sink
	Pacer    *Pacer
	Session  *Session
	Rewrite  bool // re-encode header byte 0 for the destination layout
	Reporter Reporter

	state   State
	packets int64
	bytes   int64
}

func (l *Loop) State() State {
	return l.state
}

// Packets returns the count of forwarded packets.
func (l *Loop) Packets() int64 {
	return l.packets
}

// Bytes returns the count of forwarded payload bytes.
func (l *Loop) Bytes() int64 {
	return l.bytes
}

func (l *Loop) Run() error {
	if err := l.Sink.Handshake(); err != nil {
		return errors.Wrap(err, "sink handshake fail")
	}
	l.Session.Begin()
	header := make([]byte, Kymux.MetaHeaderLen)
	for {
		l.state = AwaitHeader
		done, err := l.Source.ReadHeader(header)
		if err != nil {
			return err
		}
		if done {
			break
		}
		meta, err := Kymux.DecodeMeta(header)
		if err != nil {
			return err
		}

		l.state = Pace
		if d := l.Pacer.Delay(meta, time.Now()); d > 0 {
			time.Sleep(d)
		}

		l.state = Forward
		if l.Rewrite {
			Kymux.RewriteHeader(header)
		}
		if err := l.Sink.WriteHeader(header); err != nil {
			return errors.Wrap(err, "write header fail")
		}
		n, truncated, err := l.Source.CopyPayload(l.Sink, meta.Size)
		if err != nil {
			return err
		}
		if err := l.Sink.Flush(); err != nil {
			return errors.Wrap(err, "flush packet fail")
		}
		l.packets++
		l.bytes += n
		if l.Reporter != nil {
			l.Reporter.Progress(meta.Pts)
		}
		if truncated {
			break
		}
	}
	l.state = Done
	return nil
}
