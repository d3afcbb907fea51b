package Relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"git.hub.com/wangyl/KYMUX_RELAY/internal/Kymux"
)

func newTestSession() *Session {
	s := NewSession()
	s.Begin()
	return s
}

func TestPacerConfigNeverDelayed(t *testing.T) {
	session := newTestSession()
	p := &Pacer{Mode: OriginRelative, Session: session}

	for _, pts := range []uint64{0, 1000, Kymux.PtsMask} {
		meta := Kymux.MetaHeader{Pts: pts, IsConfig: true}
		assert.Zero(t, p.Delay(meta, session.Start), "pts %d", pts)
	}
	// the origin must still be unset: config packets never update it
	assert.False(t, session.hasOrigin)

	p.Mode = Absolute
	meta := Kymux.MetaHeader{Pts: Kymux.PtsMask, IsConfig: true}
	assert.Zero(t, p.Delay(meta, session.Start))
}

func TestPacerOriginRelative(t *testing.T) {
	session := newTestSession()
	p := &Pacer{Mode: OriginRelative, Session: session}

	// first non-config packet: no wait even with a large pts, it only
	// establishes the origin
	first := Kymux.MetaHeader{Pts: 1000}
	assert.Zero(t, p.Delay(first, session.Start))

	// same pts again: target 0, no wait
	second := Kymux.MetaHeader{Pts: 1000}
	assert.Zero(t, p.Delay(second, session.Start.Add(time.Microsecond)))

	// pts 5000: target 4000us from start, 100us already elapsed
	third := Kymux.MetaHeader{Pts: 5000}
	got := p.Delay(third, session.Start.Add(100*time.Microsecond))
	assert.Equal(t, 3900*time.Microsecond, got)
}

func TestPacerOriginRelativeLatePacket(t *testing.T) {
	session := newTestSession()
	p := &Pacer{Mode: OriginRelative, Session: session}

	p.Delay(Kymux.MetaHeader{Pts: 1000}, session.Start)
	// the relay is already past the target: no sleep, no catch-up
	late := Kymux.MetaHeader{Pts: 2000}
	assert.Zero(t, p.Delay(late, session.Start.Add(time.Second)))
	// a pts below the origin never waits either
	assert.Zero(t, p.Delay(Kymux.MetaHeader{Pts: 500}, session.Start))
}

func TestPacerAbsolute(t *testing.T) {
	session := newTestSession()
	p := &Pacer{Mode: Absolute, Session: session}

	// no origin subtraction: pts is the offset from session start
	got := p.Delay(Kymux.MetaHeader{Pts: 10000}, session.Start.Add(2500*time.Microsecond))
	assert.Equal(t, 7500*time.Microsecond, got)

	assert.Zero(t, p.Delay(Kymux.MetaHeader{Pts: 100}, session.Start.Add(time.Millisecond)))
	assert.False(t, session.hasOrigin, "absolute mode never records an origin")
}
