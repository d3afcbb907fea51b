package Relay

import (
	"time"

	"git.hub.com/wangyl/KYMUX_RELAY/internal/Kymux"
)

type PaceMode int

const (
	// OriginRelative emits the first non-config packet immediately and
	// makes its pts the zero point for every later wait. The relay clock
	// starts at the first packet, so wall-clock-to-pts correlation resets
	// per run. Intentional.
	OriginRelative PaceMode = iota
	// Absolute treats every pts directly as an offset from the session
	// start.
	Absolute
)

// Pacer reproduces the original inter-packet timing: it computes how
// long the relay must wait before emitting a packet so that wall-clock
// gaps match the gaps implied by the presentation timestamps.
type Pacer struct {
	Mode    PaceMode
	Session *Session
}

// Delay returns the wait before emitting the packet, never negative.
// Config packets are forwarded immediately and never touch the pts
// origin. Late packets emit immediately; there is no catch-up.
func (p *Pacer) Delay(meta Kymux.MetaHeader, now time.Time) time.Duration {
	if meta.IsConfig {
		return 0
	}
	var target time.Duration
	switch p.Mode {
	case OriginRelative:
		if !p.Session.hasOrigin {
			p.Session.ptsOrigin = meta.Pts
			p.Session.hasOrigin = true
			return 0
		}
		if meta.Pts <= p.Session.ptsOrigin {
			return 0
		}
		target = time.Duration(meta.Pts-p.Session.ptsOrigin) * time.Microsecond
	case Absolute:
		target = time.Duration(meta.Pts) * time.Microsecond
	}
	elapsed := now.Sub(p.Session.Start)
	if target <= elapsed {
		return 0
	}
	return target - elapsed
}
