package Relay

import (
	"time"

	"git.hub.com/wangyl/KYMUX_RELAY/pkg/Snowflake"
)

// Session is the per-run relay clock. Start is stamped when the relay
// begins emitting data (after the sink handshake), not at construction.
// The pts origin is recorded by the pacer on the first non-config packet
// and only used in origin-relative mode.
type Session struct {
	Id    int64
	Start time.Time

	ptsOrigin uint64
	hasOrigin bool
}

func NewSession() *Session {
	return &Session{
		Id: Snowflake.GenerateId(),
	}
}

func (s *Session) Begin() {
	s.Start = time.Now()
}
