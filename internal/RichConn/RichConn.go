package RichConn

import (
	"net"
	"time"
)

// ConnRich wraps a net.Conn and refreshes the read/write deadline before
// every operation. A zero timeout clears the deadline.
type ConnRich struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Conn         net.Conn
}

func NewConnRich(conn net.Conn, readTimeout time.Duration, writeTimeout time.Duration) *ConnRich {
	return &ConnRich{
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Conn:         conn,
	}
}

// DialTimeout connects to a TCP destination and wraps the conn with the
// per-operation deadlines.
func DialTimeout(addr string, connectTimeout, readTimeout, writeTimeout time.Duration) (*ConnRich, error) {
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return nil, err
	}
	return NewConnRich(conn, readTimeout, writeTimeout), nil
}

func (c *ConnRich) Write(p []byte) (n int, err error) {
	if c.WriteTimeout > 0 {
		_ = c.Conn.SetWriteDeadline(time.Now().Add(c.WriteTimeout))
	} else {
		var t time.Time
		_ = c.Conn.SetWriteDeadline(t)
	}
	return c.Conn.Write(p)
}

func (c *ConnRich) Read(p []byte) (n int, err error) {
	if c.ReadTimeout > 0 {
		_ = c.Conn.SetReadDeadline(time.Now().Add(c.ReadTimeout))
	} else {
		var t time.Time
		_ = c.Conn.SetReadDeadline(t)
	}
	return c.Conn.Read(p)
}

func (c *ConnRich) Close() error {
	return c.Conn.Close()
}
