package Kymux

import (
	"net"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

const Scheme = "kymux"

// Addr is one logical endpoint on a kymux multiplexer: the TCP address
// of the multiplexer plus the endpoint id selected during handshake.
// The id is 16 bits wide, or 64 bits for wide deployments.
type Addr struct {
	IP         net.IP
	Port       int
	EndpointId uint64
	Wide       bool
}

// ParseURL parses "kymux://<ip>:<port>/<hex endpoint id>". The host must
// be an IP literal and the path a hexadecimal endpoint id.
func ParseURL(rawUrl string, wide bool) (*Addr, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return nil, errors.Wrap(err, "parse url fail")
	}
	if u.Scheme != Scheme {
		return nil, errors.Errorf("wrong scheme in url: %s", rawUrl)
	}
	host := u.Hostname()
	if host == "" {
		return nil, errors.Errorf("missing host in url: %s", rawUrl)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, errors.Errorf("invalid IP in url: %s", rawUrl)
	}
	portStr := u.Port()
	if portStr == "" {
		return nil, errors.Errorf("missing port in url: %s", rawUrl)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.Errorf("invalid port in url: %s", rawUrl)
	}
	if len(u.Path) < 2 {
		// the first char is '/'
		return nil, errors.Errorf("empty path in url: %s", rawUrl)
	}
	bitSize := 16
	if wide {
		bitSize = 64
	}
	endpointId, err := strconv.ParseUint(u.Path[1:], 16, bitSize)
	if err != nil {
		return nil, errors.Errorf("invalid endpoint: %s", u.Path[1:])
	}
	return &Addr{
		IP:         ip,
		Port:       port,
		EndpointId: endpointId,
		Wide:       wide,
	}, nil
}

// HostPort returns the multiplexer TCP address in dial form.
func (a *Addr) HostPort() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(a.Port))
}

// IdLen returns the endpoint id width in bytes.
func (a *Addr) IdLen() int {
	if a.Wide {
		return 8
	}
	return 2
}
