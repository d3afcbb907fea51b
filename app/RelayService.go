package app

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.hub.com/wangyl/KYMUX_RELAY/internal/Kymux"
	"git.hub.com/wangyl/KYMUX_RELAY/internal/Relay"
	"git.hub.com/wangyl/KYMUX_RELAY/internal/RichConn"
	"git.hub.com/wangyl/KYMUX_RELAY/pkg/Logger"
	"git.hub.com/wangyl/KYMUX_RELAY/pkg/Settings"
)

// Variant selects the source binding, sink framing and pacing mode of
// one relay run. All variants drive the same pipeline.
type Variant int

const (
	// FileToEndpoint relays a recorded file to a kymux endpoint with a
	// 16-bit id, origin-relative pacing, header re-encoded.
	FileToEndpoint Variant = iota
	// SocketToEndpoint accepts one upstream connection and relays it to
	// a kymux endpoint, origin-relative pacing, header re-encoded.
	SocketToEndpoint
	// FileToRaw relays a recorded file to a raw channel-multiplexed
	// listener, absolute pacing, header passed through unchanged.
	FileToRaw
	// FileToWideEndpoint is FileToEndpoint with a 64-bit endpoint id and
	// a 16-byte codec announcement.
	FileToWideEndpoint
)

func (v Variant) String() string {
	switch v {
	case FileToEndpoint:
		return "file"
	case SocketToEndpoint:
		return "socket"
	case FileToRaw:
		return "raw"
	case FileToWideEndpoint:
		return "wide"
	}
	return "unknown"
}

type RelayConfig struct {
	Variant    Variant
	InputPath  string // file-backed variants
	ListenAddr string // SocketToEndpoint: upstream listen address
	DestUrl    string // kymux url, or host:port for FileToRaw
	Codec      string // empty means the Settings default
}

type RelayService struct {
	Config RelayConfig

	source  io.ReadCloser
	dest    *RichConn.ConnRich
	session *Relay.Session
	loop    *Relay.Loop
}

func (s *RelayService) Init(cfg RelayConfig) error {
	s.Config = cfg
	if cfg.Codec == "" {
		s.Config.Codec = Settings.GetConfig().APP.Codec
	}

	if err := s.openSource(); err != nil {
		return err
	}

	sink, err := s.connectSink()
	if err != nil {
		s.closeSource()
		return err
	}

	policy := Relay.StrictEOF
	if cfg.Variant == SocketToEndpoint {
		policy = Relay.DistinguishTruncation
	}
	mode := Relay.OriginRelative
	if cfg.Variant == FileToRaw {
		mode = Relay.Absolute
	}

	s.session = Relay.NewSession()
	s.loop = &Relay.Loop{
		Source:   Relay.NewSource(s.source, policy),
		Sink:     sink,
		Pacer:    &Relay.Pacer{Mode: mode, Session: s.session},
		Session:  s.session,
		Rewrite:  cfg.Variant != FileToRaw,
		Reporter: consoleReporter{},
	}
	return nil
}

func (s *RelayService) openSource() error {
	switch s.Config.Variant {
	case SocketToEndpoint:
		listener, err := net.Listen("tcp", s.Config.ListenAddr)
		if err != nil {
			return errors.Wrap(err, "listen upstream fail")
		}
		Logger.GetLogger().Info("waiting for upstream stream",
			zap.String("listen", s.Config.ListenAddr))
		conn, err := listener.Accept()
		listener.Close()
		if err != nil {
			return errors.Wrap(err, "accept upstream fail")
		}
		s.source = conn
	default:
		file, err := os.Open(s.Config.InputPath)
		if err != nil {
			return errors.Wrap(err, "open input file fail")
		}
		s.source = file
	}
	return nil
}

func (s *RelayService) connectSink() (Relay.Sink, error) {
	appCfg := Settings.GetConfig().APP
	connectTimeout := time.Duration(appCfg.ConnectTimeout) * time.Second
	readTimeout := time.Duration(appCfg.ReadTimeout) * time.Second
	writeTimeout := time.Duration(appCfg.WriteTimeout) * time.Second

	if s.Config.Variant == FileToRaw {
		dest, err := RichConn.DialTimeout(s.Config.DestUrl, connectTimeout, readTimeout, writeTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "connect destination fail")
		}
		s.dest = dest
		return Kymux.NewRawSink(dest), nil
	}

	addr, err := Kymux.ParseURL(s.Config.DestUrl, s.Config.Variant == FileToWideEndpoint)
	if err != nil {
		return nil, err
	}
	dest, err := RichConn.DialTimeout(addr.HostPort(), connectTimeout, readTimeout, writeTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "connect destination fail")
	}
	s.dest = dest
	return Kymux.NewEndpointSink(dest, addr, s.Config.Codec), nil
}

// StartWork runs the relay to completion. It blocks for the whole run;
// Stop unblocks it by closing both ends.
func (s *RelayService) StartWork() error {
	Logger.GetLogger().Info("relay start",
		zap.Int64("session", s.session.Id),
		zap.String("variant", s.Config.Variant.String()),
		zap.String("dest", s.Config.DestUrl))

	err := s.loop.Run()
	fmt.Print("\r")
	if err != nil {
		Logger.GetLogger().Error("relay abort: "+err.Error(),
			zap.Int64("session", s.session.Id),
			zap.Int64("packets", s.loop.Packets()),
			zap.Int64("bytes", s.loop.Bytes()))
		return err
	}
	fmt.Println("Complete")
	Logger.GetLogger().Info("relay complete",
		zap.Int64("session", s.session.Id),
		zap.Int64("packets", s.loop.Packets()),
		zap.Int64("bytes", s.loop.Bytes()))
	return nil
}

// Stop closes the source and destination. The loop's blocked read,
// sleep-adjacent read or write then fails and the run returns.
func (s *RelayService) Stop() {
	s.closeSource()
	if s.dest != nil {
		s.dest.Close()
	}
}

func (s *RelayService) closeSource() {
	if s.source != nil {
		s.source.Close()
	}
}

type consoleReporter struct{}

func (consoleReporter) Progress(pts uint64) {
	fmt.Printf("\rStreaming pts=%d", pts)
}
