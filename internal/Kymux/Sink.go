package Kymux

import (
	"io"

	"github.com/pkg/errors"

	"git.hub.com/wangyl/KYMUX_RELAY/internal/RichConn"
)

const (
	CodecBlockLen     = 12 // codec announcement size, 16-bit endpoint ids
	WideCodecBlockLen = 16 // codec announcement size, 64-bit endpoint ids

	rawChannelId        = 0
	rawChannelPrefixLen = 4

	sinkBufSize = 32 * 1024
)

// EndpointSink streams packets to one kymux endpoint over an established
// connection. The one-time handshake writes the endpoint id big-endian,
// reads back exactly one sync byte, then writes the zero-padded codec
// announcement. After that each packet is a 12-byte header followed by
// its payload bytes.
type EndpointSink struct {
	rw    *RichConn.ReaderWriter
	addr  *Addr
	codec string
}

func NewEndpointSink(conn io.ReadWriter, addr *Addr, codec string) *EndpointSink {
	return &EndpointSink{
		rw:    RichConn.NewReaderWriter(conn, sinkBufSize),
		addr:  addr,
		codec: codec,
	}
}

func (pThis *EndpointSink) Handshake() error {
	if pThis.addr.Wide {
		if err := pThis.rw.WriteUint64BE(pThis.addr.EndpointId); err != nil {
			return errors.Wrap(err, "write endpoint id fail")
		}
	} else {
		if err := pThis.rw.WriteUintBE(uint32(pThis.addr.EndpointId), 2); err != nil {
			return errors.Wrap(err, "write endpoint id fail")
		}
	}
	if err := pThis.rw.Flush(); err != nil {
		return errors.Wrap(err, "write endpoint id fail")
	}
	if _, err := pThis.rw.ReadByte(); err != nil {
		return errors.Wrap(err, "read sync byte fail")
	}
	block, err := CodecBlock(pThis.codec, pThis.addr.Wide)
	if err != nil {
		return err
	}
	if _, err := pThis.rw.Write(block); err != nil {
		return errors.Wrap(err, "write codec announcement fail")
	}
	if err := pThis.rw.Flush(); err != nil {
		return errors.Wrap(err, "write codec announcement fail")
	}
	return nil
}

func (pThis *EndpointSink) WriteHeader(header []byte) error {
	_, err := pThis.rw.Write(header)
	return err
}

func (pThis *EndpointSink) Write(p []byte) (int, error) {
	return pThis.rw.Write(p)
}

func (pThis *EndpointSink) Flush() error {
	return pThis.rw.Flush()
}

// CodecBlock builds the fixed-size codec announcement: the ASCII tag
// padded with zero bytes to 12 bytes, or 16 for wide deployments.
func CodecBlock(codec string, wide bool) ([]byte, error) {
	size := CodecBlockLen
	if wide {
		size = WideCodecBlockLen
	}
	if len(codec) == 0 || len(codec) > size {
		return nil, errors.Errorf("invalid codec tag: %q", codec)
	}
	block := make([]byte, size)
	copy(block, codec)
	return block, nil
}

// RawSink streams packets to a raw channel-multiplexed listener. There
// is no handshake; each header is preceded by a fixed-width channel id,
// channel 0 here.
type RawSink struct {
	rw *RichConn.ReaderWriter
}

func NewRawSink(conn io.Writer) *RawSink {
	return &RawSink{
		rw: RichConn.NewReaderWriter(readWriter{w: conn}, sinkBufSize),
	}
}

func (pThis *RawSink) Handshake() error {
	return nil
}

func (pThis *RawSink) WriteHeader(header []byte) error {
	if err := pThis.rw.WriteUintBE(rawChannelId, rawChannelPrefixLen); err != nil {
		return err
	}
	_, err := pThis.rw.Write(header)
	return err
}

func (pThis *RawSink) Write(p []byte) (int, error) {
	return pThis.rw.Write(p)
}

func (pThis *RawSink) Flush() error {
	return pThis.rw.Flush()
}

type readWriter struct {
	w io.Writer
}

func (rw readWriter) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (rw readWriter) Write(p []byte) (int, error) {
	return rw.w.Write(p)
}
