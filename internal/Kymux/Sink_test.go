package Kymux

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// destDouble stands in for the destination connection and records the
// order of writes and sync-byte reads.
type destDouble struct {
	events   []string
	written  []byte
	syncSent bool
}

func (d *destDouble) Read(p []byte) (int, error) {
	if d.syncSent {
		return 0, io.EOF
	}
	d.syncSent = true
	d.events = append(d.events, "read-sync")
	p[0] = 0x00
	return 1, nil
}

func (d *destDouble) Write(p []byte) (int, error) {
	d.events = append(d.events, "write")
	d.written = append(d.written, p...)
	return len(p), nil
}

func TestEndpointSinkHandshake(t *testing.T) {
	dest := &destDouble{}
	addr := &Addr{EndpointId: 0x2e}
	sink := NewEndpointSink(dest, addr, "h264")

	require.NoError(t, sink.Handshake())

	// endpoint id first, then exactly one sync byte back, then the codec
	// announcement, before any data bytes
	assert.Equal(t, []string{"write", "read-sync", "write"}, dest.events)
	want := append([]byte{0x00, 0x2e}, 'h', '2', '6', '4', 0, 0, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, want, dest.written)
}

func TestEndpointSinkHandshakeWide(t *testing.T) {
	dest := &destDouble{}
	addr := &Addr{EndpointId: 0x1122334455667788, Wide: true}
	sink := NewEndpointSink(dest, addr, "opus")

	require.NoError(t, sink.Handshake())

	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}, dest.written[:8])
	codec := dest.written[8:]
	require.Len(t, codec, WideCodecBlockLen)
	assert.Equal(t, []byte("opus"), codec[:4])
	for _, b := range codec[4:] {
		assert.Zero(t, b)
	}
}

func TestEndpointSinkPacketAfterHandshake(t *testing.T) {
	dest := &destDouble{}
	sink := NewEndpointSink(dest, &Addr{EndpointId: 1}, "h264")
	require.NoError(t, sink.Handshake())
	handshakeLen := len(dest.written)

	header := make([]byte, MetaHeaderLen)
	header[0] = 0xE5
	require.NoError(t, sink.WriteHeader(header))
	_, err := sink.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, sink.Flush())

	packet := dest.written[handshakeLen:]
	require.Len(t, packet, MetaHeaderLen+3)
	assert.Equal(t, header, packet[:MetaHeaderLen])
	assert.Equal(t, []byte{1, 2, 3}, packet[MetaHeaderLen:])
}

func TestCodecBlock(t *testing.T) {
	block, err := CodecBlock("h264", false)
	require.NoError(t, err)
	assert.Len(t, block, CodecBlockLen)

	_, err = CodecBlock("", false)
	assert.Error(t, err)
	_, err = CodecBlock("a-codec-tag-way-too-long", false)
	assert.Error(t, err)
}

func TestRawSinkChannelPrefix(t *testing.T) {
	dest := &destDouble{}
	sink := NewRawSink(dest)
	require.NoError(t, sink.Handshake())
	assert.Empty(t, dest.written, "raw link has no handshake")

	header := make([]byte, MetaHeaderLen)
	header[0] = 0xC5
	require.NoError(t, sink.WriteHeader(header))
	_, err := sink.Write([]byte{9, 9})
	require.NoError(t, err)
	require.NoError(t, sink.Flush())

	require.Len(t, dest.written, 4+MetaHeaderLen+2)
	assert.Equal(t, []byte{0, 0, 0, 0}, dest.written[:4], "channel 0 prefix")
	assert.Equal(t, header, dest.written[4:4+MetaHeaderLen])
}
