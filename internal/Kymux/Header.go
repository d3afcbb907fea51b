package Kymux

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

/*
	The "meta" header length is 12 bytes:
	[. . . . . . . .|. . . .]. . . . . . . . . . . . . . . ...
	 <-------------> <-----> <-----------------------------...
	       PTS        packet        raw packet
	                   size

	It is followed by <packet_size> bytes containing the packet/frame.

	The most significant bits of the PTS are used for packet flags:

	 byte 7   byte 6   byte 5   byte 4   byte 3   byte 2   byte 1   byte 0
	CK...... ........ ........ ........ ........ ........ ........ ........
	^^<------------------------------------------------------------------->
	||                                PTS
	| `- key frame
	 `-- config packet

	The kymux destination collapses the two flag bits into one flag bit
	plus a reserved zero bit, so byte 0 must be rewritten before forward:

	1CK..... (top bit always set, flags shifted right by one position)
*/

const (
	MetaHeaderLen = 12

	PtsMask      uint64 = 0x3FFFFFFFFFFFFFFF
	configFlag   uint64 = 0x8000000000000000
	keyFrameFlag uint64 = 0x4000000000000000
)

type MetaHeader struct {
	Pts        uint64 // microseconds
	IsConfig   bool
	IsKeyFrame bool
	Size       uint32 // payload bytes following the header
}

// DecodeMeta parses a 12-byte meta header. A short buffer is the only
// failure and signals a truncated stream to the caller.
func DecodeMeta(buf []byte) (meta MetaHeader, err error) {
	if len(buf) < MetaHeaderLen {
		err = errors.Errorf("malformed meta header: %d bytes", len(buf))
		return
	}
	ptsAndFlags := binary.BigEndian.Uint64(buf[:8])
	meta.Pts = ptsAndFlags & PtsMask
	meta.IsConfig = ptsAndFlags&configFlag != 0
	meta.IsKeyFrame = ptsAndFlags&keyFrameFlag != 0
	meta.Size = binary.BigEndian.Uint32(buf[8:12])
	return
}

// EncodeMeta writes meta into buf in the source wire layout.
func EncodeMeta(meta MetaHeader, buf []byte) error {
	if len(buf) < MetaHeaderLen {
		return errors.Errorf("meta header buffer too small: %d bytes", len(buf))
	}
	ptsAndFlags := meta.Pts & PtsMask
	if meta.IsConfig {
		ptsAndFlags |= configFlag
	}
	if meta.IsKeyFrame {
		ptsAndFlags |= keyFrameFlag
	}
	binary.BigEndian.PutUint64(buf[:8], ptsAndFlags)
	binary.BigEndian.PutUint32(buf[8:12], meta.Size)
	return nil
}

// RewriteHeader re-encodes byte 0 in place for the kymux destination
// layout. Bytes 1-11 are never touched. Must be applied exactly once
// per forwarded header.
func RewriteHeader(header []byte) {
	header[0] = 0x80 | ((header[0] & 0xC0) >> 1) | (header[0] & 0x1F)
}
