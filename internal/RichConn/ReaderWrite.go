package RichConn

import (
	"bufio"
	"io"
)

// ReaderWriter is a buffered big-endian reader/writer with sticky
// errors: once a read or write fails, every later call on that side
// returns the same error.
type ReaderWriter struct {
	*bufio.ReadWriter
	readErr  error
	writeErr error
}

func NewReaderWriter(rw io.ReadWriter, bufSize int) *ReaderWriter {
	return &ReaderWriter{
		ReadWriter: bufio.NewReadWriter(bufio.NewReaderSize(rw, bufSize), bufio.NewWriterSize(rw, bufSize)),
	}
}

// Read fills p completely or fails.
func (pThis *ReaderWriter) Read(p []byte) (int, error) {
	if pThis.readErr != nil {
		return 0, pThis.readErr
	}
	n, err := io.ReadFull(pThis.Reader, p)
	pThis.readErr = err
	return n, err
}

func (pThis *ReaderWriter) ReadByte() (byte, error) {
	if pThis.readErr != nil {
		return 0, pThis.readErr
	}
	b, err := pThis.Reader.ReadByte()
	pThis.readErr = err
	return b, err
}

func (pThis *ReaderWriter) ReadUintBE(n int) (uint32, error) {
	if pThis.readErr != nil {
		return 0, pThis.readErr
	}
	ret := uint32(0)
	for i := 0; i < n; i++ {
		b, err := pThis.Reader.ReadByte()
		if err != nil {
			pThis.readErr = err
			return 0, err
		}
		ret = ret<<8 + uint32(b)
	}
	return ret, nil
}

func (pThis *ReaderWriter) Write(p []byte) (int, error) {
	if pThis.writeErr != nil {
		return 0, pThis.writeErr
	}
	n, err := pThis.Writer.Write(p)
	pThis.writeErr = err
	return n, err
}

func (pThis *ReaderWriter) WriteUintBE(v uint32, n int) error {
	if pThis.writeErr != nil {
		return pThis.writeErr
	}
	for i := 0; i < n; i++ {
		b := byte(v>>uint32((n-i-1)*8)) & 0xff
		if err := pThis.Writer.WriteByte(b); err != nil {
			pThis.writeErr = err
			return err
		}
	}
	return nil
}

func (pThis *ReaderWriter) WriteUint64BE(v uint64) error {
	if pThis.writeErr != nil {
		return pThis.writeErr
	}
	for i := 0; i < 8; i++ {
		b := byte(v>>uint64((8-i-1)*8)) & 0xff
		if err := pThis.Writer.WriteByte(b); err != nil {
			pThis.writeErr = err
			return err
		}
	}
	return nil
}

func (pThis *ReaderWriter) Flush() error {
	if pThis.writeErr != nil {
		return pThis.writeErr
	}
	if pThis.Writer.Buffered() == 0 {
		return nil
	}
	return pThis.Writer.Flush()
}
