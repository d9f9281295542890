package serialize

import (
	"encoding/binary"
	"io"
	"math"
)

// Magic is "RLRS" read as a big-endian u32. It is written little-endian
// like every other field.
const Magic uint32 = 0x524C5253

// Header is the common prefix of every resource file.
type Header struct {
	Magic        uint32
	ResourceType uint32
	Version      uint32
}

// Writer writes little-endian primitives. The first write error is kept
// and every later call becomes a no-op; check Err once at the end.
type Writer struct {
	w   io.Writer
	buf [8]byte
	n   int64
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Err() error {
	return w.err
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 {
	return w.n
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	w.err = err
}

func (w *Writer) Bytes(p []byte) {
	w.write(p)
}

func (w *Writer) U8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

func (w *Writer) U16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	w.write(w.buf[:2])
}

func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

func (w *Writer) U32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

func (w *Writer) U64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	w.write(w.buf[:8])
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// Usize writes a platform size as u64.
func (w *Writer) Usize(v int) {
	w.U64(uint64(v))
}

// VectorLen writes a sequence length prefix.
func (w *Writer) VectorLen(n int) {
	w.U64(uint64(n))
}

// String writes a u32 byte length followed by the UTF-8 bytes.
func (w *Writer) String(s string) {
	w.U32(uint32(len(s)))
	w.write([]byte(s))
}

func (w *Writer) Header(resourceType, version uint32) {
	w.U32(Magic)
	w.U32(resourceType)
	w.U32(version)
}

// F32Bits returns the IEEE-754 single precision bit pattern of v.
func F32Bits(v float64) uint32 {
	return math.Float32bits(float32(v))
}
