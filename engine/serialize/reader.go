package serialize

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/spaghettifunk/rlres/engine/core"
)

// Reader mirrors Writer. Reads after the first error return zero values.
type Reader struct {
	r   io.Reader
	buf [8]byte
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) read(n int) []byte {
	if r.err != nil {
		clear(r.buf[:n])
		return r.buf[:n]
	}
	if _, err := io.ReadFull(r.r, r.buf[:n]); err != nil {
		r.err = err
		clear(r.buf[:n])
	}
	return r.buf[:n]
}

// Bytes reads n bytes. The buffer grows with the data actually read, so a
// corrupt length on a short stream fails without allocating n up front.
func (r *Reader) Bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.err = fmt.Errorf("%w: %d", core.ErrBadLength, n)
		return nil
	}
	p, err := io.ReadAll(io.LimitReader(r.r, int64(n)))
	if err != nil {
		r.err = err
		return nil
	}
	if len(p) < n {
		r.err = io.ErrUnexpectedEOF
		return nil
	}
	return p
}

func (r *Reader) U8() uint8 {
	return r.read(1)[0]
}

func (r *Reader) Bool() bool {
	return r.U8() != 0
}

func (r *Reader) U16() uint16 {
	return binary.LittleEndian.Uint16(r.read(2))
}

func (r *Reader) I16() int16 {
	return int16(r.U16())
}

func (r *Reader) U32() uint32 {
	return binary.LittleEndian.Uint32(r.read(4))
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

func (r *Reader) U64() uint64 {
	return binary.LittleEndian.Uint64(r.read(8))
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

func (r *Reader) Usize() int {
	return r.length()
}

func (r *Reader) VectorLen() int {
	return r.length()
}

func (r *Reader) length() int {
	v := r.U64()
	if v > math.MaxInt {
		if r.err == nil {
			r.err = fmt.Errorf("%w: %d", core.ErrBadLength, v)
		}
		return 0
	}
	return int(v)
}

func (r *Reader) String() string {
	n := r.U32()
	return string(r.Bytes(int(n)))
}

// Header reads the common header and checks the magic.
func (r *Reader) Header() (Header, error) {
	h := Header{
		Magic:        r.U32(),
		ResourceType: r.U32(),
		Version:      r.U32(),
	}
	if r.err != nil {
		return h, r.err
	}
	if h.Magic != Magic {
		return h, fmt.Errorf("%w: %#08x", core.ErrBadMagic, h.Magic)
	}
	return h, nil
}
