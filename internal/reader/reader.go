package reader

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/heliosim/ppf-tool/internal/types"
)

const (
	expMask32 = 0x7f800000
	expMask64 = 0x7ff0000000000000
)

// Reader is a sequential, offset-tracked cursor over the bytes of a ppf
// file. All multi-byte values are little-endian. A failed read leaves
// the cursor where the read started; every failure is unrecoverable for
// the parse in progress and propagates up unchanged.
type Reader struct {
	data []byte
	pos  int64
}

// New creates a Reader positioned at the start of data.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// take consumes n bytes from the current position.
func (r *Reader) take(n int) ([]byte, error) {
	remaining := len(r.data) - int(r.pos)
	if remaining < n {
		return nil, &types.TruncatedRecordError{
			Offset:    r.pos,
			Want:      n,
			Remaining: remaining,
		}
	}
	buf := r.data[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return buf, nil
}

// ReadInt32 reads a 32-bit signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	buf, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

// ReadInt64 reads a 64-bit signed integer.
func (r *Reader) ReadInt64() (int64, error) {
	buf, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

// ReadFloat32 reads a 32-bit float. Encodings with all exponent bits
// set (Inf/NaN) are reserved in the ppf format and rejected.
func (r *Reader) ReadFloat32() (float32, error) {
	start := r.pos
	buf, err := r.take(4)
	if err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint32(buf)
	if bits&expMask32 == expMask32 {
		r.pos = start
		return 0, &types.MalformedNumberError{Offset: start, Bits: uint64(bits)}
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 reads a 64-bit float, rejecting reserved encodings like
// ReadFloat32.
func (r *Reader) ReadFloat64() (float64, error) {
	start := r.pos
	buf, err := r.take(8)
	if err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint64(buf)
	if bits&expMask64 == expMask64 {
		r.pos = start
		return 0, &types.MalformedNumberError{Offset: start, Bits: bits}
	}
	return math.Float64frombits(bits), nil
}

// ReadFixedText reads n bytes of fixed-width text and trims trailing
// padding (spaces and NULs).
func (r *Reader) ReadFixedText(n int) (string, error) {
	buf, err := r.take(n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), " \x00"), nil
}

// ReadFloat64Array reads count consecutive 64-bit floats. It fails
// exactly as count repeated ReadFloat64 calls would.
func (r *Reader) ReadFloat64Array(count int) ([]float64, error) {
	out := make([]float64, count)
	for i := range out {
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Position returns the current byte offset.
func (r *Reader) Position() int64 {
	return r.pos
}

// AtEnd reports whether the cursor has consumed the entire stream.
func (r *Reader) AtEnd() bool {
	return int(r.pos) >= len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - int(r.pos)
}
