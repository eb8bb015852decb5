package reader

// StreamReader defines the primitive-decoding surface the dump decoder
// consumes. *Reader is the only implementation; the interface exists so
// the decode layer depends on behavior, not on the buffer-backed cursor.
type StreamReader interface {
	// ReadInt32 reads a 32-bit signed integer.
	ReadInt32() (int32, error)

	// ReadInt64 reads a 64-bit signed integer.
	ReadInt64() (int64, error)

	// ReadFloat32 reads a 32-bit float, rejecting reserved encodings.
	ReadFloat32() (float32, error)

	// ReadFloat64 reads a 64-bit float, rejecting reserved encodings.
	ReadFloat64() (float64, error)

	// ReadFixedText reads n bytes of padded fixed-width text.
	ReadFixedText(n int) (string, error)

	// ReadFloat64Array reads count consecutive 64-bit floats.
	ReadFloat64Array(count int) ([]float64, error)

	// Position returns the current byte offset.
	Position() int64

	// AtEnd reports whether the stream is exhausted.
	AtEnd() bool
}

var _ StreamReader = (*Reader)(nil)
