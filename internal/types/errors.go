package types

import "fmt"

// TruncatedRecordError reports that the byte stream ended in the middle
// of a primitive value. It is always fatal to the in-progress load.
type TruncatedRecordError struct {
	Offset    int64 // byte offset where the read started
	Want      int   // bytes needed
	Remaining int   // bytes actually available
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("truncated record at byte %d: need %d bytes, %d remain",
		e.Offset, e.Want, e.Remaining)
}

// MalformedNumberError reports a floating-point encoding the format
// reserves (IEEE-754 Inf/NaN bit patterns).
type MalformedNumberError struct {
	Offset int64
	Bits   uint64
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number at byte %d: reserved encoding 0x%016x",
		e.Offset, e.Bits)
}

// HeaderCorruptError reports a header field outside its structurally
// valid range.
type HeaderCorruptError struct {
	Field  string
	Reason string
}

func (e *HeaderCorruptError) Error() string {
	return fmt.Sprintf("corrupt header: field %s: %s", e.Field, e.Reason)
}

// UnknownArrayError reports an array name with no registered size rule.
// During decode it aborts the load; during query it is local to the call.
type UnknownArrayError struct {
	Name string
}

func (e *UnknownArrayError) Error() string {
	return fmt.Sprintf("unknown array %q: no size rule registered", e.Name)
}

// UnresolvedArraySizeError reports an array whose extent depends on
// metadata the header does not supply, such as photon-group quantities
// in a file written without a group count.
type UnresolvedArraySizeError struct {
	Name  string
	Class SizeClass
}

func (e *UnresolvedArraySizeError) Error() string {
	return fmt.Sprintf("cannot resolve size of array %q: %s extent not derivable from header metadata",
		e.Name, e.Class)
}

// EmptyCatalogError reports a time query against a catalog holding zero
// dumps.
type EmptyCatalogError struct{}

func (e *EmptyCatalogError) Error() string {
	return "catalog holds no dumps"
}
