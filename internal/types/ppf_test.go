package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeClass_String(t *testing.T) {
	tests := []struct {
		class    SizeClass
		expected string
	}{
		{SizeZone, "zone"},
		{SizeZoneBoundary, "zone-boundary"},
		{SizeRegion, "region"},
		{SizePhotonGroup, "photon-group"},
		{SizePhotonGroupBoundary, "photon-group-boundary"},
		{SizeScalar, "scalar"},
		{SizeClass(42), "size-class-42"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.class.String())
		})
	}
}

func TestErrorMessagesNameTheOffender(t *testing.T) {
	truncated := &TruncatedRecordError{Offset: 84, Want: 8, Remaining: 3}
	assert.Contains(t, truncated.Error(), "84")
	assert.Contains(t, truncated.Error(), "8")

	malformed := &MalformedNumberError{Offset: 96, Bits: 0x7ff8000000000001}
	assert.Contains(t, malformed.Error(), "96")
	assert.Contains(t, malformed.Error(), "7ff8000000000001")

	corrupt := &HeaderCorruptError{Field: "nzone", Reason: "zone count must be positive, got 0"}
	assert.Contains(t, corrupt.Error(), "nzone")

	unknown := &UnknownArrayError{Name: "XWIGGLE"}
	assert.Contains(t, unknown.Error(), "XWIGGLE")

	unresolved := &UnresolvedArraySizeError{Name: "PHGRPCEN", Class: SizePhotonGroup}
	assert.Contains(t, unresolved.Error(), "PHGRPCEN")
	assert.Contains(t, unresolved.Error(), "photon-group")
}

func TestErrorsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("decode run 42: %w", &UnknownArrayError{Name: "QLAS"})

	var unknown *UnknownArrayError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "QLAS", unknown.Name)
}

func TestProblemMetadata_RegionCount(t *testing.T) {
	meta := &ProblemMetadata{ZoneCount: 10, RegionBoundaries: []int{0, 4, 7}}
	assert.Equal(t, 3, meta.RegionCount())
}
