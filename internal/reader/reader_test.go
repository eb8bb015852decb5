package reader

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/heliosim/ppf-tool/internal/types"
)

// ReaderTestSuite exercises the sequential binary cursor.
type ReaderTestSuite struct {
	suite.Suite
}

func (suite *ReaderTestSuite) TestReadInt32() {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], 250)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(0xffffffff)) // -1

	r := New(buf)

	v, err := r.ReadInt32()
	suite.Require().NoError(err)
	suite.Assert().Equal(int32(250), v)
	suite.Assert().Equal(int64(4), r.Position())

	v, err = r.ReadInt32()
	suite.Require().NoError(err)
	suite.Assert().Equal(int32(-1), v)
	suite.Assert().True(r.AtEnd())
}

func (suite *ReaderTestSuite) TestReadInt64() {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, 1<<40)

	r := New(buf)
	v, err := r.ReadInt64()
	suite.Require().NoError(err)
	suite.Assert().Equal(int64(1<<40), v)
}

func (suite *ReaderTestSuite) TestReadFloat64() {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(1.5e-9))

	r := New(buf)
	v, err := r.ReadFloat64()
	suite.Require().NoError(err)
	suite.Assert().Equal(1.5e-9, v)
	suite.Assert().Equal(int64(8), r.Position())
}

func (suite *ReaderTestSuite) TestReadFloat32() {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(0.25))

	r := New(buf)
	v, err := r.ReadFloat32()
	suite.Require().NoError(err)
	suite.Assert().Equal(float32(0.25), v)
}

func (suite *ReaderTestSuite) TestReadFixedText() {
	r := New([]byte("PRES    RHO     "))

	name, err := r.ReadFixedText(8)
	suite.Require().NoError(err)
	suite.Assert().Equal("PRES", name)

	name, err = r.ReadFixedText(8)
	suite.Require().NoError(err)
	suite.Assert().Equal("RHO", name)
	suite.Assert().True(r.AtEnd())
}

func (suite *ReaderTestSuite) TestReadFixedTextTrimsNulPadding() {
	r := New([]byte{'T', 'E', 0, 0})
	name, err := r.ReadFixedText(4)
	suite.Require().NoError(err)
	suite.Assert().Equal("TE", name)
}

func (suite *ReaderTestSuite) TestReadFloat64Array() {
	values := []float64{1.0, 2.0, 3.0}
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}

	r := New(buf)
	got, err := r.ReadFloat64Array(3)
	suite.Require().NoError(err)
	suite.Assert().Equal(values, got)
	suite.Assert().True(r.AtEnd())
}

func (suite *ReaderTestSuite) TestTruncatedInt() {
	r := New([]byte{0x01, 0x02})

	_, err := r.ReadInt32()
	suite.Require().Error(err)

	var truncated *types.TruncatedRecordError
	suite.Require().True(errors.As(err, &truncated))
	suite.Assert().Equal(int64(0), truncated.Offset)
	suite.Assert().Equal(4, truncated.Want)
	suite.Assert().Equal(2, truncated.Remaining)

	// Cursor must not advance on failure.
	suite.Assert().Equal(int64(0), r.Position())
}

func (suite *ReaderTestSuite) TestTruncatedArrayReportsOffset() {
	buf := make([]byte, 12) // one full float plus half of another
	binary.LittleEndian.PutUint64(buf, math.Float64bits(7.0))

	r := New(buf)
	_, err := r.ReadFloat64Array(2)
	suite.Require().Error(err)

	var truncated *types.TruncatedRecordError
	suite.Require().True(errors.As(err, &truncated))
	suite.Assert().Equal(int64(8), truncated.Offset)
	suite.Assert().Equal(4, truncated.Remaining)
}

func (suite *ReaderTestSuite) TestMalformedFloat64() {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(math.NaN()))

	r := New(buf)
	_, err := r.ReadFloat64()
	suite.Require().Error(err)

	var malformed *types.MalformedNumberError
	suite.Require().True(errors.As(err, &malformed))
	suite.Assert().Equal(int64(0), malformed.Offset)
	suite.Assert().Equal(int64(0), r.Position())
}

func (suite *ReaderTestSuite) TestMalformedFloat64Infinity() {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(math.Inf(-1)))

	r := New(buf)
	_, err := r.ReadFloat64()
	var malformed *types.MalformedNumberError
	suite.Require().True(errors.As(err, &malformed))
}

func (suite *ReaderTestSuite) TestMalformedFloat32() {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(math.Inf(1))))

	r := New(buf)
	_, err := r.ReadFloat32()
	var malformed *types.MalformedNumberError
	suite.Require().True(errors.As(err, &malformed))
}

func (suite *ReaderTestSuite) TestLargeMagnitudeFloatIsValid() {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(math.MaxFloat64))

	r := New(buf)
	v, err := r.ReadFloat64()
	suite.Require().NoError(err)
	suite.Assert().Equal(math.MaxFloat64, v)
}

func (suite *ReaderTestSuite) TestEmptyStream() {
	r := New(nil)
	suite.Assert().True(r.AtEnd())
	suite.Assert().Equal(0, r.Remaining())

	_, err := r.ReadFixedText(1)
	var truncated *types.TruncatedRecordError
	suite.Require().True(errors.As(err, &truncated))
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}
