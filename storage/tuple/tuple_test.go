package tuple

import (
	"bytes"
	"io"
	"strings"
	"testing"

	testingpkg "github.com/ryogrid/toydbms/testing/testing_assert"
	"github.com/ryogrid/toydbms/types"
)

func TestTupleSerializeRoundTripsThroughStream(t *testing.T) {
	first := NewTuple([]types.Value{types.NewInteger(20), types.NewVarchar("hoge"), types.NewFloat(0.5), types.NewBoolean(true)})
	second := NewTuple([]types.Value{types.NewInteger(-1), types.NewNull(types.Varchar), types.NewFloat(2), types.NewBoolean(false)})

	buf := new(bytes.Buffer)
	testingpkg.Ok(t, first.SerializeTo(buf))
	testingpkg.Ok(t, second.SerializeTo(buf))

	got, err := DeserializeFrom(buf)
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, got.Equals(first), "first tuple differs: %v", got)

	got, err = DeserializeFrom(buf)
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, got.Equals(second), "second tuple differs: %v", got)
	testingpkg.Assert(t, got.GetValue(1).IsNull(), "null should survive serialization")

	_, err = DeserializeFrom(buf)
	testingpkg.Equals(t, io.EOF, err)
}

func TestTupleSerializeLongVarchar(t *testing.T) {
	long := strings.Repeat("x", 70000)
	tuple_ := NewTuple([]types.Value{types.NewVarchar(long), types.NewInteger(7)})
	serialized := tuple_.Serialize()
	testingpkg.Equals(t, TupleSizeOffsetInTmpFile+int(tuple_.Size()), len(serialized))

	got, err := DeserializeFrom(bytes.NewReader(serialized))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, long, got.GetValue(0).ToVarchar())
	testingpkg.Equals(t, int32(7), got.GetValue(1).ToInteger())
}

func TestTupleCompareTo(t *testing.T) {
	a := NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("b")})
	b := NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("c")})
	c := NewTuple([]types.Value{types.NewFloat(0.5), types.NewVarchar("z")})

	cmp, err := a.CompareTo(b)
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, cmp < 0, "a should be before b")

	cmp, err = a.CompareTo(c)
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, cmp > 0, "a should be after c")

	mismatched := NewTuple([]types.Value{types.NewVarchar("1"), types.NewVarchar("b")})
	_, err = a.CompareTo(mismatched)
	testingpkg.NotOk(t, err)
}

func TestTupleConcatAndProject(t *testing.T) {
	left := NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("x")})
	right := NewTuple([]types.Value{types.NewInteger(1), types.NewVarchar("p")})

	joined := NewTupleFromTuples(left, right)
	testingpkg.Equals(t, uint32(4), joined.GetValueCount())
	testingpkg.Equals(t, "(1, x, 1, p)", joined.String())

	projected := joined.Project([]uint32{3, 0})
	testingpkg.Equals(t, "(p, 1)", projected.String())
}
