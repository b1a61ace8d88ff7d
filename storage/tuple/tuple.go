// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/types"
)

var TupleSizeOffsetInTmpFile = 4 // payload size info in Bytes

/**
 * Tuple is an ordered list of typed values
 *
 * Serialized format (spill files):
 * ---------------------------------------------------------------
 * | PAYLOAD SIZE (4) | TYPE (1) | VALUE | TYPE (1) | VALUE | ... |
 * ---------------------------------------------------------------
 */
type Tuple struct {
	values []types.Value
}

func NewTuple(values []types.Value) *Tuple {
	copied := make([]types.Value, len(values))
	copy(copied, values)
	return &Tuple{copied}
}

// NewTupleFromTuples concatenates the values of left and right
func NewTupleFromTuples(left *Tuple, right *Tuple) *Tuple {
	values := make([]types.Value, 0, len(left.values)+len(right.values))
	values = append(values, left.values...)
	values = append(values, right.values...)
	return &Tuple{values}
}

func (t *Tuple) GetValue(colIndex uint32) types.Value {
	return t.values[colIndex]
}

func (t *Tuple) GetValues() []types.Value {
	ret := make([]types.Value, len(t.values))
	copy(ret, t.values)
	return ret
}

func (t *Tuple) GetValueCount() uint32 {
	return uint32(len(t.values))
}

// Project returns a tuple made of the values at colIdxs in that order
func (t *Tuple) Project(colIdxs []uint32) *Tuple {
	values := make([]types.Value, 0, len(colIdxs))
	for _, idx := range colIdxs {
		values = append(values, t.values[idx])
	}
	return &Tuple{values}
}

// Size returns the serialized payload size in bytes
func (t *Tuple) Size() uint32 {
	size := uint32(0)
	for _, val := range t.values {
		size += 1 + val.Size()
	}
	return size
}

// Equals compares all values pairwise. tuples of different width are never equal.
func (t *Tuple) Equals(other *Tuple) bool {
	if len(t.values) != len(other.values) {
		return false
	}
	for ii := range t.values {
		if !t.values[ii].CompareEquals(other.values[ii]) {
			return false
		}
	}
	return true
}

// CompareTo orders tuples lexicographically over all values
func (t *Tuple) CompareTo(other *Tuple) (int, error) {
	width := len(t.values)
	if len(other.values) < width {
		width = len(other.values)
	}
	for ii := 0; ii < width; ii++ {
		cmp, err := t.values[ii].CompareTo(other.values[ii])
		if err != nil {
			return 0, err
		}
		if cmp != 0 {
			return cmp, nil
		}
	}
	return len(t.values) - len(other.values), nil
}

func (t *Tuple) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, t.Size())
	for _, val := range t.values {
		buf.WriteByte(byte(val.ValueType()))
		buf.Write(val.Serialize())
	}
	return buf.Bytes()
}

func (t *Tuple) SerializeTo(w io.Writer) error {
	_, err := w.Write(t.Serialize())
	return errors.Wrap(err, "tuple serialization failed")
}

// DeserializeFrom reads one tuple written by SerializeTo.
// io.EOF is returned as is when r is at its end before the tuple starts.
func DeserializeFrom(r io.Reader) (*Tuple, error) {
	sizeBuf := make([]byte, TupleSizeOffsetInTmpFile)
	if _, err := io.ReadFull(r, sizeBuf); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "tuple size read failed")
	}
	size := binary.LittleEndian.Uint32(sizeBuf)
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "tuple payload read failed")
	}

	values := make([]types.Value, 0)
	for offset := uint32(0); offset < size; {
		valueType := types.TypeID(data[offset])
		val, consumed, err := types.NewValueFromBytes(data[offset+1:], valueType)
		if err != nil {
			return nil, errors.Wrapf(err, "broken tuple at offset %d", offset)
		}
		values = append(values, val)
		offset += 1 + consumed
	}
	return &Tuple{values}, nil
}

func (t *Tuple) String() string {
	strs := make([]string, 0, len(t.values))
	for _, val := range t.values {
		strs = append(strs, val.String())
	}
	return "(" + strings.Join(strs, ", ") + ")"
}
