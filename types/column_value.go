// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// A value is an class that represents a view over SQL data stored in
// some materialized state. All values have a type and comparison functions,
// and implement other type-specific functionality.
type Value struct {
	valueType TypeID
	isNull    bool
	integer   int32
	boolean   bool
	varchar   string
	float     float32
}

func NewInteger(value int32) Value {
	return Value{valueType: Integer, integer: value}
}

func NewFloat(value float32) Value {
	return Value{valueType: Float, float: value}
}

func NewBoolean(value bool) Value {
	return Value{valueType: Boolean, boolean: value}
}

func NewVarchar(value string) Value {
	return Value{valueType: Varchar, varchar: value}
}

// NewNull is the only way to get Value object which has NULL value
func NewNull(valueType TypeID) Value {
	return Value{valueType: valueType, isNull: true}
}

// NewValueFromString parses a token of a table data file as a value of valueType
func NewValueFromString(token string, valueType TypeID) (Value, error) {
	switch valueType {
	case Integer:
		v, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return Value{}, errors.Wrapf(err, "%q is not an integer", token)
		}
		return NewInteger(int32(v)), nil
	case Float:
		v, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return Value{}, errors.Wrapf(err, "%q is not a float", token)
		}
		return NewFloat(float32(v)), nil
	case Boolean:
		v, err := strconv.ParseBool(token)
		if err != nil {
			return Value{}, errors.Wrapf(err, "%q is not a boolean", token)
		}
		return NewBoolean(v), nil
	case Varchar:
		return NewVarchar(token), nil
	}
	return Value{}, errors.Errorf("can not parse a value of type %s", valueType)
}

// NewValueFromBytes is used for deserialization.
// it returns the value and the count of bytes consumed from data.
func NewValueFromBytes(data []byte, valueType TypeID) (Value, uint32, error) {
	if uint32(len(data)) < 1 {
		return Value{}, 0, errors.New("no data for value")
	}
	isNull := data[0] != 0
	var ret Value
	var size uint32
	switch valueType {
	case Integer:
		if len(data) < int(Integer.Size()) {
			return Value{}, 0, errors.New("short buffer for integer")
		}
		ret = NewInteger(int32(binary.LittleEndian.Uint32(data[1:5])))
		size = Integer.Size()
	case Float:
		if len(data) < int(Float.Size()) {
			return Value{}, 0, errors.New("short buffer for float")
		}
		ret = NewFloat(math.Float32frombits(binary.LittleEndian.Uint32(data[1:5])))
		size = Float.Size()
	case Boolean:
		if len(data) < int(Boolean.Size()) {
			return Value{}, 0, errors.New("short buffer for boolean")
		}
		ret = NewBoolean(data[1] != 0)
		size = Boolean.Size()
	case Varchar:
		if len(data) < 1+4 {
			return Value{}, 0, errors.New("short buffer for varchar length")
		}
		length := binary.LittleEndian.Uint32(data[1:5])
		if uint64(len(data)) < 1+4+uint64(length) {
			return Value{}, 0, errors.New("short buffer for varchar")
		}
		ret = NewVarchar(string(data[1+4 : 1+4+length]))
		size = 1 + 4 + length
	default:
		return Value{}, 0, errors.Errorf("%v is illegal", valueType)
	}
	if isNull {
		ret = NewNull(valueType)
	}
	return ret, size, nil
}

func (v Value) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, v.isNull)
	switch v.valueType {
	case Integer:
		binary.Write(buf, binary.LittleEndian, v.integer)
	case Float:
		binary.Write(buf, binary.LittleEndian, v.float)
	case Varchar:
		binary.Write(buf, binary.LittleEndian, uint32(len(v.varchar)))
		buf.WriteString(v.varchar)
	case Boolean:
		binary.Write(buf, binary.LittleEndian, v.boolean)
	}
	return buf.Bytes()
}

// Size returns the size in bytes that the value occupies when serialized
func (v Value) Size() uint32 {
	switch v.valueType {
	case Integer, Float, Boolean:
		return v.valueType.Size()
	case Varchar:
		return uint32(len(v.varchar)) + 1 + 4 // varchar occupies the size of the string + 4 bytes for length storage
	}
	panic("not implemented")
}

// CompareTo orders v against right: negative when v < right, 0 when equal, positive otherwise.
// NULL is ordered before any non-NULL value and is equal to NULL.
func (v Value) CompareTo(right Value) (int, error) {
	if err := CheckComparable(v.valueType, right.valueType); err != nil {
		return 0, err
	}
	return v.compare(right), nil
}

// compare assumes the types were checked by the caller
func (v Value) compare(right Value) int {
	if v.IsNull() || right.IsNull() {
		switch {
		case v.IsNull() && right.IsNull():
			return 0
		case v.IsNull():
			return -1
		default:
			return 1
		}
	}

	if v.valueType.IsNumeric() {
		if v.valueType == Integer && right.valueType == Integer {
			return compareOrdered(v.integer, right.integer)
		}
		return compareFloat(v.ToFloat64(), right.ToFloat64())
	}

	switch v.valueType {
	case Varchar:
		return compareOrdered(v.varchar, right.varchar)
	case Boolean:
		if v.boolean == right.boolean {
			return 0
		} else if !v.boolean {
			return -1
		}
		return 1
	}
	panic("illegal valueType is passed!")
}

func compareOrdered[T int32 | float64 | string](l T, r T) int {
	if l < r {
		return -1
	} else if l > r {
		return 1
	}
	return 0
}

// compareFloat orders NaN after every other number and equal to NaN,
// so that floats have a total order
func compareFloat(l float64, r float64) int {
	lNaN, rNaN := math.IsNaN(l), math.IsNaN(r)
	switch {
	case lNaN && rNaN:
		return 0
	case lNaN:
		return 1
	case rNaN:
		return -1
	}
	return compareOrdered(l, r)
}

func (v Value) CompareEquals(right Value) bool {
	return IsComparable(v.valueType, right.valueType) && v.compare(right) == 0
}

func (v Value) CompareNotEquals(right Value) bool {
	return IsComparable(v.valueType, right.valueType) && v.compare(right) != 0
}

func (v Value) CompareGreaterThan(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return IsComparable(v.valueType, right.valueType) && v.compare(right) > 0
}

func (v Value) CompareGreaterThanOrEqual(right Value) bool {
	return IsComparable(v.valueType, right.valueType) && v.compare(right) >= 0
}

func (v Value) CompareLessThan(right Value) bool {
	if v.IsNull() || right.IsNull() {
		return false
	}
	return IsComparable(v.valueType, right.valueType) && v.compare(right) < 0
}

func (v Value) CompareLessThanOrEqual(right Value) bool {
	return IsComparable(v.valueType, right.valueType) && v.compare(right) <= 0
}

// if you use this to get column value
// NULL value check is needed in general
func (v Value) ToBoolean() bool {
	return v.boolean
}

// if you use this to get column value
// NULL value check is needed in general
func (v Value) ToInteger() int32 {
	return v.integer
}

// if you use this to get column value
// NULL value check is needed in general
func (v Value) ToFloat() float32 {
	return v.float
}

// ToFloat64 widens a numeric value. integers are exactly representable.
func (v Value) ToFloat64() float64 {
	if v.valueType == Integer {
		return float64(v.integer)
	}
	return float64(v.float)
}

// if you use this to get column value
// NULL value check is needed in general
func (v Value) ToVarchar() string {
	return v.varchar
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

func (v Value) IsNull() bool {
	return v.isNull
}

func (v Value) String() string {
	if v.IsNull() {
		return "NULL"
	}
	switch v.valueType {
	case Integer:
		return strconv.FormatInt(int64(v.integer), 10)
	case Float:
		return strconv.FormatFloat(float64(v.float), 'g', -1, 32)
	case Varchar:
		return v.varchar
	case Boolean:
		return strconv.FormatBool(v.boolean)
	}
	return "<invalid>"
}
