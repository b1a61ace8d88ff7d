// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing_util

import (
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case int:
		value = types.NewInteger(int32(v))
	case int32:
		value = types.NewInteger(v)
	case float32:
		value = types.NewFloat(float32(v))
	case float64:
		value = types.NewFloat(float32(v))
	case string:
		value = types.NewVarchar(v)
	case bool:
		value = types.NewBoolean(v)
	case *types.Value:
		val := data.(*types.Value)
		return *val
	case types.Value:
		return v
	}
	return
}

func GetValueType(data interface{}) (value types.TypeID) {
	switch data.(type) {
	case int, int32:
		return types.Integer
	case float32, float64:
		return types.Float
	case string:
		return types.Varchar
	case bool:
		return types.Boolean
	case *types.Value:
		val := data.(*types.Value)
		return val.ValueType()
	case types.Value:
		return data.(types.Value).ValueType()
	}
	panic("not implemented")
}

// GetValues converts every element with GetValue
func GetValues(data ...interface{}) []types.Value {
	ret := make([]types.Value, 0, len(data))
	for _, d := range data {
		ret = append(ret, GetValue(d))
	}
	return ret
}

// MakeTuple builds a tuple from go values. e.g. MakeTuple(1, "x")
func MakeTuple(data ...interface{}) *tuple.Tuple {
	return tuple.NewTuple(GetValues(data...))
}

// TuplesToStrings renders tuples for comparison in assertions
func TuplesToStrings(tuples []*tuple.Tuple) []string {
	ret := make([]string, 0, len(tuples))
	for _, t := range tuples {
		ret = append(ret, t.String())
	}
	return ret
}
