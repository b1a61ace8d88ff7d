// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

type ConstantValue struct {
	*AbstractExpression
	value types.Value
}

func NewConstantValue(value types.Value) Expression {
	return &ConstantValue{&AbstractExpression{}, value}
}

func (c *ConstantValue) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) (types.Value, error) {
	return c.value, nil
}

func (c *ConstantValue) GetValue() types.Value {
	return c.value
}

func (c *ConstantValue) GetType() ExpressionType {
	return EXPRESSION_TYPE_CONSTANT_VALUE
}

func (c *ConstantValue) String() string {
	if c.value.ValueType() == types.Varchar && !c.value.IsNull() {
		return "'" + c.value.ToVarchar() + "'"
	}
	return c.value.String()
}
