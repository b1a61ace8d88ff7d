// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

/**
 * ColumnValue refers to a column by its qualified name ("Table.Attribute").
 * The name is resolved against the schema the expression is evaluated with.
 */
type ColumnValue struct {
	*AbstractExpression
	colName string
}

func NewColumnValue(colName string) Expression {
	return &ColumnValue{&AbstractExpression{}, colName}
}

func (c *ColumnValue) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) (types.Value, error) {
	colIndex, err := schema_.GetColIndex(c.colName)
	if err != nil {
		return types.Value{}, err
	}
	return tuple_.GetValue(colIndex), nil
}

func (c *ColumnValue) GetColumnName() string {
	return c.colName
}

func (c *ColumnValue) GetType() ExpressionType {
	return EXPRESSION_TYPE_COLUMN_VALUE
}

func (c *ColumnValue) String() string {
	return c.colName
}
