// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

type ExpressionType int

const (
	EXPRESSION_TYPE_COMPARISON ExpressionType = iota
	EXPRESSION_TYPE_COLUMN_VALUE
	EXPRESSION_TYPE_CONSTANT_VALUE
	EXPRESSION_TYPE_LOGICAL_OP
)

/**
 * Expression interface is the base of all the expressions in the system.
 * Expressions are modeled as trees, i.e. every expression may have a variable number of children.
 */
type Expression interface {
	// Evaluate computes the value of the expression over a tuple laid out as schema describes
	Evaluate(*tuple.Tuple, *schema.Schema) (types.Value, error)
	// GetChildAt returns nil when there is no child at the index
	GetChildAt(uint32) Expression
	GetType() ExpressionType
	String() string
}
