// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

type ComparisonType int

/** ComparisonType represents the type of comparison that we want to perform. */
const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan        // A > B
	GreaterThanOrEqual // A >= B
	LessThan           // A < B
	LessThanOrEqual    // A <= B
)

func (t ComparisonType) String() string {
	switch t {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	}
	return "?"
}

/**
 * Comparison represents two expressions being compared.
 * A comparison involving NULL is false.
 */
type Comparison struct {
	*AbstractExpression
	comparisonType ComparisonType
}

func NewComparison(left Expression, right Expression, comparisonType ComparisonType) Expression {
	return NewComparisonAsComparison(left, right, comparisonType)
}

func NewComparisonAsComparison(left Expression, right Expression, comparisonType ComparisonType) *Comparison {
	return &Comparison{&AbstractExpression{[2]Expression{left, right}}, comparisonType}
}

func (c *Comparison) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) (types.Value, error) {
	lhs, err := c.children[0].Evaluate(tuple_, schema_)
	if err != nil {
		return types.Value{}, err
	}
	rhs, err := c.children[1].Evaluate(tuple_, schema_)
	if err != nil {
		return types.Value{}, err
	}
	if err := types.CheckComparable(lhs.ValueType(), rhs.ValueType()); err != nil {
		return types.Value{}, errors.WithMessagef(err, "evaluating %s", c)
	}
	return types.NewBoolean(c.performComparison(lhs, rhs)), nil
}

func (c *Comparison) performComparison(lhs types.Value, rhs types.Value) bool {
	if lhs.IsNull() || rhs.IsNull() {
		return false
	}
	switch c.comparisonType {
	case Equal:
		return lhs.CompareEquals(rhs)
	case NotEqual:
		return lhs.CompareNotEquals(rhs)
	case GreaterThan:
		return lhs.CompareGreaterThan(rhs)
	case GreaterThanOrEqual:
		return lhs.CompareGreaterThanOrEqual(rhs)
	case LessThan:
		return lhs.CompareLessThan(rhs)
	case LessThanOrEqual:
		return lhs.CompareLessThanOrEqual(rhs)
	default:
		panic("illegal comparisonType is passed!")
	}
}

func (c *Comparison) GetType() ExpressionType {
	return EXPRESSION_TYPE_COMPARISON
}

func (c *Comparison) String() string {
	return c.children[0].String() + " " + c.comparisonType.String() + " " + c.children[1].String()
}
