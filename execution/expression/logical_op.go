package expression

import (
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

type LogicalOpType int

/** LogicalOpType represents the type of logical operation that we want to perform. */
const (
	AND LogicalOpType = iota
	OR
	NOT
)

/**
 * LogicalOp represents two expressions or one expression being evaluated with logical operator.
 */
type LogicalOp struct {
	*AbstractExpression
	logicalOpType LogicalOpType
}

// if logicalOpType is "NOT", right value must be nil
func NewLogicalOp(left Expression, right Expression, logicalOpType LogicalOpType) Expression {
	return &LogicalOp{&AbstractExpression{[2]Expression{left, right}}, logicalOpType}
}

func (c *LogicalOp) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) (types.Value, error) {
	lhs, err := evaluateBoolean(c.children[0], tuple_, schema_)
	if err != nil {
		return types.Value{}, err
	}
	switch c.logicalOpType {
	case NOT:
		return types.NewBoolean(!lhs), nil
	case AND:
		if !lhs {
			return types.NewBoolean(false), nil
		}
	case OR:
		if lhs {
			return types.NewBoolean(true), nil
		}
	default:
		panic("unknown logicalOpType is passed!")
	}
	rhs, err := evaluateBoolean(c.children[1], tuple_, schema_)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewBoolean(rhs), nil
}

func evaluateBoolean(exp Expression, tuple_ *tuple.Tuple, schema_ *schema.Schema) (bool, error) {
	val, err := exp.Evaluate(tuple_, schema_)
	if err != nil {
		return false, err
	}
	if val.ValueType() != types.Boolean {
		return false, errors.WithMessagef(&types.TypeMismatchError{Left: types.Boolean, Right: val.ValueType()},
			"%s is not a condition", exp)
	}
	return !val.IsNull() && val.ToBoolean(), nil
}

func (c *LogicalOp) GetType() ExpressionType {
	return EXPRESSION_TYPE_LOGICAL_OP
}

func (c *LogicalOp) String() string {
	switch c.logicalOpType {
	case NOT:
		return "NOT (" + c.children[0].String() + ")"
	case OR:
		return "(" + c.children[0].String() + " OR " + c.children[1].String() + ")"
	}
	return "(" + c.children[0].String() + " AND " + c.children[1].String() + ")"
}

// AppendLogicalCondition combines baseConds and addCond. a nil baseConds yields addCond
func AppendLogicalCondition(baseConds Expression, opType LogicalOpType, addCond Expression) Expression {
	if baseConds == nil {
		return addCond
	}
	return NewLogicalOp(baseConds, addCond, opType)
}
