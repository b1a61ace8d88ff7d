package plans

import (
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/execution/expression"
	"github.com/ryogrid/toydbms/storage/table"
)

// SelectionPlanNode is a leaf which reads a base table and keeps the rows
// satisfying all of its predicates. the table is borrowed, never modified.
type SelectionPlanNode struct {
	*AbstractPlanNode
	table      *table.BaseTable
	predicates []expression.Expression
	predIter   *expression.PredicateIterator
}

func NewSelectionPlanNode(table_ *table.BaseTable, predicates []expression.Expression) (*SelectionPlanNode, error) {
	common.SH_Assert(table_ != nil, "selection needs a table")
	for _, pred := range predicates {
		if pred == nil {
			return nil, errors.Errorf("nil predicate on table %s", table_.Name())
		}
		if err := expression.ValidateColumnReferences(pred, table_.Schema()); err != nil {
			return nil, errors.WithMessagef(err, "predicate %s on table %s", pred, table_.Name())
		}
	}
	copied := make([]expression.Expression, len(predicates))
	copy(copied, predicates)
	return &SelectionPlanNode{&AbstractPlanNode{table_.Schema(), nil}, table_, copied,
		expression.NewPredicateIterator(copied)}, nil
}

func (p *SelectionPlanNode) GetType() PlanType {
	return Selection
}

func (p *SelectionPlanNode) GetTable() *table.BaseTable {
	return p.table
}

// NextPredicate walks the node's own predicate cursor.
// when the returned flag is true the sequence is exhausted and the predicate is nil.
func (p *SelectionPlanNode) NextPredicate() (bool, expression.Expression) {
	return p.predIter.Next()
}

// ResetIterator rewinds the node's predicate cursor
func (p *SelectionPlanNode) ResetIterator() {
	p.predIter.Reset()
}

// NewPredicateIterator returns an independent cursor over the predicates.
// executors use this so that evaluation state stays out of the plan.
func (p *SelectionPlanNode) NewPredicateIterator() *expression.PredicateIterator {
	return expression.NewPredicateIterator(p.predicates)
}

func (p *SelectionPlanNode) GetDebugStr() string {
	ret := "SelectionPlanNode [ " + p.table.Name()
	if len(p.predicates) > 0 {
		ret += " " + expression.GetExpTreeStr(expression.Conjunction(p.predicates))
	}
	return ret + " ]"
}
