package executors

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/execution/expression"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/storage/table"
	"github.com/ryogrid/toydbms/storage/tuple"
)

// SelectionExecutor scans the base table of the plan and returns the rows
// on which every predicate holds
type SelectionExecutor struct {
	*AbstractExecutor
	plan     *plans.SelectionPlanNode
	it       *table.TableIterator
	predIter *expression.PredicateIterator
}

func NewSelectionExecutor(context *ExecutorContext, plan *plans.SelectionPlanNode) Executor {
	return &SelectionExecutor{newAbstractExecutor(context, plan), plan, nil, plan.NewPredicateIterator()}
}

func (e *SelectionExecutor) Init() {
	e.it = e.plan.GetTable().Iterator()
}

func (e *SelectionExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.isDone() {
		return e.terminal()
	}
	if e.state == stateInit {
		e.state = stateStreaming
		if e.it == nil {
			e.it = e.plan.GetTable().Iterator()
		}
	}

	schema_ := e.plan.GetTable().Schema()
	for t := e.it.Current(); t != nil; t = e.it.Next() {
		ok, err := e.predIter.EvaluateConjunction(t, schema_)
		if err != nil {
			return e.finish(errors.WithMessagef(err, "selection on %s", e.plan.GetTable().Name()))
		}
		if ok {
			e.it.Next()
			return t, false, nil
		}
	}
	return e.finish(nil)
}

func (e *SelectionExecutor) Close() {
	e.AbstractExecutor.Close()
	e.it = nil
}

func (e *SelectionExecutor) GetDebugStr() string {
	return "SelectionExecutor" + strings.TrimPrefix(e.plan.GetDebugStr(), "SelectionPlanNode")
}
