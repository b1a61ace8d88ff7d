package executors

import (
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/storage/tuple"
)

type ExecutionEngine struct {
}

// Execute runs plan and returns all of its rows
func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	consumer := NewCollectingConsumer(0)
	if err := e.ExecuteInto(plan, context, consumer); err != nil {
		return nil, err
	}
	return consumer.GetTuples(), nil
}

// ExecuteInto runs plan and hands its rows to consumer.
// the executor tree is always closed before returning.
func (e *ExecutionEngine) ExecuteInto(plan plans.Plan, context *ExecutorContext, consumer ResultConsumer) error {
	executor := e.CreateExecutor(plan, context)
	executor.Init()
	defer executor.Close()
	if common.EnableDebug {
		common.ShPrintf(common.DEBUGGING, "%s", ExecutorTreeString(executor))
	}

	err := Drain(executor, consumer)
	if err != nil {
		common.ShPrintf(common.ERROR, "execution of %s failed: %v\n", plan.GetDebugStr(), err)
	}
	return err
}

// CreateExecutor compiles the logical tree into an executor tree node by node
func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) Executor {
	switch p := plan.(type) {
	case *plans.CrossProductPlanNode:
		return NewCrossProductExecutor(context, p, e.CreateExecutor(p.GetLeft(), context), e.CreateExecutor(p.GetRight(), context))
	case *plans.JoinPlanNode:
		return NewJoinExecutor(context, p, e.CreateExecutor(p.GetLeft(), context), e.CreateExecutor(p.GetRight(), context))
	case *plans.ProjectionPlanNode:
		return NewProjectionExecutor(context, p, e.CreateExecutor(p.GetLeft(), context))
	case *plans.SelectionPlanNode:
		return NewSelectionExecutor(context, p)
	case *plans.UniquePlanNode:
		return NewUniqueExecutor(context, p, e.CreateExecutor(p.GetLeft(), context))
	}
	common.SH_Assertf(false, "unknown plan node: %T", plan)
	return nil
}
