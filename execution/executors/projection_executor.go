package executors

import (
	"strings"

	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/storage/tuple"
)

type ProjectionExecutor struct {
	*AbstractExecutor
	plan    *plans.ProjectionPlanNode
	colIdxs []uint32 // resolved once from the plan, not per row
}

func NewProjectionExecutor(context *ExecutorContext, plan *plans.ProjectionPlanNode, child Executor) Executor {
	return &ProjectionExecutor{newAbstractExecutor(context, plan, child), plan, plan.GetColIdxs()}
}

func (e *ProjectionExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.isDone() {
		return e.terminal()
	}
	e.state = stateStreaming

	t, done, err := e.children[0].Next()
	if err != nil {
		return e.finish(err)
	}
	if done {
		return e.finish(nil)
	}
	return t.Project(e.colIdxs), false, nil
}

func (e *ProjectionExecutor) GetDebugStr() string {
	return "ProjectionExecutor" + strings.TrimPrefix(e.plan.GetDebugStr(), "ProjectionPlanNode")
}
