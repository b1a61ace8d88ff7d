package executors

import (
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/storage/tuple"
)

// CrossProductExecutor buffers every right row on the first pull and then
// pairs each left row with all of them. output is left-major.
type CrossProductExecutor struct {
	*AbstractExecutor
	plan    *plans.CrossProductPlanNode
	curLeft *tuple.Tuple
}

func NewCrossProductExecutor(context *ExecutorContext, plan *plans.CrossProductPlanNode, left Executor, right Executor) Executor {
	return &CrossProductExecutor{newAbstractExecutor(context, plan, left, right), plan, nil}
}

func (e *CrossProductExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.isDone() {
		return e.terminal()
	}
	left := e.children[0]
	right := e.children[1]

	if e.state == stateInit {
		e.state = stateStreaming
		if err := e.drain(right); err != nil {
			return e.finish(err)
		}
		common.ShPrintf(common.DEBUG_INFO, "CrossProductExecutor: %d right rows buffered\n", len(e.buffer))
		if len(e.buffer) == 0 {
			return e.finish(nil)
		}
		e.pos = len(e.buffer)
	}

	if e.pos >= len(e.buffer) {
		t, done, err := left.Next()
		if err != nil {
			return e.finish(err)
		}
		if done {
			return e.finish(nil)
		}
		e.curLeft = t
		e.pos = 0
	}
	ret := tuple.NewTupleFromTuples(e.curLeft, e.buffer[e.pos])
	e.pos++
	return ret, false, nil
}

func (e *CrossProductExecutor) Close() {
	e.AbstractExecutor.Close()
	e.curLeft = nil
}
