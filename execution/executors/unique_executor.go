package executors

import (
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/storage/tuple"
	"golang.org/x/exp/slices"
)

/**
 * UniqueExecutor removes duplicated rows by comparing each row with the last emitted one.
 * When every child column carries a sort order, duplicates are already adjacent and rows
 * are streamed with O(1) extra state. Otherwise all child rows are buffered and stable
 * sorted first, which costs O(n) memory.
 */
type UniqueExecutor struct {
	*AbstractExecutor
	plan      *plans.UniquePlanNode
	streaming bool
	prev      *tuple.Tuple
}

func NewUniqueExecutor(context *ExecutorContext, plan *plans.UniquePlanNode, child Executor) Executor {
	streaming := child.GetOutputSchema().IsSortedOnAllColumns()
	return &UniqueExecutor{newAbstractExecutor(context, plan, child), plan, streaming, nil}
}

func (e *UniqueExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.isDone() {
		return e.terminal()
	}
	if e.state == stateInit {
		e.state = stateStreaming
		if !e.streaming {
			if err := e.sortChildRows(); err != nil {
				return e.finish(err)
			}
		}
	}

	for {
		t, done, err := e.nextCandidate()
		if err != nil {
			return e.finish(err)
		}
		if done {
			return e.finish(nil)
		}
		if e.prev == nil || !e.prev.Equals(t) {
			e.prev = t
			return t, false, nil
		}
	}
}

func (e *UniqueExecutor) nextCandidate() (*tuple.Tuple, Done, error) {
	if e.streaming {
		return e.children[0].Next()
	}
	if e.pos >= len(e.buffer) {
		return nil, true, nil
	}
	ret := e.buffer[e.pos]
	e.pos++
	return ret, false, nil
}

func (e *UniqueExecutor) sortChildRows() error {
	if err := e.drain(e.children[0]); err != nil {
		return err
	}
	var cmpErr error
	slices.SortStableFunc(e.buffer, func(a *tuple.Tuple, b *tuple.Tuple) int {
		cmp, err := a.CompareTo(b)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return cmp
	})
	common.ShPrintf(common.DEBUG_INFO, "UniqueExecutor: %d child rows sorted\n", len(e.buffer))
	return cmpErr
}

func (e *UniqueExecutor) Close() {
	e.AbstractExecutor.Close()
	e.prev = nil
}

func (e *UniqueExecutor) GetDebugStr() string {
	if e.streaming {
		return "UniqueExecutor [ streaming ]"
	}
	return "UniqueExecutor [ sorting ]"
}
