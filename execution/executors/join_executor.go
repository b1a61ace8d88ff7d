package executors

import (
	"fmt"

	"github.com/golang-collections/collections/queue"
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/container/hash"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/materialization"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

/**
 * JoinExecutor executes an equi-join holding at most memoryLimit left (build side) rows.
 *
 * When both key columns are sorted the same way, a sort-merge join is performed and only
 * the current equal-key group of the left child is buffered. Output is ordered by the right
 * rows and, for one right row, by the order of the buffered group.
 *
 * Otherwise both children are spilled to temporary files. The left file is then read in
 * windows of at most memoryLimit rows which are put into a hash table, and the right file
 * is scanned once per window to probe it.
 *
 * In both cases an equal-key group of the left child larger than memoryLimit makes the
 * join fail with ErrJoinMemoryExceeded. Rows with a NULL key never match.
 */
type JoinExecutor struct {
	*AbstractExecutor
	plan        *plans.JoinPlanNode
	leftKeyIdx  uint32
	rightKeyIdx uint32
	memoryLimit uint32

	// sort-merge
	direction int // 1 for ascending keys, -1 for descending keys
	groupKey  *types.Value
	lookahead *tuple.Tuple // first left row after the buffered group
	leftEnd   bool
	curRight  *tuple.Tuple
	matching  bool
	runKey    *types.Value // key of the left run being skipped
	runLen    uint32

	// block-hash
	leftFile   *materialization.TmpTupleFile
	rightFile  *materialization.TmpTupleFile
	window     *hash.LinearProbeHashTable
	rightEnd   bool
	pending    *queue.Queue
	windowsCnt int
}

func NewJoinExecutor(context *ExecutorContext, plan *plans.JoinPlanNode, left Executor, right Executor) Executor {
	keys := plan.KeyIndexes()
	direction := 1
	if left.GetOutputSchema().GetColumn(keys.First).GetSortOrder() == types.Descending {
		direction = -1
	}
	return &JoinExecutor{
		AbstractExecutor: newAbstractExecutor(context, plan, left, right),
		plan:             plan,
		leftKeyIdx:       keys.First,
		rightKeyIdx:      keys.Second,
		memoryLimit:      plan.GetMemoryLimit(),
		direction:        direction,
		pending:          queue.New(),
	}
}

func (e *JoinExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.isDone() {
		return e.terminal()
	}
	if e.state == stateInit {
		e.state = stateStreaming
		if err := e.checkKeyTypes(); err != nil {
			return e.finish(err)
		}
		if e.plan.IsMergeJoinable() {
			common.ShPrintf(common.DEBUG_INFO, "JoinExecutor: sort-merge join on %s = %s\n", e.plan.GetLeftOffset(), e.plan.GetRightOffset())
		} else {
			common.ShPrintf(common.DEBUG_INFO, "JoinExecutor: block-hash join on %s = %s\n", e.plan.GetLeftOffset(), e.plan.GetRightOffset())
			if err := e.spill(); err != nil {
				return e.finish(err)
			}
		}
	}

	var ret *tuple.Tuple
	var err error
	if e.plan.IsMergeJoinable() {
		ret, err = e.nextMerge()
	} else {
		ret, err = e.nextBlockHash()
	}
	if err != nil {
		return e.finish(err)
	}
	if ret == nil {
		return e.finish(nil)
	}
	return ret, false, nil
}

func (e *JoinExecutor) checkKeyTypes() error {
	leftType := e.children[0].GetOutputSchema().GetColumn(e.leftKeyIdx).GetType()
	rightType := e.children[1].GetOutputSchema().GetColumn(e.rightKeyIdx).GetType()
	return errors.WithMessagef(types.CheckComparable(leftType, rightType),
		"join on %s = %s", e.plan.GetLeftOffset(), e.plan.GetRightOffset())
}

func (e *JoinExecutor) memoryExceeded(key types.Value) error {
	common.ShPrintf(common.WARN, "JoinExecutor: key %s has more than %d rows on the left side\n", key, e.memoryLimit)
	return errors.WithMessagef(ErrJoinMemoryExceeded, "key %s of %s has more than %d rows",
		key, e.plan.GetLeftOffset(), e.memoryLimit)
}

// compareKeys compares in the direction the keys are sorted in.
// the key types are checked before, so comparison can not fail.
func (e *JoinExecutor) compareKeys(l types.Value, r types.Value) int {
	cmp, _ := l.CompareTo(r)
	return cmp * e.direction
}

// sort-merge

func (e *JoinExecutor) nextMerge() (*tuple.Tuple, error) {
	for {
		if e.curRight != nil && e.matching && e.pos < len(e.buffer) {
			ret := tuple.NewTupleFromTuples(e.buffer[e.pos], e.curRight)
			e.pos++
			return ret, nil
		}

		right, done, err := e.children[1].Next()
		if err != nil {
			return nil, err
		}
		if done {
			// groups which no right row reached must still respect the limit
			return nil, e.checkRestOfLeft()
		}
		e.curRight = right
		e.matching = false
		e.pos = 0
		rightKey := right.GetValue(e.rightKeyIdx)
		if rightKey.IsNull() {
			continue
		}

		if e.groupKey == nil || e.compareKeys(rightKey, *e.groupKey) > 0 {
			if err := e.loadGroup(rightKey); err != nil {
				return nil, err
			}
			if e.groupKey == nil {
				// left child is exhausted. no more matches
				return nil, nil
			}
		}
		e.matching = e.compareKeys(rightKey, *e.groupKey) == 0
	}
}

// nextLeft returns the next left row with a non NULL key. nil at the end
func (e *JoinExecutor) nextLeft() (*tuple.Tuple, error) {
	if e.lookahead != nil {
		ret := e.lookahead
		e.lookahead = nil
		return ret, nil
	}
	for !e.leftEnd {
		t, done, err := e.children[0].Next()
		if err != nil {
			return nil, err
		}
		if done {
			e.leftEnd = true
			break
		}
		if !t.GetValue(e.leftKeyIdx).IsNull() {
			return t, nil
		}
	}
	return nil, nil
}

// skipLeft consumes a left row without buffering it but still counts its run length
func (e *JoinExecutor) skipLeft(t *tuple.Tuple) error {
	key := t.GetValue(e.leftKeyIdx)
	if e.runKey != nil && key.CompareEquals(*e.runKey) {
		e.runLen++
	} else {
		e.runKey = &key
		e.runLen = 1
	}
	if e.runLen > e.memoryLimit {
		return e.memoryExceeded(key)
	}
	return nil
}

// loadGroup replaces the buffered group with the first left group whose key is
// not less than key in the sort direction
func (e *JoinExecutor) loadGroup(key types.Value) error {
	e.buffer = e.buffer[:0]
	e.groupKey = nil

	for {
		t, err := e.nextLeft()
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		leftKey := t.GetValue(e.leftKeyIdx)
		if e.compareKeys(leftKey, key) < 0 {
			if err := e.skipLeft(t); err != nil {
				return err
			}
			continue
		}
		e.groupKey = &leftKey
		e.buffer = append(e.buffer, t)
		break
	}

	for {
		t, err := e.nextLeft()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		if !t.GetValue(e.leftKeyIdx).CompareEquals(*e.groupKey) {
			e.lookahead = t
			break
		}
		if uint32(len(e.buffer)) >= e.memoryLimit {
			return e.memoryExceeded(*e.groupKey)
		}
		e.buffer = append(e.buffer, t)
	}
	e.runKey = nil
	e.runLen = 0
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "JoinExecutor: group of key %s buffered: %d rows\n", *e.groupKey, len(e.buffer))
	return nil
}

func (e *JoinExecutor) checkRestOfLeft() error {
	e.buffer = e.buffer[:0]
	for {
		t, err := e.nextLeft()
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		if err := e.skipLeft(t); err != nil {
			return err
		}
	}
}

// block-hash

// spill writes both children to temporary files. left rows are counted per key
// so that a too large group is reported before any row is returned.
func (e *JoinExecutor) spill() error {
	tfm := e.context.GetTmpFileManager()
	var err error
	if e.leftFile, err = tfm.NewTmpTupleFile(); err != nil {
		return err
	}
	if e.rightFile, err = tfm.NewTmpTupleFile(); err != nil {
		return err
	}

	counter := hash.NewValueCounter()
	err = e.spillChild(e.children[0], e.leftKeyIdx, e.leftFile, func(key types.Value) error {
		if counter.Increment(key) > e.memoryLimit {
			return e.memoryExceeded(key)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.spillChild(e.children[1], e.rightKeyIdx, e.rightFile, nil); err != nil {
		return err
	}
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "JoinExecutor: spilled %d left rows (%d bytes) and %d right rows (%d bytes) in memory=%v\n",
		e.leftFile.Count(), e.leftFile.Size(), e.rightFile.Count(), e.rightFile.Size(), tfm.IsVirtual())

	if err := e.leftFile.Rewind(); err != nil {
		return err
	}
	e.window = hash.NewLinearProbeHashTable(e.memoryLimit)
	// no window loaded yet
	e.rightEnd = true
	return nil
}

func (e *JoinExecutor) spillChild(child Executor, keyIdx uint32, file *materialization.TmpTupleFile, onKey func(types.Value) error) error {
	for {
		t, done, err := child.Next()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		key := t.GetValue(keyIdx)
		if key.IsNull() {
			continue
		}
		if onKey != nil {
			if err := onKey(key); err != nil {
				return err
			}
		}
		if err := file.Append(t); err != nil {
			return err
		}
	}
}

// loadWindow reads the next memoryLimit left rows into the hash table.
// it returns false when the left file is exhausted.
func (e *JoinExecutor) loadWindow() (bool, error) {
	e.window.Clear()
	e.buffer = e.buffer[:0]
	for !e.window.IsFull() {
		t, err := e.leftFile.Next()
		if err != nil {
			return false, err
		}
		if t == nil {
			break
		}
		if err := e.window.Insert(t.GetValue(e.leftKeyIdx), t); err != nil {
			return false, err
		}
		e.buffer = append(e.buffer, t)
	}
	if e.window.Count() == 0 {
		return false, nil
	}
	e.windowsCnt++
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "JoinExecutor: window %d loaded: %d rows\n", e.windowsCnt, e.window.Count())
	return true, e.rightFile.Rewind()
}

func (e *JoinExecutor) nextBlockHash() (*tuple.Tuple, error) {
	for {
		if e.pending.Len() > 0 {
			return e.pending.Dequeue().(*tuple.Tuple), nil
		}
		if e.rightEnd {
			loaded, err := e.loadWindow()
			if err != nil {
				return nil, err
			}
			if !loaded {
				return nil, nil
			}
			e.rightEnd = false
		}

		right, err := e.rightFile.Next()
		if err != nil {
			return nil, err
		}
		if right == nil {
			e.rightEnd = true
			continue
		}
		for _, left := range e.window.GetValue(right.GetValue(e.rightKeyIdx)) {
			e.pending.Enqueue(tuple.NewTupleFromTuples(left, right))
		}
	}
}

// finish also drops the spill files and the window as soon as the join is over
func (e *JoinExecutor) finish(err error) (*tuple.Tuple, Done, error) {
	e.release()
	return e.AbstractExecutor.finish(err)
}

func (e *JoinExecutor) release() {
	if e.leftFile != nil {
		e.leftFile.Close()
	}
	if e.rightFile != nil {
		e.rightFile.Close()
	}
	if e.window != nil {
		e.window.Clear()
	}
	e.pending = queue.New()
	e.lookahead = nil
	e.curRight = nil
	e.groupKey = nil
}

func (e *JoinExecutor) Close() {
	e.release()
	e.AbstractExecutor.Close()
}

func (e *JoinExecutor) GetDebugStr() string {
	strategy := "block-hash"
	if e.plan.IsMergeJoinable() {
		strategy = "sort-merge"
	}
	return fmt.Sprintf("JoinExecutor [ %s = %s memorylimit=%d %s ]",
		e.plan.GetLeftOffset(), e.plan.GetRightOffset(), e.memoryLimit, strategy)
}
