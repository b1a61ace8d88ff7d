package executors

import (
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
)

// Done is true when the executor has no more tuples to return
type Done bool

// Executor executes a plan
//
// Init initializes this executor and its children.
// This function must be called before Next() is called!
//
// Next produces the next tuple from this executor.
// (tuple, false, nil) is a row, (nil, true, nil) the end of the stream and
// (nil, true, err) a failure. once the end or a failure is returned, later
// calls return the same result without touching the children again.
//
// Close releases buffered rows and temporary files of this executor and its children.
// an executor is single use. it can not be restarted after Close.
type Executor interface {
	Init()
	Next() (*tuple.Tuple, Done, error)
	Close()
	GetOutputSchema() *schema.Schema
	// GetAttrNum returns the output column count fixed at construction
	GetAttrNum() uint32
	// GetPrototype returns the logical node this executor was compiled from
	GetPrototype() plans.Plan
	GetChildren() []Executor
	// GetBufferedCount returns the count of rows the executor holds now
	GetBufferedCount() int
	GetDebugStr() string
}

type executorState int

const (
	// no row produced yet
	stateInit executorState = iota
	// returning rows, possibly after a materialization phase
	stateStreaming
	// terminal. end of stream or failure
	stateDone
)

// AbstractExecutor holds what every executor shares: the prototype, the children,
// the record buffer with its read cursor and the terminal result
type AbstractExecutor struct {
	context   *ExecutorContext
	prototype plans.Plan
	children  []Executor
	attrNum   uint32
	buffer    []*tuple.Tuple
	pos       int
	state     executorState
	err       error
}

func newAbstractExecutor(context *ExecutorContext, prototype plans.Plan, children ...Executor) *AbstractExecutor {
	return &AbstractExecutor{
		context:   context,
		prototype: prototype,
		children:  children,
		attrNum:   prototype.OutputSchema().GetColumnCount(),
		buffer:    make([]*tuple.Tuple, 0),
		state:     stateInit,
	}
}

func (e *AbstractExecutor) Init() {
	for _, child := range e.children {
		child.Init()
	}
}

func (e *AbstractExecutor) GetOutputSchema() *schema.Schema {
	return e.prototype.OutputSchema()
}

func (e *AbstractExecutor) GetAttrNum() uint32 {
	return e.attrNum
}

func (e *AbstractExecutor) GetPrototype() plans.Plan {
	return e.prototype
}

func (e *AbstractExecutor) GetChildren() []Executor {
	ret := make([]Executor, len(e.children))
	copy(ret, e.children)
	return ret
}

func (e *AbstractExecutor) GetBufferedCount() int {
	return len(e.buffer)
}

func (e *AbstractExecutor) GetDebugStr() string {
	return e.prototype.GetType().String() + "Executor"
}

func (e *AbstractExecutor) Close() {
	e.buffer = nil
	e.pos = 0
	e.state = stateDone
	for _, child := range e.children {
		child.Close()
	}
}

func (e *AbstractExecutor) isDone() bool {
	return e.state == stateDone
}

// terminal returns the stored terminal result
func (e *AbstractExecutor) terminal() (*tuple.Tuple, Done, error) {
	return nil, true, e.err
}

// finish moves the executor to its terminal state and drops the buffer
func (e *AbstractExecutor) finish(err error) (*tuple.Tuple, Done, error) {
	e.state = stateDone
	e.err = err
	e.buffer = nil
	e.pos = 0
	return e.terminal()
}

// drain pulls every row of child into the record buffer
func (e *AbstractExecutor) drain(child Executor) error {
	for {
		t, done, err := child.Next()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		e.buffer = append(e.buffer, t)
	}
}
