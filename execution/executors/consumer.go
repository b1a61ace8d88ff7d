package executors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
)

// ResultConsumer receives the rows drained from an executor tree.
// returning ErrStop ends draining without error. any other error aborts it.
type ResultConsumer interface {
	Consume(tuple_ *tuple.Tuple) error
}

// CollectingConsumer keeps every row it receives. a positive limit makes it
// stop after that many rows.
type CollectingConsumer struct {
	tuples []*tuple.Tuple
	limit  int
}

func NewCollectingConsumer(limit int) *CollectingConsumer {
	return &CollectingConsumer{make([]*tuple.Tuple, 0), limit}
}

func (c *CollectingConsumer) Consume(tuple_ *tuple.Tuple) error {
	c.tuples = append(c.tuples, tuple_)
	if c.limit > 0 && len(c.tuples) >= c.limit {
		return ErrStop
	}
	return nil
}

func (c *CollectingConsumer) GetTuples() []*tuple.Tuple {
	return c.tuples
}

// PrintingConsumer writes a header line of column names and then one line per row
type PrintingConsumer struct {
	w       io.Writer
	schema  *schema.Schema
	printed bool
	count   int
}

func NewPrintingConsumer(w io.Writer, schema_ *schema.Schema) *PrintingConsumer {
	return &PrintingConsumer{w, schema_, false, 0}
}

func (c *PrintingConsumer) Consume(tuple_ *tuple.Tuple) error {
	if !c.printed {
		names := make([]string, 0, c.schema.GetColumnCount())
		for _, col := range c.schema.GetColumns() {
			names = append(names, col.GetColumnName())
		}
		if _, err := fmt.Fprintln(c.w, strings.Join(names, " | ")); err != nil {
			return errors.Wrap(err, "result header write failed")
		}
		c.printed = true
	}
	strs := make([]string, 0, tuple_.GetValueCount())
	for _, val := range tuple_.GetValues() {
		strs = append(strs, val.String())
	}
	c.count++
	_, err := fmt.Fprintln(c.w, strings.Join(strs, " | "))
	return errors.Wrap(err, "result row write failed")
}

func (c *PrintingConsumer) GetCount() int {
	return c.count
}

// Drain pulls rows from executor until the end of the stream and hands them to consumer
func Drain(executor Executor, consumer ResultConsumer) error {
	for {
		t, done, err := executor.Next()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := consumer.Consume(t); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}
