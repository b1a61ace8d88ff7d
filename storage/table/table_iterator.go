package table

import "github.com/ryogrid/toydbms/storage/tuple"

// TableIterator is the access method for base tables
//
// It iterates through the rows of a table when Next is called
// The tuple that it is being pointed to can be accessed with the method Current
type TableIterator struct {
	table *BaseTable
	pos   int
}

// NewTableIterator creates a new iterator for the given table
// It points to the first row of the table
func NewTableIterator(table *BaseTable) *TableIterator {
	return &TableIterator{table, 0}
}

// Current points to the current tuple. nil at the end
func (it *TableIterator) Current() *tuple.Tuple {
	if it.End() {
		return nil
	}
	return it.table.rows[it.pos]
}

// End checks if the iterator is at the end
func (it *TableIterator) End() bool {
	return it.pos >= len(it.table.rows)
}

// Next advances the iterator and returns the new current tuple
func (it *TableIterator) Next() *tuple.Tuple {
	if !it.End() {
		it.pos++
	}
	return it.Current()
}
