package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/storage/table/column"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

// BaseTable is an in-memory table which supplies rows to selection nodes.
// it carries the sort status its producer declared for each column. the
// engine trusts that declaration and never mutates the table.
type BaseTable struct {
	name   string
	schema *schema.Schema
	rows   []*tuple.Tuple
}

// NewBaseTable creates a table. attribute names which are not qualified are
// prefixed with the table name. e.g. "id" of table "a" becomes "a.id"
func NewBaseTable(name string, attrNames []string, attrTypes []types.TypeID, sortStatus []types.ColumnSort, rows [][]types.Value) (*BaseTable, error) {
	if len(attrNames) != len(attrTypes) || len(attrNames) != len(sortStatus) {
		return nil, errors.Errorf("table %s: %d names, %d types and %d sort statuses given",
			name, len(attrNames), len(attrTypes), len(sortStatus))
	}

	columns := make([]*column.Column, 0, len(attrNames))
	for ii, attrName := range attrNames {
		columns = append(columns, column.NewColumn(QualifyName(name, attrName), attrTypes[ii], sortStatus[ii]))
	}
	ret := &BaseTable{name, schema.NewSchema(columns), make([]*tuple.Tuple, 0, len(rows))}

	for rowIdx, row := range rows {
		if err := ret.checkRow(row); err != nil {
			return nil, errors.WithMessagef(err, "table %s: row %d", name, rowIdx)
		}
		ret.rows = append(ret.rows, tuple.NewTuple(row))
	}
	common.ShPrintf(common.DEBUG_INFO, "table %s created: %d columns, %d rows\n", name, len(columns), len(rows))
	return ret, nil
}

func QualifyName(tableName string, attrName string) string {
	if strings.Contains(attrName, common.QualifiedNameDelimiter) {
		return attrName
	}
	return tableName + common.QualifiedNameDelimiter + attrName
}

func (t *BaseTable) checkRow(row []types.Value) error {
	if uint32(len(row)) != t.schema.GetColumnCount() {
		return errors.Errorf("%d values for %d columns", len(row), t.schema.GetColumnCount())
	}
	for ii, val := range row {
		if expected := t.schema.GetColumn(uint32(ii)).GetType(); val.ValueType() != expected {
			return errors.Errorf("column %d expects %s but %s is given", ii, expected, val.ValueType())
		}
	}
	return nil
}

func (t *BaseTable) Name() string {
	return t.name
}

func (t *BaseTable) Schema() *schema.Schema {
	return t.schema
}

func (t *BaseTable) GetRowCount() uint32 {
	return uint32(len(t.rows))
}

// GetSortStatus returns the declared sort order of the column
func (t *BaseTable) GetSortStatus(colIndex uint32) types.ColumnSort {
	return t.schema.GetColumn(colIndex).GetSortOrder()
}

// Iterator returns a row source positioned at the first row
func (t *BaseTable) Iterator() *TableIterator {
	return NewTableIterator(t)
}

// Print writes the table header and rows
func (t *BaseTable) Print(w io.Writer) {
	fmt.Fprintf(w, "table %s\n", t.name)
	for _, col := range t.schema.GetColumns() {
		fmt.Fprintf(w, "  - %s\n", col)
	}
	for _, row := range t.rows {
		fmt.Fprintf(w, "  %s\n", row)
	}
}
