// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package schema

import (
	"math"

	"github.com/ryogrid/toydbms/storage/table/column"
	"github.com/ryogrid/toydbms/types"
)

// Schema is the ordered column list of a table or of a plan node output.
// it is not mutated after NewSchema returns.
type Schema struct {
	columns []*column.Column
}

func NewSchema(columns []*column.Column) *Schema {
	schema := &Schema{}
	schema.columns = append(schema.columns, columns...)
	return schema
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) GetColumns() []*column.Column {
	ret := make([]*column.Column, len(s.columns))
	copy(ret, s.columns)
	return ret
}

// GetColIndex resolves a qualified name ("Table.Attribute") to a column index.
// a name matches every column whose alias set contains it. when several columns
// match, the one whose primary name is the given name wins; if that does not
// single one out the name is ambiguous.
func (s *Schema) GetColIndex(columnName string) (uint32, error) {
	matches := make([]uint32, 0)
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].HasName(columnName) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return math.MaxUint32, NewSchemaError(UnknownOffset, columnName)
	case 1:
		return matches[0], nil
	}

	primary := uint32(math.MaxUint32)
	for _, idx := range matches {
		if s.columns[idx].GetColumnName() == columnName {
			if primary != math.MaxUint32 {
				return math.MaxUint32, NewSchemaError(DuplicateOffset, columnName)
			}
			primary = idx
		}
	}
	if primary == math.MaxUint32 {
		return math.MaxUint32, NewSchemaError(DuplicateOffset, columnName)
	}
	return primary, nil
}

// IsSortedOnAllColumns reports whether every column carries a sort order
func (s *Schema) IsSortedOnAllColumns() bool {
	for _, col := range s.columns {
		if !col.GetSortOrder().IsOrdered() {
			return false
		}
	}
	return true
}

func (s *Schema) GetTypes() []types.TypeID {
	ret := make([]types.TypeID, 0, len(s.columns))
	for _, col := range s.columns {
		ret = append(ret, col.GetType())
	}
	return ret
}

// Concat builds the schema of left columns followed by right columns.
// sort orders are taken from the given functions so that callers can drop
// orders which the producing operator does not preserve.
func Concat(left *Schema, right *Schema, leftOrder func(idx uint32, col *column.Column) types.ColumnSort,
	rightOrder func(idx uint32, col *column.Column) types.ColumnSort) *Schema {
	columns := make([]*column.Column, 0, left.GetColumnCount()+right.GetColumnCount())
	for ii, col := range left.columns {
		columns = append(columns, col.Copy(leftOrder(uint32(ii), col)))
	}
	for ii, col := range right.columns {
		columns = append(columns, col.Copy(rightOrder(uint32(ii), col)))
	}
	return NewSchema(columns)
}

// Project builds the schema made of the named columns in the given order.
// every name must resolve and no column may be retained twice.
func Project(from *Schema, columnNames []string) (*Schema, []uint32, error) {
	idxs := make([]uint32, 0, len(columnNames))
	seen := make(map[uint32]bool)
	columns := make([]*column.Column, 0, len(columnNames))
	for _, name := range columnNames {
		idx, err := from.GetColIndex(name)
		if err != nil {
			return nil, nil, err
		}
		if seen[idx] {
			return nil, nil, NewSchemaError(DuplicateOffset, name)
		}
		seen[idx] = true
		idxs = append(idxs, idx)
		col := from.GetColumn(idx)
		columns = append(columns, col.Copy(col.GetSortOrder()))
	}
	return NewSchema(columns), idxs, nil
}
