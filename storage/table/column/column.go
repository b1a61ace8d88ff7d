// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package column

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/toydbms/types"
)

type Column struct {
	// note: columnName field includes table name. e.g. "table1.column1"
	//       and GetColumnName() returns it as it is.
	columnName string
	// every qualified name which denotes this column. always contains columnName
	aliases    mapset.Set[string]
	columnType types.TypeID
	sortOrder  types.ColumnSort
}

func NewColumn(name string, columnType types.TypeID, sortOrder types.ColumnSort) *Column {
	return &Column{name, mapset.NewThreadUnsafeSet[string](name), columnType, sortOrder}
}

// NewColumnWithAliases creates a column known by its name and every name in aliases
func NewColumnWithAliases(name string, aliases mapset.Set[string], columnType types.TypeID, sortOrder types.ColumnSort) *Column {
	names := mapset.NewThreadUnsafeSet[string](name)
	if aliases != nil {
		names = names.Union(aliases)
	}
	return &Column{name, names, columnType, sortOrder}
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

// GetAliases returns a copy of the alias set
func (c *Column) GetAliases() mapset.Set[string] {
	return c.aliases.Clone()
}

// GetNames returns all names of the column in lexical order
func (c *Column) GetNames() []string {
	ret := c.aliases.ToSlice()
	sort.Strings(ret)
	return ret
}

func (c *Column) HasName(name string) bool {
	return c.aliases.Contains(name)
}

func (c *Column) GetSortOrder() types.ColumnSort {
	return c.sortOrder
}

// Copy returns a column with the same names and type and the given sort order
func (c *Column) Copy(sortOrder types.ColumnSort) *Column {
	return &Column{c.columnName, c.aliases.Clone(), c.columnType, sortOrder}
}

func (c *Column) String() string {
	return strings.Join(c.GetNames(), "|") + " " + c.columnType.String() + " " + c.sortOrder.String()
}
