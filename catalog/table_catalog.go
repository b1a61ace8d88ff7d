package catalog

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/storage/table"
	"github.com/ryogrid/toydbms/types"
	"github.com/sasha-s/go-deadlock"
)

// Catalog is a non-persistent catalog that is designed for drivers to use.
// It handles table registration and table lookup. plans reference tables
// directly, so the catalog is only a registry and may be shared by goroutines.
type Catalog struct {
	tableIds    map[uint32]*TableMetadata
	tableNames  map[string]*TableMetadata
	nextTableId uint32
	mutex       deadlock.RWMutex
}

func NewCatalog() *Catalog {
	return &Catalog{tableIds: make(map[uint32]*TableMetadata), tableNames: make(map[string]*TableMetadata)}
}

func (c *Catalog) GetTableByName(name string) *TableMetadata {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if table_, ok := c.tableNames[name]; ok {
		return table_
	}
	return nil
}

func (c *Catalog) GetTableByOID(oid uint32) *TableMetadata {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if table_, ok := c.tableIds[oid]; ok {
		return table_
	}
	return nil
}

// GetTableNames returns the names of all tables in lexical order
func (c *Catalog) GetTableNames() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	ret := make([]string, 0, len(c.tableNames))
	for name := range c.tableNames {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// RegisterTable adds a table. table names are unique in a catalog
func (c *Catalog) RegisterTable(table_ *table.BaseTable) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.tableNames[table_.Name()]; ok {
		return nil, errors.Errorf("table %s already exists", table_.Name())
	}
	oid := c.nextTableId
	c.nextTableId++
	tableMetadata := &TableMetadata{table_, oid}
	c.tableIds[oid] = tableMetadata
	c.tableNames[table_.Name()] = tableMetadata
	common.ShPrintf(common.DEBUG_INFO, "table %s registered as oid %d\n", table_.Name(), oid)
	return tableMetadata, nil
}

// CreateTable builds a table from rows and registers it
func (c *Catalog) CreateTable(name string, attrNames []string, attrTypes []types.TypeID, sortStatus []types.ColumnSort, rows [][]types.Value) (*TableMetadata, error) {
	table_, err := table.NewBaseTable(name, attrNames, attrTypes, sortStatus, rows)
	if err != nil {
		return nil, err
	}
	return c.RegisterTable(table_)
}

// LoadTable reads a table data file from r and registers it under name
func (c *Catalog) LoadTable(name string, r io.Reader) (*TableMetadata, error) {
	table_, err := table.LoadBaseTable(name, r)
	if err != nil {
		return nil, err
	}
	return c.RegisterTable(table_)
}

// LoadTableFile loads a table data file. the table is named after the file
// without its extension. e.g. "data/emp.tbl" is table "emp"
func (c *Catalog) LoadTableFile(path string) (*TableMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can not open table file %s", path)
	}
	defer file.Close()
	base := filepath.Base(path)
	return c.LoadTable(strings.TrimSuffix(base, filepath.Ext(base)), file)
}
