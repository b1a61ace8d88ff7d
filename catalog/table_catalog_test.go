package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ryogrid/toydbms/storage/table"
	testingpkg "github.com/ryogrid/toydbms/testing/testing_assert"
	"github.com/ryogrid/toydbms/types"
)

const empData = `id name
INT STR
ASC UNSORTED
1 alice
2 bob
`

func TestCatalogRegisterAndLookup(t *testing.T) {
	c := NewCatalog()
	meta, err := c.LoadTable("emp", strings.NewReader(empData))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(0), meta.OID())
	testingpkg.Equals(t, "emp.id", meta.Schema().GetColumn(0).GetColumnName())

	testingpkg.SimpleAssert(t, c.GetTableByName("emp") == meta)
	testingpkg.SimpleAssert(t, c.GetTableByOID(0) == meta)
	testingpkg.SimpleAssert(t, c.GetTableByName("dept") == nil)
	testingpkg.SimpleAssert(t, c.GetTableByOID(1) == nil)

	_, err = c.LoadTable("emp", strings.NewReader(empData))
	testingpkg.NotOk(t, err)

	dept, err := c.CreateTable("dept", []string{"id"}, []types.TypeID{types.Integer},
		[]types.ColumnSort{types.Unordered}, [][]types.Value{{types.NewInteger(10)}})
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(1), dept.OID())
	testingpkg.Equals(t, []string{"dept", "emp"}, c.GetTableNames())
}

func TestCatalogLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emp.tbl")
	testingpkg.Ok(t, os.WriteFile(path, []byte(empData), 0644))

	c := NewCatalog()
	meta, err := c.LoadTableFile(path)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "emp", meta.Name())
	testingpkg.Equals(t, uint32(2), meta.Table().GetRowCount())

	_, err = c.LoadTableFile(filepath.Join(t.TempDir(), "missing.tbl"))
	testingpkg.NotOk(t, err)
}

func TestCatalogConcurrentRegistration(t *testing.T) {
	c := NewCatalog()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	wg := new(sync.WaitGroup)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			tbl, err := table.LoadBaseTable(name, strings.NewReader(empData))
			if err != nil {
				panic(err)
			}
			if _, err := c.RegisterTable(tbl); err != nil {
				panic(err)
			}
			c.GetTableByName(name)
		}(name)
	}
	wg.Wait()
	testingpkg.Equals(t, names, c.GetTableNames())
}
