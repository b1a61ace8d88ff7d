package catalog

import (
	"github.com/ryogrid/toydbms/storage/table"
	"github.com/ryogrid/toydbms/storage/table/schema"
)

type TableMetadata struct {
	table *table.BaseTable
	oid   uint32
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.table.Schema()
}

func (t *TableMetadata) OID() uint32 {
	return t.oid
}

func (t *TableMetadata) Name() string {
	return t.table.Name()
}

func (t *TableMetadata) Table() *table.BaseTable {
	return t.table
}
