package testing_tbl_gen

import (
	"math/rand"

	"github.com/dsnet/golib/memfile"
	"github.com/ryogrid/toydbms/storage/table"
	"github.com/ryogrid/toydbms/types"
)

type ColumnInsertMeta struct {
	/**
	 * Name of the column (unqualified)
	 */
	Name_ string
	/**
	 * Type of the column
	 */
	Type_ types.TypeID
	/**
	 * Declared sort status of the column
	 */
	Sort_ types.ColumnSort
	/**
	 * Whether the column is nullable
	 */
	Nullable_ bool
	/**
	 * Distribution of values
	 */
	Dist_ int32
	/**
	 * min value of the column
	 */
	Min_ int32
	/**
	 * max value of the column
	 */
	Max_ int32
	/**
	 * Counter to generate serial data
	 */
	Serial_counter_ int32
}

type TableInsertMeta struct {
	/**
	 * Name of the table
	 */
	Name_ string
	/**
	 * Number of rows
	 */
	Num_rows_ uint32
	/**
	 * Columns
	 */
	Col_meta_ []*ColumnInsertMeta
}

const DistSerial int32 = 0
const DistUniform int32 = 1

const TEST1_SIZE uint32 = 1000
const TEST2_SIZE uint32 = 100

// one in nullRatio generated values of a nullable column is NULL
const nullRatio = 10

var varcharAlphabet = []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}

func GenNumericValues(col_meta *ColumnInsertMeta, count uint32, rnd *rand.Rand) []types.Value {
	var values []types.Value
	if col_meta.Dist_ == DistSerial {
		for i := 0; i < int(count); i++ {
			values = append(values, types.NewInteger(col_meta.Serial_counter_))
			col_meta.Serial_counter_ += 1
		}
		return values
	}

	for i := 0; i < int(count); i++ {
		values = append(values, types.NewInteger(col_meta.Min_+rnd.Int31n(col_meta.Max_-col_meta.Min_+1)))
	}
	return values
}

func GenNumericValuesFloat(col_meta *ColumnInsertMeta, count uint32, rnd *rand.Rand) []types.Value {
	var values []types.Value
	if col_meta.Dist_ == DistSerial {
		for i := 0; i < int(count); i++ {
			values = append(values, types.NewFloat(float32(col_meta.Serial_counter_)))
			col_meta.Serial_counter_ += 1
		}
		return values
	}

	for i := 0; i < int(count); i++ {
		values = append(values, types.NewFloat(float32(col_meta.Min_+rnd.Int31n(col_meta.Max_-col_meta.Min_+1))/4))
	}
	return values
}

func GenVarcharValues(col_meta *ColumnInsertMeta, count uint32, rnd *rand.Rand) []types.Value {
	var values []types.Value
	for i := 0; i < int(count); i++ {
		if col_meta.Dist_ == DistSerial {
			values = append(values, types.NewVarchar(varcharAlphabet[int(col_meta.Serial_counter_)%len(varcharAlphabet)]))
			col_meta.Serial_counter_ += 1
			continue
		}
		values = append(values, types.NewVarchar(varcharAlphabet[rnd.Intn(len(varcharAlphabet))]))
	}
	return values
}

func MakeValues(col_meta *ColumnInsertMeta, count uint32, rnd *rand.Rand) []types.Value {
	var values []types.Value
	switch col_meta.Type_ {
	case types.Integer:
		values = GenNumericValues(col_meta, count, rnd)
	case types.Float:
		values = GenNumericValuesFloat(col_meta, count, rnd)
	case types.Varchar:
		values = GenVarcharValues(col_meta, count, rnd)
	default:
		panic("Not yet implemented")
	}
	if col_meta.Nullable_ {
		for ii := range values {
			if rnd.Intn(nullRatio) == 0 {
				values[ii] = types.NewNull(col_meta.Type_)
			}
		}
	}
	return values
}

// GenerateTableData writes the rows described by table_meta in the table data
// file format. the same seed always yields the same file.
func GenerateTableData(table_meta *TableInsertMeta, seed int64) *memfile.File {
	rnd := rand.New(rand.NewSource(seed))
	columns := make([][]types.Value, 0, len(table_meta.Col_meta_))
	for _, col_meta := range table_meta.Col_meta_ {
		columns = append(columns, MakeValues(col_meta, table_meta.Num_rows_, rnd))
	}

	attrNames := make([]string, 0, len(table_meta.Col_meta_))
	attrTypes := make([]types.TypeID, 0, len(table_meta.Col_meta_))
	sortStatus := make([]types.ColumnSort, 0, len(table_meta.Col_meta_))
	for _, col_meta := range table_meta.Col_meta_ {
		attrNames = append(attrNames, col_meta.Name_)
		attrTypes = append(attrTypes, col_meta.Type_)
		sortStatus = append(sortStatus, col_meta.Sort_)
	}
	rows := make([][]types.Value, 0, table_meta.Num_rows_)
	for ii := 0; ii < int(table_meta.Num_rows_); ii++ {
		row := make([]types.Value, 0, len(columns))
		for _, col := range columns {
			row = append(row, col[ii])
		}
		rows = append(rows, row)
	}

	tbl, err := table.NewBaseTable(table_meta.Name_, attrNames, attrTypes, sortStatus, rows)
	if err != nil {
		panic(err)
	}
	file := memfile.New(make([]byte, 0))
	if err := table.WriteBaseTable(file, tbl); err != nil {
		panic(err)
	}
	file.Seek(0, 0)
	return file
}

// GenerateTable generates table data and loads it back through the data file loader
func GenerateTable(table_meta *TableInsertMeta, seed int64) *table.BaseTable {
	tbl, err := table.LoadBaseTable(table_meta.Name_, GenerateTableData(table_meta, seed))
	if err != nil {
		panic(err)
	}
	return tbl
}

// GenerateTestTabls creates the two tables most executor tests run against.
// test_1 has a serial (ascending) colA and uniform colB/colC, test_2 is a smaller table
// whose colA joins with test_1.colA.
func GenerateTestTabls(seed int64) (*table.BaseTable, *table.BaseTable) {
	test1 := &TableInsertMeta{"test_1", TEST1_SIZE, []*ColumnInsertMeta{
		{"colA", types.Integer, types.Ascending, false, DistSerial, 0, 0, 0},
		{"colB", types.Integer, types.Unordered, false, DistUniform, 0, 9, 0},
		{"colC", types.Integer, types.Unordered, false, DistUniform, 0, 9999, 0},
		{"colD", types.Varchar, types.Unordered, true, DistUniform, 0, 0, 0},
	}}
	test2 := &TableInsertMeta{"test_2", TEST2_SIZE, []*ColumnInsertMeta{
		{"colA", types.Integer, types.Unordered, false, DistUniform, 0, 999, 0},
		{"colB", types.Integer, types.Unordered, true, DistUniform, 0, 9, 0},
		{"colC", types.Float, types.Unordered, false, DistUniform, 0, 99, 0},
	}}
	return GenerateTable(test1, seed), GenerateTable(test2, seed+1)
}

// MakeTable loads a table from data file text. it is for small hand written fixtures
func MakeTable(name string, data string) *table.BaseTable {
	tbl, err := table.LoadBaseTable(name, memfile.New([]byte(data)))
	if err != nil {
		panic(err)
	}
	return tbl
}
