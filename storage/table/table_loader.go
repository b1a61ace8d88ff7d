package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/types"
)

// NullToken is the data file spelling of a NULL value
const NullToken = "NULL"

/**
 * Table data file format (whitespace separated tokens, '#' starts a comment line):
 *
 *   line 1: attribute names
 *   line 2: attribute types   (INT, FLOAT, STR, BOOL)
 *   line 3: sort status       (ASC, DESC, UNSORTED)
 *   rest  : one row per line
 */

// LoadBaseTable reads a table data file
func LoadBaseTable(name string, r io.Reader) (*BaseTable, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), common.MaxDataFileLineSize)
	lineNo := 0
	var attrNames []string
	var attrTypes []types.TypeID
	var sortStatus []types.ColumnSort
	rows := make([][]types.Value, 0)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens := strings.Fields(line)

		switch {
		case attrNames == nil:
			attrNames = tokens
		case attrTypes == nil:
			if len(tokens) != len(attrNames) {
				return nil, errors.Errorf("%s:%d: %d types for %d attributes", name, lineNo, len(tokens), len(attrNames))
			}
			attrTypes = make([]types.TypeID, 0, len(tokens))
			for _, token := range tokens {
				typeID, err := types.ParseTypeID(token)
				if err != nil {
					return nil, errors.WithMessagef(err, "%s:%d", name, lineNo)
				}
				attrTypes = append(attrTypes, typeID)
			}
		case sortStatus == nil:
			if len(tokens) != len(attrNames) {
				return nil, errors.Errorf("%s:%d: %d sort statuses for %d attributes", name, lineNo, len(tokens), len(attrNames))
			}
			sortStatus = make([]types.ColumnSort, 0, len(tokens))
			for _, token := range tokens {
				sort, err := types.ParseColumnSort(token)
				if err != nil {
					return nil, errors.WithMessagef(err, "%s:%d", name, lineNo)
				}
				sortStatus = append(sortStatus, sort)
			}
		default:
			if len(tokens) != len(attrNames) {
				return nil, errors.Errorf("%s:%d: %d values for %d attributes", name, lineNo, len(tokens), len(attrNames))
			}
			row := make([]types.Value, 0, len(tokens))
			for ii, token := range tokens {
				if token == NullToken {
					row = append(row, types.NewNull(attrTypes[ii]))
					continue
				}
				val, err := types.NewValueFromString(token, attrTypes[ii])
				if err != nil {
					return nil, errors.WithMessagef(err, "%s:%d", name, lineNo)
				}
				row = append(row, val)
			}
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	if sortStatus == nil {
		return nil, errors.Errorf("%s: header is incomplete", name)
	}

	return NewBaseTable(name, attrNames, attrTypes, sortStatus, rows)
}

// WriteBaseTable writes t in the format LoadBaseTable reads.
// attribute names are written unqualified.
func WriteBaseTable(w io.Writer, t *BaseTable) error {
	bw := bufio.NewWriter(w)
	cols := t.schema.GetColumns()
	names := make([]string, 0, len(cols))
	typeTokens := make([]string, 0, len(cols))
	sortTokens := make([]string, 0, len(cols))
	for _, col := range cols {
		names = append(names, strings.TrimPrefix(col.GetColumnName(), t.name+"."))
		typeTokens = append(typeTokens, typeToken(col.GetType()))
		sortTokens = append(sortTokens, col.GetSortOrder().String())
	}
	fmt.Fprintln(bw, strings.Join(names, " "))
	fmt.Fprintln(bw, strings.Join(typeTokens, " "))
	fmt.Fprintln(bw, strings.Join(sortTokens, " "))

	for _, row := range t.rows {
		tokens := make([]string, 0, row.GetValueCount())
		for _, val := range row.GetValues() {
			if val.IsNull() {
				tokens = append(tokens, NullToken)
				continue
			}
			if err := checkWritable(val); err != nil {
				return errors.WithMessagef(err, "%s: row %s", t.name, row)
			}
			tokens = append(tokens, val.String())
		}
		fmt.Fprintln(bw, strings.Join(tokens, " "))
	}
	return errors.Wrapf(bw.Flush(), "%s: write failed", t.name)
}

// checkWritable rejects a Varchar which would not read back as the same value
func checkWritable(val types.Value) error {
	if val.ValueType() != types.Varchar {
		return nil
	}
	str := val.ToVarchar()
	switch {
	case str == "":
		return errors.New("empty string can not be written")
	case str == NullToken:
		return errors.Errorf("string %q would read back as NULL", str)
	case strings.HasPrefix(str, "#"):
		return errors.Errorf("string %q would start a comment line", str)
	case strings.IndexFunc(str, unicode.IsSpace) >= 0:
		return errors.Errorf("string %q contains white space", str)
	}
	return nil
}

func typeToken(typeID types.TypeID) string {
	switch typeID {
	case types.Integer:
		return "INT"
	case types.Float:
		return "FLOAT"
	case types.Boolean:
		return "BOOL"
	}
	return "STR"
}
