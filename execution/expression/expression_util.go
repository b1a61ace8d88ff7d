package expression

import (
	stack "github.com/golang-collections/collections/stack"
	"github.com/ryogrid/toydbms/storage/table/schema"
)

func GetExpTreeStr(exp Expression) string {
	if exp == nil {
		return ""
	}
	return exp.String()
}

// ReferencedColumns returns the column names the expression tree refers to, in visiting order
func ReferencedColumns(exp Expression) []string {
	ret := make([]string, 0)
	if exp == nil {
		return ret
	}
	exps := stack.New()
	exps.Push(exp)
	for exps.Len() > 0 {
		here := exps.Pop().(Expression)
		switch here.GetType() {
		case EXPRESSION_TYPE_COLUMN_VALUE:
			ret = append(ret, here.(*ColumnValue).GetColumnName())
		case EXPRESSION_TYPE_CONSTANT_VALUE:
			// Ignore.
		default:
			// push right first so that left is visited first
			for idx := 1; idx >= 0; idx-- {
				if child := here.GetChildAt(uint32(idx)); child != nil {
					exps.Push(child)
				}
			}
		}
	}
	return ret
}

// ValidateColumnReferences checks that every column the expression refers to resolves in schema_
func ValidateColumnReferences(exp Expression, schema_ *schema.Schema) error {
	for _, colName := range ReferencedColumns(exp) {
		if _, err := schema_.GetColIndex(colName); err != nil {
			return err
		}
	}
	return nil
}
