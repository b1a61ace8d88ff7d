package plans

import (
	"fmt"
	"io"
	"strings"

	"github.com/ryogrid/toydbms/storage/table/schema"
)

const indentUnit = "  "

func WriteIndent(w io.Writer, indent int) {
	fmt.Fprint(w, strings.Repeat(indentUnit, indent))
}

// PrintSchema writes one line per column: "- <names> <type> <sort order>"
func PrintSchema(w io.Writer, schema_ *schema.Schema, indent int) {
	for _, col := range schema_.GetColumns() {
		WriteIndent(w, indent)
		fmt.Fprintln(w, "- "+col.String())
	}
}

// PrintPlanTree writes the node, its children one level deeper and then the node's columns
func PrintPlanTree(w io.Writer, plan Plan, indent int) {
	WriteIndent(w, indent)
	fmt.Fprintln(w, plan.GetDebugStr())

	for _, child := range plan.GetChildren() {
		PrintPlanTree(w, child, indent+1)
	}
	PrintSchema(w, plan.OutputSchema(), indent+1)
}

// PlanTreeString returns what PrintPlanTree writes
func PlanTreeString(plan Plan) string {
	sb := new(strings.Builder)
	PrintPlanTree(sb, plan, 0)
	return sb.String()
}
