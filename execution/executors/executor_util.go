package executors

import (
	"fmt"
	"io"
	"strings"

	"github.com/ryogrid/toydbms/execution/plans"
)

// PrintExecutorTree writes the executor tree in the shape of plans.PrintPlanTree.
// each node line ends with the count of rows it holds at the moment.
func PrintExecutorTree(w io.Writer, executor Executor, indent int) {
	plans.WriteIndent(w, indent)
	fmt.Fprintf(w, "%s buffered=%d\n", executor.GetDebugStr(), executor.GetBufferedCount())

	for _, child := range executor.GetChildren() {
		PrintExecutorTree(w, child, indent+1)
	}
	plans.PrintSchema(w, executor.GetOutputSchema(), indent+1)
}

// ExecutorTreeString returns what PrintExecutorTree writes
func ExecutorTreeString(executor Executor) string {
	sb := new(strings.Builder)
	PrintExecutorTree(sb, executor, 0)
	return sb.String()
}
