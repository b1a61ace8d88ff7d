package main

import (
	"os"
	"strings"

	"github.com/devlights/gomy/output"
	"github.com/ryogrid/toydbms/catalog"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/execution/executors"
	"github.com/ryogrid/toydbms/execution/expression"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/materialization"
	"github.com/ryogrid/toydbms/types"
)

const empData = `# employees sorted by department
id name dept_id salary
INT STR INT FLOAT
UNSORTED UNSORTED ASC UNSORTED
5 erin NULL 4500
3 carol 10 5200.5
1 alice 10 4800
4 dave 20 3900
2 bob 30 6100
`

const deptData = `id name
INT STR
ASC UNSORTED
10 sales
20 dev
40 legal
`

// this entry point runs a fixed query over small tables for checking the engine by eye.
// table data files given as arguments are registered in the catalog and printed too.
func main() {
	defer func() {
		if r := recover(); r != nil {
			output.Stdoutl("[panic]", r)
			common.RuntimeStack()
			os.Exit(1)
		}
	}()

	c := catalog.NewCatalog()
	if _, err := c.LoadTable("emp", strings.NewReader(empData)); err != nil {
		output.Stdoutl("[error]", err)
		os.Exit(1)
	}
	if _, err := c.LoadTable("dept", strings.NewReader(deptData)); err != nil {
		output.Stdoutl("[error]", err)
		os.Exit(1)
	}
	for _, path := range os.Args[1:] {
		meta, err := c.LoadTableFile(path)
		if err != nil {
			output.Stdoutl("[error]", err)
			os.Exit(1)
		}
		meta.Table().Print(os.Stdout)
	}

	plan, err := buildPlan(c)
	if err != nil {
		output.Stdoutl("[error]", err)
		os.Exit(1)
	}

	output.Stdoutl("[logical plan]", "\n"+plans.PlanTreeString(plan))

	tfm := materialization.NewTmpFileManager(common.TmpFileDir)
	defer tfm.CloseAll()
	ctx := executors.NewExecutorContext(tfm)
	engine := &executors.ExecutionEngine{}
	executor := engine.CreateExecutor(plan, ctx)
	output.Stdoutl("[physical plan]", "\n"+executors.ExecutorTreeString(executor))
	executor.Close()

	output.Stdoutl("[result]", "")
	consumer := executors.NewPrintingConsumer(os.Stdout, plan.OutputSchema())
	if err := engine.ExecuteInto(plan, ctx, consumer); err != nil {
		output.Stdoutl("[error]", err)
		os.Exit(1)
	}
	output.Stdoutl("[rows]", consumer.GetCount())
}

// buildPlan makes
//
//	SELECT DISTINCT dept.name, emp.dept_id FROM emp JOIN dept ON emp.dept_id = dept.id WHERE emp.salary > 4000
func buildPlan(c *catalog.Catalog) (plans.Plan, error) {
	highPaid := expression.NewComparison(expression.NewColumnValue("emp.salary"),
		expression.NewConstantValue(types.NewFloat(4000)), expression.GreaterThan)
	emp, err := plans.NewSelectionPlanNode(c.GetTableByName("emp").Table(), []expression.Expression{highPaid})
	if err != nil {
		return nil, err
	}
	dept, err := plans.NewSelectionPlanNode(c.GetTableByName("dept").Table(), nil)
	if err != nil {
		return nil, err
	}
	join, err := plans.NewJoinPlanNode(emp, dept, "emp.dept_id", "dept.id", common.DefaultJoinMemoryLimit)
	if err != nil {
		return nil, err
	}
	proj, err := plans.NewProjectionPlanNode(join, []string{"dept.name", "emp.dept_id"})
	if err != nil {
		return nil, err
	}
	return plans.NewUniquePlanNode(proj), nil
}
