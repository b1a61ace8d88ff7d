package executors

import (
	"errors"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/ryogrid/toydbms/execution/expression"
	"github.com/ryogrid/toydbms/execution/plans"
	"github.com/ryogrid/toydbms/materialization"
	"github.com/ryogrid/toydbms/storage/table"
	"github.com/ryogrid/toydbms/storage/tuple"
	testingpkg "github.com/ryogrid/toydbms/testing/testing_assert"
	"github.com/ryogrid/toydbms/testing/testing_tbl_gen"
	"github.com/ryogrid/toydbms/testing/testing_util"
	"github.com/ryogrid/toydbms/types"
)

func newContext() *ExecutorContext {
	return NewExecutorContext(materialization.NewVirtualTmpFileManager())
}

func selectAll(t *testing.T, tbl *table.BaseTable, preds ...expression.Expression) plans.Plan {
	t.Helper()
	sel, err := plans.NewSelectionPlanNode(tbl, preds)
	testingpkg.Ok(t, err)
	return sel
}

func execute(t *testing.T, plan plans.Plan) []*tuple.Tuple {
	t.Helper()
	engine := &ExecutionEngine{}
	ctx := newContext()
	result, err := engine.Execute(plan, ctx)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, ctx.GetTmpFileManager().GetOpenFileCount())
	return result
}

func makeJoin(t *testing.T, left plans.Plan, right plans.Plan, leftOffset string, rightOffset string, limit int) *plans.JoinPlanNode {
	t.Helper()
	join, err := plans.NewJoinPlanNode(left, right, leftOffset, rightOffset, limit)
	testingpkg.Ok(t, err)
	return join
}

func makeProjection(t *testing.T, child plans.Plan, offsets ...string) *plans.ProjectionPlanNode {
	t.Helper()
	proj, err := plans.NewProjectionPlanNode(child, offsets)
	testingpkg.Ok(t, err)
	return proj
}

func sortedStrings(tuples []*tuple.Tuple) []string {
	ret := testing_util.TuplesToStrings(tuples)
	sort.Strings(ret)
	return ret
}

// nestedLoopJoin is the unbounded reference join the executors are checked against
func nestedLoopJoin(t *testing.T, left []*tuple.Tuple, right []*tuple.Tuple, leftKeyIdx uint32, rightKeyIdx uint32) []*tuple.Tuple {
	ret := make([]*tuple.Tuple, 0)
	for _, l := range left {
		for _, r := range right {
			lk := l.GetValue(leftKeyIdx)
			rk := r.GetValue(rightKeyIdx)
			if lk.IsNull() || rk.IsNull() {
				continue
			}
			if lk.CompareEquals(rk) {
				ret = append(ret, tuple.NewTupleFromTuples(l, r))
			}
		}
	}
	return ret
}

const tableT = `c0 c1
INT STR
ASC UNSORTED
1 a
1 b
2 a
`

func TestUniqueOverProjection(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", tableT)
	plan := plans.NewUniquePlanNode(makeProjection(t, selectAll(t, tbl), "t.c0"))

	result := execute(t, plan)
	testingpkg.Equals(t, []string{"(1)", "(2)"}, testing_util.TuplesToStrings(result))
}

func TestUniqueSortsUnorderedChild(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", tableT)
	plan := plans.NewUniquePlanNode(makeProjection(t, selectAll(t, tbl), "t.c1"))

	executor := (&ExecutionEngine{}).CreateExecutor(plan, newContext())
	testingpkg.SimpleAssert(t, strings.Contains(executor.GetDebugStr(), "sorting"))
	result := execute(t, plan)
	testingpkg.Equals(t, []string{"(a)", "(b)"}, testing_util.TuplesToStrings(result))
}

func TestUniqueIsIdempotent(t *testing.T) {
	tbl1, _ := testing_tbl_gen.GenerateTestTabls(7)
	once := plans.NewUniquePlanNode(makeProjection(t, selectAll(t, tbl1), "test_1.colB"))
	twice := plans.NewUniquePlanNode(plans.NewUniquePlanNode(makeProjection(t, selectAll(t, tbl1), "test_1.colB")))

	onceResult := execute(t, once)
	testingpkg.Equals(t, 10, len(onceResult))
	testingpkg.Equals(t, testing_util.TuplesToStrings(onceResult), testing_util.TuplesToStrings(execute(t, twice)))
}

func TestSelectionConjunction(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", "c0 c1\nINT INT\nUNSORTED UNSORTED\n1 -5\n2 5\n3 15\n")
	preds := []expression.Expression{
		expression.NewComparison(expression.NewColumnValue("t.c1"), expression.NewConstantValue(types.NewInteger(0)), expression.GreaterThan),
		expression.NewComparison(expression.NewColumnValue("t.c1"), expression.NewConstantValue(types.NewInteger(10)), expression.LessThan),
	}
	result := execute(t, selectAll(t, tbl, preds...))
	testingpkg.Equals(t, []string{"(2, 5)"}, testing_util.TuplesToStrings(result))
}

func TestSelectionOnGeneratedTable(t *testing.T) {
	tbl1, _ := testing_tbl_gen.GenerateTestTabls(11)
	pred := expression.NewComparison(expression.NewColumnValue("test_1.colA"), expression.NewConstantValue(types.NewInteger(500)), expression.LessThan)
	result := execute(t, selectAll(t, tbl1, pred))
	testingpkg.Equals(t, 500, len(result))
	for _, row := range result {
		testingpkg.SimpleAssert(t, row.GetValue(0).ToInteger() < 500)
	}
}

func TestSelectionTypeMismatch(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", tableT)
	pred := expression.NewComparison(expression.NewColumnValue("t.c1"), expression.NewConstantValue(types.NewInteger(1)), expression.Equal)
	executor := (&ExecutionEngine{}).CreateExecutor(selectAll(t, tbl, pred), newContext())
	executor.Init()

	tuple_, done, err := executor.Next()
	var mismatch *types.TypeMismatchError
	testingpkg.Assert(t, errors.As(err, &mismatch), "expected type mismatch but got %v", err)
	testingpkg.SimpleAssert(t, tuple_ == nil && bool(done))

	// the failure is sticky
	_, done, err2 := executor.Next()
	testingpkg.SimpleAssert(t, bool(done))
	testingpkg.Equals(t, err, err2)
	executor.Close()
}

func TestCrossProductCardinality(t *testing.T) {
	a := testing_tbl_gen.MakeTable("a", "x\nINT\nASC\n1\n2\n3\n")
	b := testing_tbl_gen.MakeTable("b", "y\nSTR\nUNSORTED\np\nq\n")
	result := execute(t, plans.NewCrossProductPlanNode(selectAll(t, a), selectAll(t, b)))
	testingpkg.Equals(t, []string{"(1, p)", "(1, q)", "(2, p)", "(2, q)", "(3, p)", "(3, q)"},
		testing_util.TuplesToStrings(result))

	empty := testing_tbl_gen.MakeTable("e", "z\nINT\nUNSORTED\n")
	testingpkg.Equals(t, 0, len(execute(t, plans.NewCrossProductPlanNode(selectAll(t, a), selectAll(t, empty)))))
	testingpkg.Equals(t, 0, len(execute(t, plans.NewCrossProductPlanNode(selectAll(t, empty), selectAll(t, a)))))

	tbl1, tbl2 := testing_tbl_gen.GenerateTestTabls(3)
	small := selectAll(t, tbl1, expression.NewComparison(expression.NewColumnValue("test_1.colA"),
		expression.NewConstantValue(types.NewInteger(20)), expression.LessThan))
	testingpkg.Equals(t, 20*int(testing_tbl_gen.TEST2_SIZE), len(execute(t, plans.NewCrossProductPlanNode(small, selectAll(t, tbl2)))))
}

func TestJoinExample(t *testing.T) {
	for _, sortStatus := range []string{"ASC", "UNSORTED"} {
		a := testing_tbl_gen.MakeTable("A", "k v\nINT STR\n"+sortStatus+" UNSORTED\n1 x\n2 y\n")
		b := testing_tbl_gen.MakeTable("B", "k v\nINT STR\n"+sortStatus+" UNSORTED\n1 p\n3 q\n")
		join := makeJoin(t, selectAll(t, a), selectAll(t, b), "A.k", "B.k", 10)
		testingpkg.Equals(t, sortStatus == "ASC", join.IsMergeJoinable())

		result := execute(t, join)
		testingpkg.Equals(t, []string{"(1, x, 1, p)"}, testing_util.TuplesToStrings(result))
		for ii, data := range []interface{}{1, "x", 1, "p"} {
			testingpkg.Equals(t, testing_util.GetValueType(data), result[0].GetValue(uint32(ii)).ValueType())
		}
	}
}

func TestJoinMatchesNestedLoop(t *testing.T) {
	tbl1, tbl2 := testing_tbl_gen.GenerateTestTabls(42)
	left := selectAll(t, tbl1)
	right := selectAll(t, tbl2)
	expected := sortedStrings(nestedLoopJoin(t, execute(t, left), execute(t, right), 0, 0))
	testingpkg.SimpleAssert(t, len(expected) > 0)

	// memory limits smaller than the left side force several windows
	for _, limit := range []int{1, 7, 1000} {
		join := makeJoin(t, left, right, "test_1.colA", "test_2.colA", limit)
		testingpkg.SimpleAssert(t, !join.IsMergeJoinable())
		result := execute(t, join)
		testingpkg.Equals(t, expected, sortedStrings(result))
		for _, row := range result {
			testingpkg.SimpleAssert(t, row.GetValue(0).CompareEquals(row.GetValue(4)))
		}
	}
}

func TestJoinOnNullableKeys(t *testing.T) {
	tbl1, tbl2 := testing_tbl_gen.GenerateTestTabls(5)
	left := selectAll(t, tbl2)
	right := selectAll(t, tbl1)
	// test_2.colB is nullable and has at most 10 distinct values
	expected := sortedStrings(nestedLoopJoin(t, execute(t, left), execute(t, right), 1, 1))

	join := makeJoin(t, left, right, "test_2.colB", "test_1.colB", int(testing_tbl_gen.TEST2_SIZE))
	testingpkg.Equals(t, expected, sortedStrings(execute(t, join)))
}

func TestSortMergeJoin(t *testing.T) {
	a := testing_tbl_gen.MakeTable("a", "k v\nINT STR\nASC UNSORTED\nNULL n\n1 a1\n2 a2\n2 a3\n4 a4\n5 a5\n5 a6\n")
	b := testing_tbl_gen.MakeTable("b", "k w\nFLOAT STR\nASC UNSORTED\nNULL m\n0 b0\n2 b1\n2 b2\n3 b3\n5 b4\n6 b5\n")
	join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 2)
	testingpkg.SimpleAssert(t, join.IsMergeJoinable())

	result := execute(t, join)
	testingpkg.Equals(t, []string{
		"(2, a2, 2, b1)", "(2, a3, 2, b1)",
		"(2, a2, 2, b2)", "(2, a3, 2, b2)",
		"(5, a5, 5, b4)", "(5, a6, 5, b4)",
	}, testing_util.TuplesToStrings(result))

	// key columns stay sorted after a merge join
	testingpkg.Equals(t, types.Ascending, join.OutputSchema().GetColumn(0).GetSortOrder())
	testingpkg.Equals(t, types.Unordered, join.OutputSchema().GetColumn(1).GetSortOrder())
}

func TestSortMergeJoinDescending(t *testing.T) {
	a := testing_tbl_gen.MakeTable("a", "k\nINT\nDESC\n9\n7\n7\n3\n")
	b := testing_tbl_gen.MakeTable("b", "k\nINT\nDESC\n8\n7\n3\n3\n1\n")
	join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 2)
	testingpkg.SimpleAssert(t, join.IsMergeJoinable())
	testingpkg.Equals(t, []string{"(7, 7)", "(7, 7)", "(3, 3)", "(3, 3)"}, testing_util.TuplesToStrings(execute(t, join)))
}

func TestJoinMemoryExceeded(t *testing.T) {
	for _, sortStatus := range []string{"ASC", "UNSORTED"} {
		a := testing_tbl_gen.MakeTable("a", "k\nINT\n"+sortStatus+"\n1\n2\n2\n2\n3\n")
		b := testing_tbl_gen.MakeTable("b", "k\nINT\n"+sortStatus+"\n2\n")

		ok := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 3)
		testingpkg.Equals(t, 3, len(execute(t, ok)))

		join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 2)
		ctx := newContext()
		_, err := (&ExecutionEngine{}).Execute(join, ctx)
		testingpkg.Assert(t, errors.Is(err, ErrJoinMemoryExceeded), "%s: expected memory error but got %v", sortStatus, err)
		testingpkg.Equals(t, 0, ctx.GetTmpFileManager().GetOpenFileCount())
	}
}

func TestSortMergeJoinChecksUnreachedGroups(t *testing.T) {
	// the group of 9 is never matched, but it is still too large
	a := testing_tbl_gen.MakeTable("a", "k\nINT\nASC\n1\n9\n9\n9\n")
	b := testing_tbl_gen.MakeTable("b", "k\nINT\nASC\n1\n")
	join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 2)

	executor := (&ExecutionEngine{}).CreateExecutor(join, newContext())
	executor.Init()
	defer executor.Close()
	row, done, err := executor.Next()
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, !bool(done))
	testingpkg.Equals(t, "(1, 1)", row.String())
	_, done, err = executor.Next()
	testingpkg.SimpleAssert(t, bool(done))
	testingpkg.SimpleAssert(t, errors.Is(err, ErrJoinMemoryExceeded))
}

func TestBlockHashJoinFailsBeforeAnyRow(t *testing.T) {
	a := testing_tbl_gen.MakeTable("a", "k\nINT\nUNSORTED\n1\n9\n9\n9\n")
	b := testing_tbl_gen.MakeTable("b", "k\nINT\nUNSORTED\n1\n")
	join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 2)

	executor := (&ExecutionEngine{}).CreateExecutor(join, newContext())
	executor.Init()
	defer executor.Close()
	row, done, err := executor.Next()
	testingpkg.SimpleAssert(t, row == nil && bool(done))
	testingpkg.SimpleAssert(t, errors.Is(err, ErrJoinMemoryExceeded))
}

func TestJoinKeyTypeMismatch(t *testing.T) {
	a := testing_tbl_gen.MakeTable("a", "k\nINT\nUNSORTED\n1\n")
	b := testing_tbl_gen.MakeTable("b", "k\nSTR\nUNSORTED\n1\n")
	join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 2)

	_, err := (&ExecutionEngine{}).Execute(join, newContext())
	var mismatch *types.TypeMismatchError
	testingpkg.Assert(t, errors.As(err, &mismatch), "expected type mismatch but got %v", err)
}

func TestProjectionIsIdempotent(t *testing.T) {
	tbl1, _ := testing_tbl_gen.GenerateTestTabls(9)
	once := makeProjection(t, selectAll(t, tbl1), "test_1.colC", "test_1.colA")
	twice := makeProjection(t, makeProjection(t, selectAll(t, tbl1), "test_1.colC", "test_1.colA"), "test_1.colC", "test_1.colA")

	onceResult := execute(t, once)
	testingpkg.Equals(t, int(testing_tbl_gen.TEST1_SIZE), len(onceResult))
	testingpkg.Equals(t, testing_util.TuplesToStrings(onceResult), testing_util.TuplesToStrings(execute(t, twice)))
	testingpkg.Equals(t, uint32(2), onceResult[0].GetValueCount())
}

func TestAttrNumMatchesLogicalPlan(t *testing.T) {
	tbl1, tbl2 := testing_tbl_gen.GenerateTestTabls(1)
	join := makeJoin(t, selectAll(t, tbl1), selectAll(t, tbl2), "test_1.colA", "test_2.colA", 10)
	proj := makeProjection(t, join, "test_2.colC", "test_1.colA", "test_1.colD")
	root := plans.NewUniquePlanNode(plans.NewCrossProductPlanNode(proj, selectAll(t, tbl2)))

	executor := (&ExecutionEngine{}).CreateExecutor(root, newContext())
	var check func(plan plans.Plan, executor Executor)
	check = func(plan plans.Plan, executor Executor) {
		testingpkg.Equals(t, plan.OutputSchema().GetColumnCount(), executor.GetAttrNum())
		testingpkg.SimpleAssert(t, executor.GetPrototype() == plan)
		testingpkg.Equals(t, len(plan.GetChildren()), len(executor.GetChildren()))
		for ii, child := range plan.GetChildren() {
			check(child, executor.GetChildren()[ii])
		}
	}
	check(root, executor)
	testingpkg.Equals(t, uint32(6), executor.GetAttrNum())
}

func TestEndOfStreamIsIdempotent(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", tableT)
	executor := (&ExecutionEngine{}).CreateExecutor(selectAll(t, tbl), newContext())
	executor.Init()
	defer executor.Close()
	for ii := 0; ii < 3; ii++ {
		_, done, err := executor.Next()
		testingpkg.Ok(t, err)
		testingpkg.SimpleAssert(t, !bool(done))
	}
	for ii := 0; ii < 3; ii++ {
		row, done, err := executor.Next()
		testingpkg.Ok(t, err)
		testingpkg.SimpleAssert(t, row == nil && bool(done))
	}
}

func TestConsumerStop(t *testing.T) {
	tbl1, _ := testing_tbl_gen.GenerateTestTabls(2)
	consumer := NewCollectingConsumer(5)
	testingpkg.Ok(t, (&ExecutionEngine{}).ExecuteInto(selectAll(t, tbl1), newContext(), consumer))
	testingpkg.Equals(t, 5, len(consumer.GetTuples()))
}

func TestPrintingConsumer(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", tableT)
	sb := new(strings.Builder)
	plan := selectAll(t, tbl)
	consumer := NewPrintingConsumer(sb, plan.OutputSchema())
	testingpkg.Ok(t, (&ExecutionEngine{}).ExecuteInto(plan, newContext(), consumer))
	testingpkg.Equals(t, "t.c0 | t.c1\n1 | a\n1 | b\n2 | a\n", sb.String())
	testingpkg.Equals(t, 3, consumer.GetCount())
}

func TestPrintExecutorTree(t *testing.T) {
	a := testing_tbl_gen.MakeTable("a", "k\nINT\nUNSORTED\n1\n2\n")
	b := testing_tbl_gen.MakeTable("b", "k\nINT\nUNSORTED\n2\n")
	join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 5)
	executor := (&ExecutionEngine{}).CreateExecutor(join, newContext())
	executor.Init()
	defer executor.Close()

	_, _, err := executor.Next()
	testingpkg.Ok(t, err)
	expected := "JoinExecutor [ a.k = b.k memorylimit=5 block-hash ] buffered=2\n" +
		"  SelectionExecutor [ a ] buffered=0\n" +
		"    - a.k Integer UNSORTED\n" +
		"  SelectionExecutor [ b ] buffered=0\n" +
		"    - b.k Integer UNSORTED\n" +
		"  - a.k|b.k Integer UNSORTED\n" +
		"  - a.k|b.k Integer UNSORTED\n"
	testingpkg.Equals(t, expected, ExecutorTreeString(executor))
}

func TestSelectionWithoutInit(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", tableT)
	executor := (&ExecutionEngine{}).CreateExecutor(selectAll(t, tbl), newContext())
	defer executor.Close()

	row, done, err := executor.Next()
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, !bool(done))
	testingpkg.Equals(t, "(1, a)", row.String())
}

func TestNaNIsNotEqualToNumbers(t *testing.T) {
	tbl := testing_tbl_gen.MakeTable("t", "x\nFLOAT\nUNSORTED\nNaN\n5\nNaN\n")
	pred := expression.NewComparison(expression.NewColumnValue("t.x"), expression.NewConstantValue(types.NewInteger(5)), expression.Equal)
	testingpkg.Equals(t, []string{"(5)"}, testing_util.TuplesToStrings(execute(t, selectAll(t, tbl, pred))))

	// NaN is ordered after every number, so the sorting path keeps a single NaN
	unique := plans.NewUniquePlanNode(selectAll(t, tbl))
	testingpkg.Equals(t, []string{"(5)", "(NaN)"}, testing_util.TuplesToStrings(execute(t, unique)))

	other := testing_tbl_gen.MakeTable("u", "y\nINT\nUNSORTED\n5\n7\n")
	join := makeJoin(t, selectAll(t, tbl), selectAll(t, other), "t.x", "u.y", 2)
	testingpkg.Equals(t, []string{"(5, 5)"}, testing_util.TuplesToStrings(execute(t, join)))
}

func TestJoinLongVarcharGivesSameResultOnBothPaths(t *testing.T) {
	long := strings.Repeat("v", 70000)
	for _, sortStatus := range []string{"ASC", "UNSORTED"} {
		a := testing_tbl_gen.MakeTable("a", "k v\nINT STR\n"+sortStatus+" UNSORTED\n1 "+long+"\n")
		b := testing_tbl_gen.MakeTable("b", "k\nINT\n"+sortStatus+"\n1\n")
		join := makeJoin(t, selectAll(t, a), selectAll(t, b), "a.k", "b.k", 1)

		result := execute(t, join)
		testingpkg.Equals(t, 1, len(result))
		testingpkg.Equals(t, long, result[0].GetValue(1).ToVarchar())
	}
}

func TestBlockHashJoinSpillsToDisk(t *testing.T) {
	dir := t.TempDir()
	tbl1, tbl2 := testing_tbl_gen.GenerateTestTabls(5)
	join := makeJoin(t, selectAll(t, tbl1), selectAll(t, tbl2), "test_1.colA", "test_2.colA", 3)
	testingpkg.SimpleAssert(t, !join.IsMergeJoinable())

	ctx := NewExecutorContext(materialization.NewTmpFileManager(dir))
	executor := (&ExecutionEngine{}).CreateExecutor(join, ctx)
	executor.Init()
	_, _, err := executor.Next()
	testingpkg.Ok(t, err)

	// both inputs are on disk and only the window is resident
	entries, err := os.ReadDir(dir)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 2, len(entries))
	testingpkg.SimpleAssert(t, executor.GetBufferedCount() <= 3)

	executor.Close()
	entries, err = os.ReadDir(dir)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(entries))
	testingpkg.Equals(t, 0, ctx.GetTmpFileManager().GetOpenFileCount())
}
