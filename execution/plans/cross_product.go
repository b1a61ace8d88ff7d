package plans

import (
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/storage/table/column"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/types"
)

// CrossProductPlanNode pairs every left row with every right row.
// output columns are the left columns followed by the right columns.
// output is left-major, so only the left sort orders survive.
type CrossProductPlanNode struct {
	*AbstractPlanNode
}

func NewCrossProductPlanNode(left Plan, right Plan) Plan {
	common.SH_Assert(left != nil && right != nil, "cross product needs two children")
	outSchema := schema.Concat(left.OutputSchema(), right.OutputSchema(),
		func(_ uint32, col *column.Column) types.ColumnSort { return col.GetSortOrder() },
		func(_ uint32, _ *column.Column) types.ColumnSort { return types.Unordered })
	return &CrossProductPlanNode{&AbstractPlanNode{outSchema, []Plan{left, right}}}
}

func (p *CrossProductPlanNode) GetType() PlanType {
	return CrossProduct
}

func (p *CrossProductPlanNode) GetDebugStr() string {
	return "CrossProductPlanNode"
}
