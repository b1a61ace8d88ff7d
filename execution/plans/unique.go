package plans

import "github.com/ryogrid/toydbms/common"

// UniquePlanNode removes duplicated rows. the output schema is the child's
type UniquePlanNode struct {
	*AbstractPlanNode
}

func NewUniquePlanNode(child Plan) Plan {
	common.SH_Assert(child != nil, "unique needs a child")
	return &UniquePlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}}
}

func (p *UniquePlanNode) GetType() PlanType {
	return Unique
}

func (p *UniquePlanNode) GetDebugStr() string {
	return "UniquePlanNode"
}
