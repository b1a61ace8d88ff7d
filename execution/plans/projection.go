package plans

import (
	"strings"

	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/storage/table/schema"
)

type ProjectionPlanNode struct {
	*AbstractPlanNode
	offsets []string
	// positions of the retained columns in the child schema
	colIdxs []uint32
}

// NewProjectionPlanNode retains the named columns of child in the given order
func NewProjectionPlanNode(child Plan, offsets []string) (*ProjectionPlanNode, error) {
	common.SH_Assert(child != nil, "projection needs a child")
	outSchema, colIdxs, err := schema.Project(child.OutputSchema(), offsets)
	if err != nil {
		return nil, err
	}
	copied := make([]string, len(offsets))
	copy(copied, offsets)
	return &ProjectionPlanNode{&AbstractPlanNode{outSchema, []Plan{child}}, copied, colIdxs}, nil
}

func (p *ProjectionPlanNode) GetType() PlanType {
	return Projection
}

func (p *ProjectionPlanNode) GetColIdxs() []uint32 {
	ret := make([]uint32, len(p.colIdxs))
	copy(ret, p.colIdxs)
	return ret
}

func (p *ProjectionPlanNode) GetDebugStr() string {
	return "ProjectionPlanNode [ " + strings.Join(p.offsets, ", ") + " ]"
}
