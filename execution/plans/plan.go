package plans

import (
	"github.com/ryogrid/toydbms/storage/table/schema"
)

type PlanType int

const (
	CrossProduct PlanType = iota
	Join
	Projection
	Selection
	Unique
)

func (t PlanType) String() string {
	switch t {
	case CrossProduct:
		return "CrossProduct"
	case Join:
		return "Join"
	case Projection:
		return "Projection"
	case Selection:
		return "Selection"
	case Unique:
		return "Unique"
	}
	return "Unknown"
}

// Plan is a node of a logical plan tree. nodes are immutable once built
// and exclusively own their children.
type Plan interface {
	OutputSchema() *schema.Schema
	// GetLeft returns nil when the node has no child
	GetLeft() Plan
	// GetRight returns nil when the node has less than two children
	GetRight() Plan
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
	GetDebugStr() string
}

type AbstractPlanNode struct {
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) OutputSchema() *schema.Schema {
	return p.outputSchema
}

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	if int(childIndex) >= len(p.children) {
		return nil
	}
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetLeft() Plan {
	return p.GetChildAt(0)
}

func (p *AbstractPlanNode) GetRight() Plan {
	return p.GetChildAt(1)
}

func (p *AbstractPlanNode) GetChildren() []Plan {
	ret := make([]Plan, len(p.children))
	copy(ret, p.children)
	return ret
}
