package plans

import (
	"fmt"

	pair "github.com/notEpsilon/go-pair"
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/storage/table/column"
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/types"
)

/**
 * JoinPlanNode is an equi-join of two children on one key column of each side.
 * By convention, the left child (index 0) is the build side whose rows are buffered,
 * and the right child (index 1) is probed against them.
 * At most memoryLimit build side rows may be held at once by the executor.
 */
type JoinPlanNode struct {
	*AbstractPlanNode
	leftOffset  string
	rightOffset string
	leftKeyIdx  uint32
	rightKeyIdx uint32
	memoryLimit uint32
	mergeable   bool
}

func NewJoinPlanNode(left Plan, right Plan, leftOffset string, rightOffset string, memoryLimit int) (*JoinPlanNode, error) {
	common.SH_Assert(left != nil && right != nil, "join needs two children")
	if memoryLimit <= 0 {
		return nil, errors.Errorf("memory limit of join must be positive: %d", memoryLimit)
	}
	if leftOffset == rightOffset {
		return nil, schema.NewSchemaError(schema.DuplicateOffset, leftOffset)
	}

	leftSchema := left.OutputSchema()
	rightSchema := right.OutputSchema()
	leftKeyIdx, err := leftSchema.GetColIndex(leftOffset)
	if err != nil {
		return nil, err
	}
	rightKeyIdx, err := rightSchema.GetColIndex(rightOffset)
	if err != nil {
		return nil, err
	}

	leftKey := leftSchema.GetColumn(leftKeyIdx)
	rightKey := rightSchema.GetColumn(rightKeyIdx)
	mergeable := leftKey.GetSortOrder().IsOrdered() && leftKey.GetSortOrder() == rightKey.GetSortOrder()

	// both key columns denote the same value after the join
	keyAliases := leftKey.GetAliases().Union(rightKey.GetAliases())
	columns := make([]*column.Column, 0, leftSchema.GetColumnCount()+rightSchema.GetColumnCount())
	appendSide := func(from *schema.Schema, keyIdx uint32) {
		for ii, col := range from.GetColumns() {
			sortOrder := types.Unordered
			if uint32(ii) == keyIdx {
				if mergeable {
					sortOrder = col.GetSortOrder()
				}
				columns = append(columns, column.NewColumnWithAliases(col.GetColumnName(), keyAliases, col.GetType(), sortOrder))
				continue
			}
			columns = append(columns, col.Copy(sortOrder))
		}
	}
	appendSide(leftSchema, leftKeyIdx)
	appendSide(rightSchema, rightKeyIdx)

	return &JoinPlanNode{&AbstractPlanNode{schema.NewSchema(columns), []Plan{left, right}},
		leftOffset, rightOffset, leftKeyIdx, rightKeyIdx, uint32(memoryLimit), mergeable}, nil
}

func (p *JoinPlanNode) GetType() PlanType {
	return Join
}

func (p *JoinPlanNode) GetLeftOffset() string {
	return p.leftOffset
}

func (p *JoinPlanNode) GetRightOffset() string {
	return p.rightOffset
}

// KeyIndexes returns the key column positions in the left and right child schemas
func (p *JoinPlanNode) KeyIndexes() pair.Pair[uint32, uint32] {
	return pair.Pair[uint32, uint32]{First: p.leftKeyIdx, Second: p.rightKeyIdx}
}

func (p *JoinPlanNode) GetMemoryLimit() uint32 {
	return p.memoryLimit
}

// IsMergeJoinable reports whether both key columns are sorted the same way
func (p *JoinPlanNode) IsMergeJoinable() bool {
	return p.mergeable
}

func (p *JoinPlanNode) GetDebugStr() string {
	return fmt.Sprintf("JoinPlanNode [ %s = %s memorylimit=%d ]", p.leftOffset, p.rightOffset, p.memoryLimit)
}
