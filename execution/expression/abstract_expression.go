package expression

type AbstractExpression struct {
	/** The children of this expression. Note that the order of appearance of children may matter. */
	children [2]Expression
}

/** @return the child_idx'th child of this expression */
func (e *AbstractExpression) GetChildAt(child_idx uint32) Expression {
	if int(child_idx) >= len(e.children) {
		return nil
	}
	return e.children[child_idx]
}
