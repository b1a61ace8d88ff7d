package expression

import (
	"github.com/ryogrid/toydbms/storage/table/schema"
	"github.com/ryogrid/toydbms/storage/tuple"
)

// PredicateIterator walks an ordered predicate list and can be rewound.
// the list is shared, not copied. it must not be modified while iterated.
type PredicateIterator struct {
	predicates []Expression
	pos        int
}

func NewPredicateIterator(predicates []Expression) *PredicateIterator {
	return &PredicateIterator{predicates, 0}
}

// Next returns the end flag and the next predicate.
// when the flag is true the sequence is exhausted and the predicate is nil.
func (it *PredicateIterator) Next() (bool, Expression) {
	if it.pos >= len(it.predicates) {
		return true, nil
	}
	ret := it.predicates[it.pos]
	it.pos++
	return false, ret
}

// Reset rewinds the iterator to the first predicate
func (it *PredicateIterator) Reset() {
	it.pos = 0
}

// EvaluateConjunction reports whether every predicate holds for the tuple.
// the iterator is reset first; evaluation stops at the first false predicate.
func (it *PredicateIterator) EvaluateConjunction(tuple_ *tuple.Tuple, schema_ *schema.Schema) (bool, error) {
	it.Reset()
	for end, pred := it.Next(); !end; end, pred = it.Next() {
		ok, err := evaluateBoolean(pred, tuple_, schema_)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Conjunction folds the predicates into one AND expression. nil for an empty list
func Conjunction(predicates []Expression) Expression {
	var ret Expression
	for _, pred := range predicates {
		ret = AppendLogicalCondition(ret, AND, pred)
	}
	return ret
}
