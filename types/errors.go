package types

import "fmt"

// TypeMismatchError is returned when two values of incompatible types are compared
type TypeMismatchError struct {
	Left  TypeID
	Right TypeID
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s is not comparable with %s", e.Left, e.Right)
}

// IsComparable reports whether values of the two types can be compared.
// numeric types are mutually comparable, other types only with themselves.
func IsComparable(left TypeID, right TypeID) bool {
	if left.IsNumeric() && right.IsNumeric() {
		return true
	}
	return left == right && left != Invalid
}

func CheckComparable(left TypeID, right TypeID) error {
	if !IsComparable(left, right) {
		return &TypeMismatchError{left, right}
	}
	return nil
}
