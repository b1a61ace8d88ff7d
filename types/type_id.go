// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"strings"

	"github.com/pkg/errors"
)

type TypeID int

// Every possible value type
const (
	Invalid TypeID = iota
	Boolean
	Integer
	Float
	Varchar
)

// Size returns the fixed serialized size (null flag included). Varchar has no fixed size.
func (t TypeID) Size() uint32 {
	switch t {
	case Integer:
		return 1 + 4
	case Float:
		return 1 + 4
	case Boolean:
		return 1 + 1
	}
	return 0
}

func (t TypeID) IsNumeric() bool {
	return t == Integer || t == Float
}

func (t TypeID) String() string {
	switch t {
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Varchar:
		return "Varchar"
	}
	return "Invalid"
}

// ParseTypeID converts a type token of a table data file ("INT", "FLOAT", "STR", "BOOL")
func ParseTypeID(token string) (TypeID, error) {
	switch strings.ToUpper(token) {
	case "INT", "INTEGER":
		return Integer, nil
	case "FLOAT", "REAL":
		return Float, nil
	case "STR", "STRING", "VARCHAR":
		return Varchar, nil
	case "BOOL", "BOOLEAN":
		return Boolean, nil
	}
	return Invalid, errors.Errorf("unknown type token %q", token)
}
