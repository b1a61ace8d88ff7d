package types

import (
	"strings"

	"github.com/pkg/errors"
)

// ColumnSort is the sort order a column is known to follow
type ColumnSort int

const (
	Unordered ColumnSort = iota
	Ascending
	Descending
)

func (s ColumnSort) IsOrdered() bool {
	return s != Unordered
}

func (s ColumnSort) String() string {
	switch s {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	}
	return "UNSORTED"
}

// ParseColumnSort converts a sort status token of a table data file
func ParseColumnSort(token string) (ColumnSort, error) {
	switch strings.ToUpper(token) {
	case "ASC", "ASCENDING":
		return Ascending, nil
	case "DESC", "DESCENDING":
		return Descending, nil
	case "UNSORTED", "UNKNOWN", "NONE", "-":
		return Unordered, nil
	}
	return Unordered, errors.Errorf("unknown sort status token %q", token)
}
