package executors

import "github.com/pkg/errors"

// ErrJoinMemoryExceeded is returned when an equal-key group of the build side
// of a join has more rows than the join's memory limit
var ErrJoinMemoryExceeded = errors.New("join memory limit exceeded")

// ErrStop is returned by a ResultConsumer which wants no more rows.
// draining stops without error.
var ErrStop = errors.New("stop consuming")
