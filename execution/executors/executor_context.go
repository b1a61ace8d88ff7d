package executors

import (
	"github.com/ryogrid/toydbms/materialization"
)

// ExecutorContext stores all the context necessary to run an executor.
// plans reference their tables directly, so no catalog is needed here.
type ExecutorContext struct {
	tfm *materialization.TmpFileManager
}

// NewExecutorContext creates a context. a nil tfm is replaced by a manager
// which spills to the default directory for temporary files.
func NewExecutorContext(tfm *materialization.TmpFileManager) *ExecutorContext {
	if tfm == nil {
		tfm = materialization.NewTmpFileManager("")
	}
	return &ExecutorContext{tfm}
}

func (e *ExecutorContext) GetTmpFileManager() *materialization.TmpFileManager {
	return e.tfm
}
