package materialization

import (
	"os"

	"github.com/dsnet/golib/memfile"
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
)

// TmpFileManager hands out temporary tuple files for one execution
// and tracks the ones which are not closed yet.
// files live in dir on disk unless the manager is virtual.
type TmpFileManager struct {
	nextID  uint32
	files   map[uint32]*TmpTupleFile
	dir     string
	virtual bool
}

// NewTmpFileManager creates a manager whose files are created in dir.
// an empty dir means the default directory for temporary files.
func NewTmpFileManager(dir string) *TmpFileManager {
	return &TmpFileManager{0, make(map[uint32]*TmpTupleFile), dir, false}
}

// NewVirtualTmpFileManager creates a manager whose files are kept in memory (for testing)
func NewVirtualTmpFileManager() *TmpFileManager {
	return &TmpFileManager{0, make(map[uint32]*TmpTupleFile), "", true}
}

func (m *TmpFileManager) IsVirtual() bool {
	return m.virtual
}

func (m *TmpFileManager) NewTmpTupleFile() (*TmpTupleFile, error) {
	var storage tmpStorage
	if m.virtual {
		storage = &memStorage{memfile.New(make([]byte, 0, common.TmpFileInitialCapacity))}
	} else {
		f, err := os.CreateTemp(m.dir, "toydbms-spill-*.tmp")
		if err != nil {
			return nil, errors.Wrap(err, "tmp file creation failed")
		}
		storage = &diskStorage{f}
	}

	ret := newTmpTupleFile(m.nextID, storage, m)
	m.files[m.nextID] = ret
	m.nextID++
	return ret, nil
}

// GetOpenFileCount returns the count of files which are not closed
func (m *TmpFileManager) GetOpenFileCount() int {
	return len(m.files)
}

func (m *TmpFileManager) release(id uint32) {
	delete(m.files, id)
}

// CloseAll closes every file still open
func (m *TmpFileManager) CloseAll() {
	if len(m.files) > 0 {
		common.ShPrintf(common.DEBUG_INFO, "closing %d tmp files left open\n", len(m.files))
	}
	for _, f := range m.files {
		f.Close()
	}
}
