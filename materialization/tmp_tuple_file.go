package materialization

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/common"
	"github.com/ryogrid/toydbms/storage/tuple"
)

// TmpTupleFile is a temporary file of serialized tuples used to spill
// operator input which must be read more than once.
// tuples are appended first and then read sequentially after Rewind.
// only the I/O buffers are held in memory.
type TmpTupleFile struct {
	id      uint32
	storage tmpStorage
	writer  *bufio.Writer
	reader  *bufio.Reader // nil while appending
	count   uint32
	size    int64
	closed  bool
	manager *TmpFileManager
}

func newTmpTupleFile(id uint32, storage tmpStorage, manager *TmpFileManager) *TmpTupleFile {
	return &TmpTupleFile{
		id:      id,
		storage: storage,
		writer:  bufio.NewWriterSize(storage, common.TmpFileInitialCapacity),
		manager: manager,
	}
}

func (f *TmpTupleFile) GetID() uint32 {
	return f.id
}

// Append writes tuple_ at the end of the file
func (f *TmpTupleFile) Append(tuple_ *tuple.Tuple) error {
	if f.closed {
		return errors.Errorf("tmp file %d is already closed", f.id)
	}
	if f.reader != nil {
		if _, err := f.storage.Seek(0, io.SeekEnd); err != nil {
			return errors.Wrapf(err, "seek on tmp file %d failed", f.id)
		}
		f.reader = nil
	}
	if err := tuple_.SerializeTo(f.writer); err != nil {
		return errors.WithMessagef(err, "append to tmp file %d", f.id)
	}
	f.count++
	f.size += int64(tuple.TupleSizeOffsetInTmpFile) + int64(tuple_.Size())
	return nil
}

// Count returns the number of appended tuples
func (f *TmpTupleFile) Count() uint32 {
	return f.count
}

// Size returns the file size in bytes
func (f *TmpTupleFile) Size() int64 {
	if f.closed {
		return 0
	}
	return f.size
}

// Rewind positions the read offset at the first tuple
func (f *TmpTupleFile) Rewind() error {
	if f.closed {
		return errors.Errorf("tmp file %d is already closed", f.id)
	}
	if err := f.writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush of tmp file %d failed", f.id)
	}
	if _, err := f.storage.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "rewind of tmp file %d failed", f.id)
	}
	f.reader = bufio.NewReaderSize(f.storage, common.TmpFileInitialCapacity)
	return nil
}

// Next reads the tuple at the read offset. it returns nil and no error at the end.
func (f *TmpTupleFile) Next() (*tuple.Tuple, error) {
	if f.closed {
		return nil, errors.Errorf("tmp file %d is already closed", f.id)
	}
	if f.reader == nil {
		return nil, errors.Errorf("tmp file %d is not rewound", f.id)
	}
	ret, err := tuple.DeserializeFrom(f.reader)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "read from tmp file %d", f.id)
	}
	return ret, nil
}

// Close drops the file content and its backing file. closing twice is allowed
func (f *TmpTupleFile) Close() {
	if f.closed {
		return
	}
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "tmp file %d closed: %d tuples, %d bytes\n", f.id, f.count, f.size)
	if err := f.storage.Discard(); err != nil {
		common.ShPrintf(common.WARN, "tmp file %d: %v\n", f.id, err)
	}
	f.storage = nil
	f.writer = nil
	f.reader = nil
	f.closed = true
	if f.manager != nil {
		f.manager.release(f.id)
	}
}
