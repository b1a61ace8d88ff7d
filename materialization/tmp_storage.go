package materialization

import (
	"io"
	"os"

	"github.com/dsnet/golib/memfile"
	"github.com/pkg/errors"
)

// tmpStorage is where a TmpTupleFile keeps its bytes
type tmpStorage interface {
	io.ReadWriteSeeker
	// Discard drops the content and the backing resource
	Discard() error
}

// diskStorage is a file created by os.CreateTemp. it is removed on Discard.
type diskStorage struct {
	file *os.File
}

func (s *diskStorage) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

func (s *diskStorage) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

func (s *diskStorage) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

func (s *diskStorage) Discard() error {
	name := s.file.Name()
	closeErr := s.file.Close()
	if err := os.Remove(name); err != nil {
		return errors.Wrapf(err, "removal of %s failed", name)
	}
	return errors.Wrapf(closeErr, "close of %s failed", name)
}

// memStorage keeps the bytes in memory like the virtual disk of tests
type memStorage struct {
	*memfile.File
}

func (s *memStorage) Discard() error {
	return s.Truncate(0)
}
