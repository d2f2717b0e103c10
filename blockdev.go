package ext2fs

import (
	"io"
	"os"
)

// BlockDevice is the opaque fixed-size-block I/O endpoint this engine is
// layered over.
type BlockDevice interface {
	// NumBlocks returns the total number of fixed-size blocks on the
	// device.
	NumBlocks() int

	// ReadAt reads count blocks starting at block first into buf, which
	// must be at least count*FSBlockSize bytes. Returns ErrDeviceSize if
	// the range falls outside [0, NumBlocks()), ErrDeviceUnavailable if
	// the device has failed or been closed.
	ReadAt(first, count int, buf []byte) error

	// WriteAt writes count blocks starting at block first from buf.
	// Same range/availability errors as ReadAt.
	WriteAt(first, count int, buf []byte) error

	// Flush commits count blocks starting at block first to stable
	// storage.
	Flush(first, count int) error

	// Close releases the device. After Close, every read, write, and
	// flush returns ErrDeviceUnavailable.
	Close() error
}

// MemoryDevice is an in-memory BlockDevice: the engine's test-facing glue
// and the backing store for quick-format workflows that never touch a
// real file.
type MemoryDevice struct {
	blocks []byte
	nblks  int
	failed bool
	closed bool
}

var _ BlockDevice = (*MemoryDevice)(nil)

// NewMemoryDevice allocates a zero-filled in-memory device of nblks blocks.
func NewMemoryDevice(nblks int) *MemoryDevice {
	return &MemoryDevice{
		blocks: make([]byte, nblks*FSBlockSize),
		nblks:  nblks,
	}
}

func (m *MemoryDevice) NumBlocks() int { return m.nblks }

func (m *MemoryDevice) available() bool {
	return !m.failed && !m.closed
}

func (m *MemoryDevice) bounds(first, count int) bool {
	return first >= 0 && count >= 0 && first+count <= m.nblks
}

func (m *MemoryDevice) ReadAt(first, count int, buf []byte) error {
	if !m.available() {
		return ErrDeviceUnavailable
	}
	if !m.bounds(first, count) {
		return ErrDeviceSize
	}
	off := first * FSBlockSize
	n := count * FSBlockSize
	copy(buf, m.blocks[off:off+n])
	return nil
}

func (m *MemoryDevice) WriteAt(first, count int, buf []byte) error {
	if !m.available() {
		return ErrDeviceUnavailable
	}
	if !m.bounds(first, count) {
		return ErrDeviceSize
	}
	off := first * FSBlockSize
	n := count * FSBlockSize
	copy(m.blocks[off:off+n], buf[:n])
	return nil
}

func (m *MemoryDevice) Flush(first, count int) error {
	if !m.available() {
		return ErrDeviceUnavailable
	}
	return nil
}

func (m *MemoryDevice) Close() error {
	m.blocks = nil
	m.closed = true
	return nil
}

// Fail forces the device into the unavailable state, so tests can
// exercise I/O-error paths.
func (m *MemoryDevice) Fail() {
	m.failed = true
	m.blocks = nil
}

// FileDevice is a BlockDevice backed by a real file through io.ReaderAt/
// io.WriterAt.
type FileDevice struct {
	f      *os.File
	nblks  int
	closed bool
}

var _ BlockDevice = (*FileDevice)(nil)

// OpenFileDevice opens an existing file as a block device. The file's size
// must be an exact multiple of FSBlockSize.
func OpenFileDevice(path string) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileDevice{f: f, nblks: int(st.Size() / FSBlockSize)}, nil
}

// CreateFileDevice creates a new zero-filled file device of nblks blocks.
func CreateFileDevice(path string, nblks int) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(nblks) * FSBlockSize); err != nil {
		f.Close()
		return nil, err
	}
	return &FileDevice{f: f, nblks: nblks}, nil
}

func (d *FileDevice) NumBlocks() int { return d.nblks }

func (d *FileDevice) bounds(first, count int) bool {
	return first >= 0 && count >= 0 && first+count <= d.nblks
}

func (d *FileDevice) ReadAt(first, count int, buf []byte) error {
	if d.closed {
		return ErrDeviceUnavailable
	}
	if !d.bounds(first, count) {
		return ErrDeviceSize
	}
	_, err := d.f.ReadAt(buf[:count*FSBlockSize], int64(first)*FSBlockSize)
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (d *FileDevice) WriteAt(first, count int, buf []byte) error {
	if d.closed {
		return ErrDeviceUnavailable
	}
	if !d.bounds(first, count) {
		return ErrDeviceSize
	}
	_, err := d.f.WriteAt(buf[:count*FSBlockSize], int64(first)*FSBlockSize)
	return err
}

func (d *FileDevice) Flush(first, count int) error {
	if d.closed {
		return ErrDeviceUnavailable
	}
	return d.f.Sync()
}

func (d *FileDevice) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.f.Close()
}
