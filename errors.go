package ext2fs

import "errors"

// Package-specific error variables that can be used with errors.Is() for
// error handling. Names follow POSIX error semantics without reusing the
// host OS's error identifiers.
var (
	// ErrBadMagic is returned by Mount when block 0 does not carry a
	// recognized superblock magic.
	ErrBadMagic = errors.New("ext2fs: not a formatted volume")

	// ErrDeviceSize is returned by a BlockDevice when a read or write
	// range falls outside [0, NumBlocks).
	ErrDeviceSize = errors.New("ext2fs: block range out of bounds")

	// ErrDeviceUnavailable is returned by a BlockDevice after it has
	// failed or been closed.
	ErrDeviceUnavailable = errors.New("ext2fs: block device unavailable")

	// ErrNameTooLong is returned when a name does not fit in a dirent's
	// name field.
	ErrNameTooLong = errors.New("ext2fs: name too long")

	// ErrNotDir is returned when an operation that requires a directory
	// inode is given something else.
	ErrNotDir = errors.New("ext2fs: not a directory")

	// ErrIsDir is returned when an operation that requires a regular
	// file inode is given a directory, or when linking a directory.
	ErrIsDir = errors.New("ext2fs: is a directory")

	// ErrNotFound is returned when a named directory entry does not
	// exist.
	ErrNotFound = errors.New("ext2fs: no such entry")

	// ErrExists is returned when a named directory entry already
	// exists.
	ErrExists = errors.New("ext2fs: entry exists")

	// ErrNotEmpty is returned by Rmdir/Unlinkat when the target
	// subdirectory has entries beyond "." and "..".
	ErrNotEmpty = errors.New("ext2fs: directory not empty")

	// ErrNoSpace is returned when no free inode, block, or directory
	// slot is available.
	ErrNoSpace = errors.New("ext2fs: no space left")

	// ErrTooBig is returned when a write or truncate would exceed the
	// single-block limit this engine enforces.
	ErrTooBig = errors.New("ext2fs: file too large")

	// ErrInvalid is returned for malformed arguments: a negative offset
	// to Pread or Pwrite.
	ErrInvalid = errors.New("ext2fs: invalid argument")

	// ErrPermission is returned when an operation targets "." or "..".
	ErrPermission = errors.New("ext2fs: operation not permitted")

	// ErrIO is returned when the underlying block device fails a read
	// or write the engine issued.
	ErrIO = errors.New("ext2fs: i/o error")

	// ErrDirty is returned by every Volume operation except Statfs and
	// Unmount once a prior metadata sync has failed: the volume refuses
	// both reads and mutations rather than let in-memory and on-disk
	// state silently diverge further.
	ErrDirty = errors.New("ext2fs: volume metadata is out of sync with the device")
)
