package ext2fs

import (
	"io/fs"
)

// Mode bits are POSIX-conventional in value and meaning: the two type bits
// and 9 permission bits this engine actually uses. Only the regular-file and
// directory type bits are defined; no other POSIX file type (symlink,
// device, fifo, socket) is supported.
const (
	S_IFMT  = 0xf000
	S_IFREG = 0x8000
	S_IFDIR = 0x4000

	S_IRWXU = 0700
	S_IRWXG = 0070
	S_IRWXO = 0007
)

// UnixToMode converts a packed on-disk mode into an fs.FileMode.
func UnixToMode(mode uint32) fs.FileMode {
	res := fs.FileMode(mode & 0777)
	if mode&S_IFDIR == S_IFDIR {
		res |= fs.ModeDir
	}
	return res
}

// ModeToUnix is the inverse of UnixToMode.
func ModeToUnix(mode fs.FileMode) uint32 {
	res := uint32(mode.Perm())
	if mode&fs.ModeDir == fs.ModeDir {
		res |= S_IFDIR
	} else {
		res |= S_IFREG
	}
	return res
}

// isDirMode reports whether a packed on-disk mode is a directory.
func isDirMode(mode uint32) bool {
	return mode&S_IFMT == S_IFDIR
}

// isRegMode reports whether a packed on-disk mode is a regular file.
func isRegMode(mode uint32) bool {
	return mode&S_IFMT == S_IFREG
}
