package ext2fs

// MountOption configures a Volume at Mount time.
type MountOption func(*Volume)

// WithDefaultOwner sets the Volume's DefaultUID and DefaultGID (defaults:
// uid 1001, gid 125). Inodes created on this volume get DefaultUID as their
// uid; their gid is inherited from the parent directory, not DefaultGID.
func WithDefaultOwner(uid, gid uint32) MountOption {
	return func(v *Volume) {
		v.DefaultUID = uid
		v.DefaultGID = gid
	}
}

// WithLogger installs a logger used to trace mount steps; Format and the
// metadata sync do not trace. A nil logger (the default) disables tracing.
func WithLogger(logf func(format string, args ...any)) MountOption {
	return func(v *Volume) {
		v.logf = logf
	}
}

// FormatOption configures Format.
type FormatOption func(*formatConfig)

type formatConfig struct {
	rootUID, rootGID uint32
}

// WithFormatOwner sets the uid/gid recorded on the freshly-formatted root
// directory inode. Defaults to 1001/125.
func WithFormatOwner(uid, gid uint32) FormatOption {
	return func(c *formatConfig) {
		c.rootUID = uid
		c.rootGID = gid
	}
}
