package ext2fs

import "time"

// Attr is the attribute view returned by Stat.
type Attr struct {
	Ino     int
	UID     uint32
	GID     uint32
	Mode    uint32
	Size    uint32
	BlkSize uint32 // FSBlockSize
	Blocks  uint32 // 512-byte units occupied, rounded up to a full data block
	NLink   uint32
	CTime   time.Time
	MTime   time.Time
	ATime   time.Time // this engine does not track access time; equal to MTime
}

// Stat returns the attributes of ino.
func (v *Volume) Stat(ino int) (Attr, error) {
	if err := v.checkDirty(); err != nil {
		return Attr{}, err
	}
	in := v.readInode(ino)
	blocks := uint32(0)
	if in.Size > 0 {
		blocks = uint32(divRoundUp(int(in.Size), FSBlockSize)) * (FSBlockSize / 512)
	}
	mtime := time.Unix(int64(in.MTime), 0)
	return Attr{
		Ino:     ino,
		UID:     in.UID,
		GID:     in.GID,
		Mode:    in.Mode,
		Size:    in.Size,
		BlkSize: FSBlockSize,
		Blocks:  blocks,
		NLink:   in.NLink,
		CTime:   time.Unix(int64(in.CTime), 0),
		MTime:   mtime,
		ATime:   mtime,
	}, nil
}

// Chmod replaces the permission bits of ino, leaving its type bits
// untouched.
func (v *Volume) Chmod(ino int, perm uint32) error {
	if err := v.checkDirty(); err != nil {
		return err
	}
	in := v.readInode(ino)
	in.Mode = (in.Mode & S_IFMT) | (perm & 0777)
	v.writeInode(ino, &in)
	v.markInode(ino)
	return v.syncMetadata()
}

// Chown sets ino's owning uid and gid. Passing a negative value for either
// leaves that field unchanged, matching chown(2)'s -1 convention.
func (v *Volume) Chown(ino int, uid, gid int32) error {
	if err := v.checkDirty(); err != nil {
		return err
	}
	in := v.readInode(ino)
	if uid >= 0 {
		in.UID = uint32(uid)
	}
	if gid >= 0 {
		in.GID = uint32(gid)
	}
	v.writeInode(ino, &in)
	v.markInode(ino)
	return v.syncMetadata()
}

// Utime sets ino's modification time.
func (v *Volume) Utime(ino int, mtime time.Time) error {
	if err := v.checkDirty(); err != nil {
		return err
	}
	in := v.readInode(ino)
	in.MTime = int32(mtime.Unix())
	v.writeInode(ino, &in)
	v.markInode(ino)
	return v.syncMetadata()
}

// Statfs describes the overall volume.
type Statfs struct {
	BlockSize   uint32
	TotalBlocks uint32
	FreeBlocks  uint32
	BAvail      uint32 // blocks available to unprivileged callers; equal to FreeBlocks
	TotalInodes uint32
	FreeInodes  uint32
	FAvail      uint32 // inodes available to unprivileged callers; equal to FreeInodes
	NameMax     uint32 // longest name a dirent can hold, excluding the NUL terminator
}

// Statfs reports aggregate space and inode usage for the mounted volume.
func (v *Volume) Statfs() Statfs {
	freeBlocks := v.blockMap.countClear(v.nBlocks)
	freeInodes := v.inodeMap.countClear(v.nInodes)
	return Statfs{
		BlockSize:   FSBlockSize,
		TotalBlocks: uint32(v.nBlocks),
		FreeBlocks:  uint32(freeBlocks),
		BAvail:      uint32(freeBlocks),
		TotalInodes: uint32(v.nInodes),
		FreeInodes:  uint32(freeInodes),
		FAvail:      uint32(freeInodes),
		NameMax:     FSFilenameSize - 1,
	}
}
