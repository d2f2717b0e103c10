package ext2fs

// Volume is the in-memory handle for a mounted file system, created by
// Mount and released by Unmount. It owns the in-memory copy of all
// metadata blocks in one contiguous buffer — the inode bitmap, block
// bitmap, and inode table are accessed through typed views (slices) with a
// lifetime tied to the Volume. The device handle is borrowed, not owned:
// Unmount returns it to the caller.
//
// Volume is not safe for concurrent use; the engine is single-threaded.
type Volume struct {
	dev BlockDevice

	meta      []byte // n_meta blocks, contiguous
	metaDirty bitmap // one bit per metadata block

	inodeMap bitmap // view into meta
	blockMap bitmap // view into meta
	inodes   []byte // view into meta: the inode table region

	inodeMapBase int // block index, relative to volume start
	blockMapBase int
	inodeBase    int

	nBlocks int
	nMeta   int
	nInodes int

	rootInode  int
	ignoreCase bool
	foldCase   bool

	// DefaultUID is the uid given to newly created inodes. DefaultGID is
	// stored but not applied: a new inode takes the gid of its parent
	// directory.
	DefaultUID uint32
	DefaultGID uint32

	dirty bool // latched true after a sync_metadata I/O failure; see ErrDirty

	logf func(format string, args ...any)
}

// Mount parses block 0 of dev as a superblock, loads the metadata region
// described by it, and returns an in-memory Volume handle. Returns
// ErrBadMagic if block 0 is not a recognized superblock.
func Mount(dev BlockDevice, opts ...MountOption) (*Volume, error) {
	head := make([]byte, FSBlockSize)
	if err := dev.ReadAt(0, 1, head); err != nil {
		return nil, ErrIO
	}

	var sb Superblock
	if err := unmarshal(head, &sb); err != nil {
		return nil, ErrBadMagic
	}
	if sb.Magic != FSMagic {
		return nil, ErrBadMagic
	}

	nMeta := 1 + int(sb.InodeMapSize) + int(sb.BlockMapSize) + int(sb.InodeRegionSize)
	meta := make([]byte, nMeta*FSBlockSize)
	if err := dev.ReadAt(0, nMeta, meta); err != nil {
		return nil, ErrIO
	}

	inodeMapBase := 1
	blockMapBase := inodeMapBase + int(sb.InodeMapSize)
	inodeBase := blockMapBase + int(sb.BlockMapSize)
	nInodes := int(sb.InodeRegionSize) * InodesPerBlock

	v := &Volume{
		dev:          dev,
		meta:         meta,
		metaDirty:    make(bitmap, divRoundUp(nMeta, 8)),
		inodeMap:     bitmap(meta[inodeMapBase*FSBlockSize : blockMapBase*FSBlockSize]),
		blockMap:     bitmap(meta[blockMapBase*FSBlockSize : inodeBase*FSBlockSize]),
		inodes:       meta[inodeBase*FSBlockSize:],
		inodeMapBase: inodeMapBase,
		blockMapBase: blockMapBase,
		inodeBase:    inodeBase,
		nBlocks:      int(sb.NumBlocks),
		nMeta:        nMeta,
		nInodes:      nInodes,
		rootInode:    int(sb.RootInode),
		ignoreCase:   sb.IgnoreCase != 0,
		foldCase:     sb.FoldCase != 0,
		DefaultUID:   1001,
		DefaultGID:   125,
	}
	for _, o := range opts {
		o(v)
	}
	v.trace("mount: n_blocks=%d n_meta=%d n_inodes=%d root=%d ignore_case=%v fold_case=%v",
		v.nBlocks, v.nMeta, v.nInodes, v.rootInode, v.ignoreCase, v.foldCase)

	return v, nil
}

// RootInode returns the inode index of the volume's root directory.
func (v *Volume) RootInode() int { return v.rootInode }

// IgnoreCase reports whether directory lookups on this volume are
// ASCII-case-insensitive.
func (v *Volume) IgnoreCase() bool { return v.ignoreCase }

// FoldCase reports whether names are upper-cased at create time on this
// volume.
func (v *Volume) FoldCase() bool { return v.foldCase }

// Unmount flushes metadata and the device, releases in-memory buffers, and
// returns the borrowed device to the caller. It does not close the device.
func (v *Volume) Unmount() (BlockDevice, error) {
	err := v.syncVolume()
	dev := v.dev
	v.meta = nil
	v.metaDirty = nil
	v.inodeMap = nil
	v.blockMap = nil
	v.inodes = nil
	v.dev = nil
	return dev, err
}

func (v *Volume) trace(format string, args ...any) {
	if v.logf != nil {
		v.logf(format, args...)
	}
}

func (v *Volume) readInode(ino int) Inode {
	var in Inode
	// errors are impossible here: inodeSize always divides the in-memory
	// slice evenly and decoding from a byte slice cannot fail.
	_ = unmarshalInode(v.inodes[ino*inodeSize:(ino+1)*inodeSize], &in)
	return in
}

func (v *Volume) writeInode(ino int, in *Inode) {
	in.marshalInto(v.inodes[ino*inodeSize : (ino+1)*inodeSize])
}

func (v *Volume) readBlock(blkno int) ([]byte, error) {
	buf := make([]byte, FSBlockSize)
	if err := v.dev.ReadAt(blkno, 1, buf); err != nil {
		return nil, ErrIO
	}
	return buf, nil
}

func (v *Volume) writeBlock(blkno int, buf []byte) error {
	if err := v.dev.WriteAt(blkno, 1, buf); err != nil {
		return ErrIO
	}
	return nil
}
