package ext2fs

import "time"

// rootInodeIndex is the inode index of the root directory, fixed by
// convention.
const rootInodeIndex = 1

// Format writes a complete, valid volume image to dev, occupying blocks
// [0, n_meta+1). ignoreCase and foldCase configure the directory naming
// policy recorded in the superblock; foldCase implies ignoreCase.
func Format(dev BlockDevice, ignoreCase, foldCase bool, opts ...FormatOption) error {
	cfg := formatConfig{rootUID: 1001, rootGID: 125}
	for _, o := range opts {
		o(&cfg)
	}

	nBlocks := dev.NumBlocks()
	nInodes := divRoundUp(nBlocks, 4)
	nInoMapBlks := divRoundUp(nInodes, BitsPerBlock)
	nInoBlks := divRoundUp(nInodes*inodeSize, FSBlockSize)
	nMapBlks := divRoundUp(nBlocks, BitsPerBlock)
	nMeta := 1 + nInoMapBlks + nMapBlks + nInoBlks
	rootBlkno := nMeta // root directory data block sits right after metadata

	meta := make([]byte, nMeta*FSBlockSize)

	sb := &Superblock{
		Magic:           FSMagic,
		InodeMapSize:    uint32(nInoMapBlks),
		BlockMapSize:    uint32(nMapBlks),
		InodeRegionSize: uint32(nInoBlks),
		NumBlocks:       uint32(nBlocks),
		RootInode:       rootInodeIndex,
	}
	if foldCase {
		ignoreCase = true
	}
	if ignoreCase {
		sb.IgnoreCase = 1
	}
	if foldCase {
		sb.FoldCase = 1
	}
	copy(meta[:FSBlockSize], sb.marshalBlock())

	inodeMapBase := 1
	inodeMap := bitmap(meta[inodeMapBase*FSBlockSize : (inodeMapBase+nInoMapBlks)*FSBlockSize])
	inodeMap.set(0) // inode 0 permanently reserved, never allocated
	inodeMap.set(rootInodeIndex)

	blockMapBase := inodeMapBase + nInoMapBlks
	blockMap := bitmap(meta[blockMapBase*FSBlockSize : (blockMapBase+nMapBlks)*FSBlockSize])
	for i := 0; i <= nMeta; i++ {
		blockMap.set(i) // metadata blocks plus the root directory data block
	}

	inodeBase := blockMapBase + nMapBlks
	inodeTable := meta[inodeBase*FSBlockSize:]

	now := int32(time.Now().Unix())
	root := Inode{
		UID:   cfg.rootUID,
		GID:   cfg.rootGID,
		Mode:  S_IFDIR | 0755,
		CTime: now,
		MTime: now,
		Size:  0,
		NLink: 0,
	}
	root.Direct[0] = uint32(rootBlkno)

	// root directory block: "." and ".." both link to root, since root is
	// its own parent.
	rootDir := make([]byte, FSBlockSize)
	dot := Dirent{Valid: 1, IsDir: 1, Inode: rootInodeIndex}
	dot.SetName(".")
	dotdot := Dirent{Valid: 1, IsDir: 1, Inode: rootInodeIndex}
	dotdot.SetName("..")
	dot.marshalInto(rootDir[0*direntSize:])
	dotdot.marshalInto(rootDir[1*direntSize:])

	if err := dev.WriteAt(rootBlkno, 1, rootDir); err != nil {
		return ErrIO
	}

	root.Size += 2 * direntSize
	root.NLink += 2 // "." and the self-referential ".."
	root.marshalInto(inodeTable[rootInodeIndex*inodeSize:])

	if err := dev.WriteAt(0, nMeta, meta); err != nil {
		return ErrIO
	}

	return nil
}
