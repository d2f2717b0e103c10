package ext2fs

// markInode marks the inode bitmap block and inode table block covering ino
// as dirty.
func (v *Volume) markInode(ino int) {
	v.metaDirty.set(v.inodeMapBase + ino/BitsPerBlock)
	v.metaDirty.set(v.inodeBase + ino/InodesPerBlock)
}

// markBlock marks the block bitmap block covering blk as dirty.
func (v *Volume) markBlock(blk int) {
	v.metaDirty.set(v.blockMapBase + blk/BitsPerBlock)
}

// syncMetadata writes every dirty metadata block to the device and clears
// its dirty bit. Propagates the first I/O error and latches the volume
// dirty: see ErrDirty.
func (v *Volume) syncMetadata() error {
	for i := 0; i < v.nMeta; i++ {
		if !v.metaDirty.test(i) {
			continue
		}
		block := v.meta[i*FSBlockSize : (i+1)*FSBlockSize]
		if err := v.dev.WriteAt(i, 1, block); err != nil {
			v.dirty = true
			return ErrIO
		}
		v.metaDirty.clear(i)
	}
	return nil
}

// syncVolume runs syncMetadata then asks the device to flush every block.
func (v *Volume) syncVolume() error {
	if err := v.syncMetadata(); err != nil {
		return err
	}
	if err := v.dev.Flush(0, v.nBlocks); err != nil {
		v.dirty = true
		return ErrIO
	}
	return nil
}

// checkDirty returns ErrDirty if a previous sync failed, refusing further
// operations until the caller re-mounts. See ErrDirty.
func (v *Volume) checkDirty() error {
	if v.dirty {
		return ErrDirty
	}
	return nil
}
