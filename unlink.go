package ext2fs

// doUnlink removes the directory entry named name from dirIno, decrements
// the target inode's link count, and frees the inode and its data block
// once the link count reaches zero. wantDir requires the target to be (or
// not be) a directory, distinguishing an unlink call from a rmdir call.
func (v *Volume) doUnlink(dirIno int, name string, wantDir bool) error {
	if err := v.checkDirty(); err != nil {
		return err
	}
	if name == "." || name == ".." {
		return ErrPermission
	}

	dirBlkno, dirInode, buf, err := v.dirBlockOf(dirIno)
	if err != nil {
		return err
	}

	slot, target, err := lookupEntry(buf, name, v.ignoreCase)
	if err != nil {
		return err
	}

	isDir := target.IsDir == 1
	if wantDir && !isDir {
		return ErrNotDir
	}
	if !wantDir && isDir {
		return ErrIsDir
	}

	targetIno := int(target.Inode)

	if isDir {
		empty, err := v.dirIsEmpty(targetIno)
		if err != nil {
			return err
		}
		if !empty {
			return ErrNotEmpty
		}
	}

	clear := Dirent{}
	putDirentAt(buf, slot, &clear)
	if err := v.writeBlock(dirBlkno, buf); err != nil {
		return ErrIO
	}

	dirInode.Size -= direntSize
	if isDir {
		dirInode.NLink-- // the removed subdirectory's ".."
	}
	v.writeInode(dirIno, &dirInode)
	v.markInode(dirIno)

	targetInode := v.readInode(targetIno)
	targetInode.NLink--
	if isDir {
		targetInode.NLink-- // its own "."
	}

	if targetInode.NLink == 0 {
		if blkno := int(targetInode.Direct[0]); blkno != 0 {
			v.blockMap.clear(blkno)
			v.markBlock(blkno)
		}
		v.inodeMap.clear(targetIno)
		targetInode = Inode{}
	}
	v.writeInode(targetIno, &targetInode)
	v.markInode(targetIno)

	return v.syncMetadata()
}

// dirIsEmpty reports whether dirIno's directory block contains only "."
// and "..".
func (v *Volume) dirIsEmpty(dirIno int) (bool, error) {
	_, _, buf, err := v.dirBlockOf(dirIno)
	if err != nil {
		return false, err
	}
	for i := 0; i < DirentsPerBlock; i++ {
		d := direntAt(buf, i)
		if d.Valid != 1 {
			continue
		}
		name := d.NameString()
		if name != "." && name != ".." {
			return false, nil
		}
	}
	return true, nil
}

// Unlinkfile removes the regular-file entry named name from dirIno.
func (v *Volume) Unlinkfile(dirIno int, name string) error {
	return v.doUnlink(dirIno, name, false)
}

// Rmdir removes the empty subdirectory entry named name from dirIno.
func (v *Volume) Rmdir(dirIno int, name string) error {
	return v.doUnlink(dirIno, name, true)
}

// Unlinkat removes the entry named name from dirIno regardless of its type,
// removing it as a file or as an empty directory based on the directory
// entry's own IsDir flag rather than a caller-supplied expectation.
func (v *Volume) Unlinkat(dirIno int, name string) error {
	if err := v.checkDirty(); err != nil {
		return err
	}
	_, isDir, err := v.Lookup(dirIno, name)
	if err != nil {
		return err
	}
	return v.doUnlink(dirIno, name, isDir)
}
