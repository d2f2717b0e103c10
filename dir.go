package ext2fs

import "time"

// asciiEqualFold reports whether a and b are equal under ASCII case
// folding: a byte-wise strcasecmp, not full Unicode casefold.
func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// asciiUpper upper-cases s in ASCII: toupper applied byte by byte.
func asciiUpper(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if 'a' <= c && c <= 'z' {
			buf[i] = c - ('a' - 'A')
		}
	}
	return string(buf)
}

func namesEqual(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return asciiEqualFold(a, b)
	}
	return a == b
}

// dirBlockOf returns the block number and contents of dirIno's one data
// block. Returns ErrNotDir if dirIno is not a directory, ErrNoSpace if it
// has no data block allocated yet, ErrIO on device failure.
func (v *Volume) dirBlockOf(dirIno int) (int, Inode, []byte, error) {
	in := v.readInode(dirIno)
	if !isDirMode(in.Mode) {
		return 0, in, nil, ErrNotDir
	}
	blkno := int(in.Direct[0])
	if blkno == 0 {
		return 0, in, nil, ErrNoSpace
	}
	buf, err := v.readBlock(blkno)
	if err != nil {
		return 0, in, nil, ErrIO
	}
	return blkno, in, buf, nil
}

func direntAt(buf []byte, i int) Dirent {
	var d Dirent
	_ = unmarshalDirent(buf[i*direntSize:(i+1)*direntSize], &d)
	return d
}

func putDirentAt(buf []byte, i int, d *Dirent) {
	d.marshalInto(buf[i*direntSize:])
}

// lookupEntry scans a directory block for name under the given case
// policy. Returns the slot index and decoded entry, or ErrNotFound.
func lookupEntry(buf []byte, name string, ignoreCase bool) (int, Dirent, error) {
	for i := 0; i < DirentsPerBlock; i++ {
		d := direntAt(buf, i)
		if d.Valid == 1 && namesEqual(d.NameString(), name, ignoreCase) {
			return i, d, nil
		}
	}
	return -1, Dirent{}, ErrNotFound
}

// freeEntrySlot scans every slot (to catch duplicates) and remembers the
// first invalid one.
func freeEntrySlot(buf []byte, name string, ignoreCase bool) (int, error) {
	slot := -1
	for i := 0; i < DirentsPerBlock; i++ {
		d := direntAt(buf, i)
		if d.Valid == 1 {
			if namesEqual(d.NameString(), name, ignoreCase) {
				return -1, ErrExists
			}
		} else if slot == -1 {
			slot = i
		}
	}
	if slot == -1 {
		return -1, ErrNoSpace
	}
	return slot, nil
}

// Lookup resolves name within directory dirIno and returns the matching
// inode index and whether it is itself a directory.
func (v *Volume) Lookup(dirIno int, name string) (int, bool, error) {
	if err := v.checkDirty(); err != nil {
		return 0, false, err
	}
	_, _, buf, err := v.dirBlockOf(dirIno)
	if err != nil {
		return 0, false, err
	}
	_, d, err := lookupEntry(buf, name, v.ignoreCase)
	if err != nil {
		return 0, false, err
	}
	return int(d.Inode), d.IsDir == 1, nil
}

func (v *Volume) allocBlock() (int, error) {
	blk := v.blockMap.firstClear(v.nMeta, v.nBlocks)
	if blk < 0 {
		return 0, ErrNoSpace
	}
	v.blockMap.set(blk)
	v.markBlock(blk)
	return blk, nil
}

func (v *Volume) allocInode() (int, error) {
	ino := v.inodeMap.firstClear(1, v.nInodes)
	if ino < 0 {
		return 0, ErrNoSpace
	}
	v.inodeMap.set(ino)
	v.markInode(ino)
	return ino, nil
}

// mkentry is the single primitive funneling Mkfile, Mkdir, and Mklink.
// flag is -S_IFREG, -S_IFDIR, or a positive existing inode index (link).
func (v *Volume) mkentry(dirIno int, name string, mode uint32, flag int) (int, error) {
	if err := v.checkDirty(); err != nil {
		return 0, err
	}
	if len(name) >= FSFilenameSize {
		return 0, ErrNameTooLong
	}

	dirBlkno, dirInode, buf, err := v.dirBlockOf(dirIno)
	if err != nil {
		return 0, err
	}

	entry, err := freeEntrySlot(buf, name, v.ignoreCase)
	if err != nil {
		return 0, err
	}

	now := int32(time.Now().Unix())
	var fileIno int
	var fileBlkno int

	if flag > 0 {
		fileIno = flag
		target := v.readInode(fileIno)
		if isDirMode(target.Mode) {
			return 0, ErrIsDir
		}
	} else {
		fileBlkno, err = v.allocBlock()
		if err != nil {
			return 0, err
		}
		fileIno, err = v.allocInode()
		if err != nil {
			return 0, err
		}
		typ := uint32(-flag) & S_IFMT
		perm := mode & 0777
		newInode := Inode{
			UID:   v.DefaultUID,
			GID:   dirInode.GID,
			Mode:  typ | perm,
			CTime: now,
			MTime: now,
		}
		newInode.Direct[0] = uint32(fileBlkno)
		v.writeInode(fileIno, &newInode)
	}

	de := Dirent{Valid: 1, Inode: uint32(fileIno)}
	if flag == -S_IFDIR {
		de.IsDir = 1
	}
	entryName := name
	if v.foldCase {
		entryName = asciiUpper(entryName)
	}
	de.SetName(entryName)
	putDirentAt(buf, entry, &de)

	if err := v.writeBlock(dirBlkno, buf); err != nil {
		return 0, ErrIO
	}

	dirInode.Size += direntSize
	dirInode.MTime = now
	v.writeInode(dirIno, &dirInode)
	v.markInode(dirIno)

	fileInode := v.readInode(fileIno)
	fileInode.NLink++
	v.writeInode(fileIno, &fileInode)
	v.markInode(fileIno)

	if flag == -S_IFDIR {
		subdir := make([]byte, FSBlockSize)
		dot := Dirent{Valid: 1, IsDir: 1, Inode: uint32(fileIno)}
		dot.SetName(".")
		dotdot := Dirent{Valid: 1, IsDir: 1, Inode: uint32(dirIno)}
		dotdot.SetName("..")
		putDirentAt(subdir, 0, &dot)
		putDirentAt(subdir, 1, &dotdot)

		if err := v.writeBlock(fileBlkno, subdir); err != nil {
			return 0, ErrIO
		}

		fileInode = v.readInode(fileIno)
		fileInode.Size += 2 * direntSize
		fileInode.NLink++ // "."
		v.writeInode(fileIno, &fileInode)
		v.markInode(fileIno)

		dirInode = v.readInode(dirIno)
		dirInode.NLink++ // ".."
		v.writeInode(dirIno, &dirInode)
		v.markInode(dirIno)
	}

	if err := v.syncMetadata(); err != nil {
		return 0, err
	}
	return fileIno, nil
}

// Mkfile creates a new regular file named name in directory dirIno.
func (v *Volume) Mkfile(dirIno int, name string, mode uint32) (int, error) {
	return v.mkentry(dirIno, name, mode, -S_IFREG)
}

// Mkdir creates a new subdirectory named name in directory dirIno.
func (v *Volume) Mkdir(dirIno int, name string, mode uint32) (int, error) {
	return v.mkentry(dirIno, name, mode, -S_IFDIR)
}

// Mklink creates a new hard link named name in directory dirIno pointing
// at the existing non-directory inode fileIno.
func (v *Volume) Mklink(dirIno, fileIno int, name string) (int, error) {
	return v.mkentry(dirIno, name, 0, fileIno)
}
