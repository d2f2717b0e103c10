package ext2fs

import "time"

// maxFileSize is the largest a regular file can grow: its single reserved
// data block. Indir1/Indir2 are reserved for a future multi-block layout
// and never consulted here.
const maxFileSize = FSBlockSize

// Pread reads up to len(buf) bytes from ino starting at offset, returning
// the number of bytes read. Reads at or past the end of file return (0, nil);
// io.EOF is never returned.
func (v *Volume) Pread(ino int, buf []byte, offset int64) (int, error) {
	if err := v.checkDirty(); err != nil {
		return 0, err
	}
	in := v.readInode(ino)
	if isDirMode(in.Mode) {
		return 0, ErrIsDir
	}
	if offset < 0 {
		return 0, ErrInvalid
	}
	if offset >= int64(in.Size) {
		return 0, nil
	}

	n := len(buf)
	if int64(n) > int64(in.Size)-offset {
		n = int(int64(in.Size) - offset)
	}
	if n == 0 {
		return 0, nil
	}

	blkno := int(in.Direct[0])
	if blkno == 0 {
		// No block has ever been allocated for this inode. Unreachable via
		// Mkfile, which always allocates the data block up front, but kept
		// as a defensive fallback.
		for i := range buf[:n] {
			buf[i] = 0
		}
		return n, nil
	}

	block, err := v.readBlock(blkno)
	if err != nil {
		return 0, ErrIO
	}
	copy(buf[:n], block[offset:])
	return n, nil
}

// Read is a convenience wrapper over Pread starting at offset 0.
func (v *Volume) Read(ino int, buf []byte) (int, error) {
	return v.Pread(ino, buf, 0)
}

// Pwrite writes len(buf) bytes to ino starting at offset, growing the
// inode's recorded size if the write extends past it. Returns ErrTooBig if
// the write would reach past the single reserved data block.
func (v *Volume) Pwrite(ino int, buf []byte, offset int64) (int, error) {
	if err := v.checkDirty(); err != nil {
		return 0, err
	}
	in := v.readInode(ino)
	if isDirMode(in.Mode) {
		return 0, ErrIsDir
	}
	if offset < 0 {
		return 0, ErrInvalid
	}
	end := offset + int64(len(buf))
	if end > maxFileSize {
		return 0, ErrTooBig
	}

	blkno := int(in.Direct[0])
	if blkno == 0 {
		var err error
		blkno, err = v.allocBlock()
		if err != nil {
			return 0, err
		}
		in.Direct[0] = uint32(blkno)
	}

	block, err := v.readBlock(blkno)
	if err != nil {
		return 0, ErrIO
	}
	if offset > int64(in.Size) {
		for i := int64(in.Size); i < offset; i++ {
			block[i] = 0
		}
	}
	copy(block[offset:], buf)
	if err := v.writeBlock(blkno, block); err != nil {
		return 0, ErrIO
	}

	if end > int64(in.Size) {
		in.Size = uint32(end)
	}
	in.MTime = int32(time.Now().Unix())
	v.writeInode(ino, &in)
	v.markInode(ino)

	if err := v.syncMetadata(); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Write replaces ino's contents with buf, truncating away whatever was
// there before and writing the new contents from offset 0. Write and Pwrite
// are distinct methods rather than one signature with a sentinel offset
// meaning "truncate first".
func (v *Volume) Write(ino int, buf []byte) (int, error) {
	if err := v.Truncate(ino, 0); err != nil {
		return 0, err
	}
	return v.Pwrite(ino, buf, 0)
}

// Truncate sets ino's recorded size to size, zeroing any newly exposed
// bytes of the reserved data block when growing. Returns ErrTooBig if size
// exceeds the single reserved data block.
func (v *Volume) Truncate(ino int, size int64) error {
	if err := v.checkDirty(); err != nil {
		return err
	}
	if size < 0 || size > maxFileSize {
		return ErrTooBig
	}
	in := v.readInode(ino)
	if isDirMode(in.Mode) {
		return ErrIsDir
	}
	if size == int64(in.Size) {
		return nil
	}

	if size > int64(in.Size) {
		blkno := int(in.Direct[0])
		if blkno == 0 {
			var err error
			blkno, err = v.allocBlock()
			if err != nil {
				return err
			}
			in.Direct[0] = uint32(blkno)
		}
		block, err := v.readBlock(blkno)
		if err != nil {
			return ErrIO
		}
		for i := int64(in.Size); i < size; i++ {
			block[i] = 0
		}
		if err := v.writeBlock(blkno, block); err != nil {
			return ErrIO
		}
	}

	in.Size = uint32(size)
	in.MTime = int32(time.Now().Unix())
	v.writeInode(ino, &in)
	v.markInode(ino)

	return v.syncMetadata()
}
