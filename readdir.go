package ext2fs

// DirEntry is one resolved entry returned while walking a directory
// stream.
type DirEntry struct {
	Name  string
	Ino   int
	IsDir bool
}

// Dir is an open directory stream, positioned by successive calls to Next.
type Dir struct {
	buf  []byte
	pos  int
	done bool
}

// Opendir returns a directory stream over dirIno's entries. Returns
// ErrNotDir if dirIno is not a directory.
func (v *Volume) Opendir(dirIno int) (*Dir, error) {
	if err := v.checkDirty(); err != nil {
		return nil, err
	}
	_, _, buf, err := v.dirBlockOf(dirIno)
	if err != nil {
		return nil, err
	}
	return &Dir{buf: buf}, nil
}

// Next returns the next valid entry in the stream, or ok=false once the
// stream is exhausted.
func (d *Dir) Next() (entry DirEntry, ok bool) {
	if d.done {
		return DirEntry{}, false
	}
	for d.pos < DirentsPerBlock {
		i := d.pos
		d.pos++
		de := direntAt(d.buf, i)
		if de.Valid == 1 {
			return DirEntry{Name: de.NameString(), Ino: int(de.Inode), IsDir: de.IsDir == 1}, true
		}
	}
	d.done = true
	return DirEntry{}, false
}

// Close releases the stream's buffer.
func (d *Dir) Close() error {
	d.buf = nil
	d.done = true
	return nil
}

// Readdir collects every remaining entry in the stream.
func (d *Dir) Readdir() []DirEntry {
	var out []DirEntry
	for {
		e, ok := d.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}
