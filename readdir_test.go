package ext2fs_test

import (
	"testing"

	"github.com/coursefs/ext2fs"
)

func TestReaddirListsCreatedEntries(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	if _, err := v.Mkfile(v.RootInode(), "one.txt", 0644); err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Mkdir(v.RootInode(), "sub", 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	dir, err := v.Opendir(v.RootInode())
	if err != nil {
		t.Fatalf("Opendir: %v", err)
	}
	defer dir.Close()

	entries := dir.Readdir()
	if len(entries) != 4 { // ".", "..", "one.txt", "sub"
		t.Fatalf("got %d entries, want 4: %+v", len(entries), entries)
	}

	byName := map[string]ext2fs.DirEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if byName["one.txt"].IsDir {
		t.Fatalf("one.txt should not be marked as a directory")
	}
	if !byName["sub"].IsDir {
		t.Fatalf("sub should be marked as a directory")
	}
}

func TestDirNextExhaustion(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	dir, err := v.Opendir(v.RootInode())
	if err != nil {
		t.Fatalf("Opendir: %v", err)
	}
	defer dir.Close()

	count := 0
	for {
		_, ok := dir.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("got %d entries from fresh root, want 2", count)
	}
	if _, ok := dir.Next(); ok {
		t.Fatalf("Next() after exhaustion should return ok=false")
	}
}

func TestOpendirOnFileFails(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "notadir.txt", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Opendir(ino); err != ext2fs.ErrNotDir {
		t.Fatalf("Opendir(file) = %v, want ErrNotDir", err)
	}
}
