package ext2fs_test

import (
	"testing"

	"github.com/coursefs/ext2fs"
)

func TestWriteReadRoundTrip(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "data.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}

	want := []byte("hello, ext2fs")
	n, err := v.Write(ino, want)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(want) {
		t.Fatalf("Write returned %d, want %d", n, len(want))
	}

	st, err := v.Stat(ino)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if int(st.Size) != len(want) {
		t.Fatalf("Size = %d, want %d", st.Size, len(want))
	}

	got := make([]byte, len(want))
	n, err = v.Read(ino, got)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got[:n]) != string(want) {
		t.Fatalf("Read = %q, want %q", got[:n], want)
	}
}

func TestPwritePreadAtOffset(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "data.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}

	if _, err := v.Pwrite(ino, []byte("0123456789"), 0); err != nil {
		t.Fatalf("Pwrite: %v", err)
	}
	if _, err := v.Pwrite(ino, []byte("XY"), 4); err != nil {
		t.Fatalf("Pwrite at offset: %v", err)
	}

	buf := make([]byte, 10)
	n, err := v.Pread(ino, buf, 0)
	if err != nil {
		t.Fatalf("Pread: %v", err)
	}
	if string(buf[:n]) != "0123XY6789" {
		t.Fatalf("Pread = %q, want %q", buf[:n], "0123XY6789")
	}
}

func TestPreadPastEndOfFile(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "empty.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}

	buf := make([]byte, 16)
	n, err := v.Pread(ino, buf, 0)
	if err != nil {
		t.Fatalf("Pread: %v", err)
	}
	if n != 0 {
		t.Fatalf("Pread on empty file returned n=%d, want 0", n)
	}
}

func TestPwriteTooBigFails(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "big.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}

	buf := make([]byte, ext2fs.FSBlockSize+1)
	if _, err := v.Pwrite(ino, buf, 0); err != ext2fs.ErrTooBig {
		t.Fatalf("Pwrite(too big) = %v, want ErrTooBig", err)
	}
}

func TestTruncateGrowZeroFills(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "grow.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Pwrite(ino, []byte("ab"), 0); err != nil {
		t.Fatalf("Pwrite: %v", err)
	}
	if err := v.Truncate(ino, 8); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	buf := make([]byte, 8)
	n, err := v.Pread(ino, buf, 0)
	if err != nil {
		t.Fatalf("Pread: %v", err)
	}
	want := []byte{'a', 'b', 0, 0, 0, 0, 0, 0}
	if string(buf[:n]) != string(want) {
		t.Fatalf("Pread after grow = %v, want %v", buf[:n], want)
	}
}

func TestTruncateShrink(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "shrink.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Pwrite(ino, []byte("0123456789"), 0); err != nil {
		t.Fatalf("Pwrite: %v", err)
	}
	if err := v.Truncate(ino, 4); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	st, err := v.Stat(ino)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Size != 4 {
		t.Fatalf("Size after shrink = %d, want 4", st.Size)
	}
}

func TestWriteReplacesNotAppends(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "replace.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Write(ino, []byte("0123456789")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := v.Write(ino, []byte("ab")); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	st, err := v.Stat(ino)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Size != 2 {
		t.Fatalf("Size after second Write = %d, want 2", st.Size)
	}

	buf := make([]byte, 2)
	n, err := v.Read(ino, buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(buf[:n]) != "ab" {
		t.Fatalf("Read after second Write = %q, want %q", buf[:n], "ab")
	}
}

func TestPwriteZeroFillsGapPastOldSize(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "gap.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Pwrite(ino, []byte("AAAAAAAAAA"), 0); err != nil {
		t.Fatalf("Pwrite: %v", err)
	}
	if err := v.Truncate(ino, 2); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if _, err := v.Pwrite(ino, []byte("BB"), 5); err != nil {
		t.Fatalf("Pwrite past old size: %v", err)
	}

	buf := make([]byte, 7)
	n, err := v.Pread(ino, buf, 0)
	if err != nil {
		t.Fatalf("Pread: %v", err)
	}
	want := []byte{'A', 'A', 0, 0, 0, 'B', 'B'}
	if string(buf[:n]) != string(want) {
		t.Fatalf("Pread = %v, want %v", buf[:n], want)
	}
}

func TestTruncateSameSizeIsNoop(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	ino, err := v.Mkfile(v.RootInode(), "noop.bin", 0644)
	if err != nil {
		t.Fatalf("Mkfile: %v", err)
	}
	if _, err := v.Pwrite(ino, []byte("hello"), 0); err != nil {
		t.Fatalf("Pwrite: %v", err)
	}
	before, err := v.Stat(ino)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	if err := v.Truncate(ino, int64(before.Size)); err != nil {
		t.Fatalf("Truncate(same size): %v", err)
	}

	after, err := v.Stat(ino)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if after.MTime != before.MTime {
		t.Fatalf("Truncate(same size) touched MTime: %v -> %v", before.MTime, after.MTime)
	}
}

func TestWriteOnDirectoryFails(t *testing.T) {
	v := mustFormatAndMount(t)
	defer v.Unmount()

	if _, err := v.Write(v.RootInode(), []byte("x")); err != ext2fs.ErrIsDir {
		t.Fatalf("Write(directory) = %v, want ErrIsDir", err)
	}
}
