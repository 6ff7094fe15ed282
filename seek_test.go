package fat

import (
	"io"
	"testing"
)

func TestFileSeekTellRoundtrip(t *testing.T) {
	fs, _ := initTestFAT()
	info, err := fs.Stat("rootfile")
	if err != nil {
		t.Fatal(err)
	}
	size := info.Size()

	var fp File
	if err := fs.OpenFile(&fp, "rootfile", ModeRead); err != nil {
		t.Fatal(err)
	}
	defer fp.Close()

	for _, n := range []int64{0, 1, size / 2, size, size + 100} {
		got, err := fp.Seek(n, io.SeekStart)
		if err != nil {
			t.Fatalf("Seek(%d, SET): %v", n, err)
		}
		want := n
		if want > int64(maxu32) {
			want = int64(maxu32)
		}
		if got != want {
			t.Fatalf("Seek(%d, SET) returned %d, want %d", n, got, want)
		}
		if tell := fp.Tell(); tell != want {
			t.Fatalf("Tell() after Seek(%d, SET) = %d, want %d", n, tell, want)
		}
	}
}

func TestFileSeekWholeFile(t *testing.T) {
	fs, _ := initTestFAT()
	var fp File
	if err := fs.OpenFile(&fp, "rootfile", ModeRead); err != nil {
		t.Fatal(err)
	}
	defer fp.Close()

	all, err := io.ReadAll(&fp)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	half := int64(len(all)) / 2
	if _, err := fp.Seek(half, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	rest := make([]byte, len(all)-int(half))
	n, err := fp.Read(rest)
	if err != nil {
		t.Fatal(err)
	}
	if string(rest[:n]) != string(all[half:]) {
		t.Fatalf("got %q after seeking to midpoint, want %q", rest[:n], all[half:])
	}

	// SeekCurrent relative to the new pointer.
	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := fp.Seek(2, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}
	if _, err := fp.Seek(1, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}
	if got := fp.Tell(); got != 3 {
		t.Fatalf("Tell() after two relative seeks = %d, want 3", got)
	}

	// SeekEnd.
	if _, err := fp.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	if got := fp.Tell(); got != int64(len(all)) {
		t.Fatalf("Tell() after Seek(0, END) = %d, want %d", got, len(all))
	}
}

func TestFileSeekForwardPreallocates(t *testing.T) {
	fs, _ := initTestFAT()
	var fp File
	if err := fs.OpenFile(&fp, "seekgrow.txt", ModeCreateAlways|ModeWrite); err != nil {
		t.Fatal(err)
	}

	const past = 5000 // into the second cluster of the empty file (4096-byte clusters).
	got, err := fp.Seek(past, io.SeekStart)
	if err != nil {
		t.Fatal(err)
	}
	if got != past {
		t.Fatalf("Seek returned %d, want %d", got, past)
	}

	if _, err := fp.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := fp.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := fs.Stat("seekgrow.txt")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != past+1 {
		t.Fatalf("got size %d, want %d", info.Size(), past+1)
	}
}
