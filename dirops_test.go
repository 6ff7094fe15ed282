package fat

import (
	"errors"
	"testing"
)

func TestMkdirStatRemove(t *testing.T) {
	fs, _ := initTestFAT()

	err := fs.Mkdir("newdir")
	if err != nil {
		t.Fatal(err)
	}

	info, err := fs.Stat("newdir")
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatal("expected newdir to report as a directory")
	}

	err = fs.Remove("newdir")
	if err != nil {
		t.Fatal(err)
	}

	_, err = fs.Stat("newdir")
	if err == nil {
		t.Fatal("expected error statting removed directory")
	}
}

func TestMkdirExisting(t *testing.T) {
	fs, _ := initTestFAT()
	err := fs.Mkdir("rootdir")
	if err == nil {
		t.Fatal("expected error creating directory that already exists")
	}
}

func TestRemoveNonEmptyDir(t *testing.T) {
	fs, _ := initTestFAT()
	err := fs.Remove("rootdir")
	if err == nil {
		t.Fatal("expected error removing non-empty directory")
	}
}

func TestRemoveDeniedOnSysOrVolAttr(t *testing.T) {
	for _, tc := range []struct {
		name string
		attr uint8
	}{
		{name: "sysfile", attr: amSYS},
		{name: "volfile", attr: amVOL},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fs, _ := initTestFAT()
			var fp File
			err := fs.OpenFile(&fp, tc.name, ModeCreateAlways|ModeWrite)
			if err != nil {
				t.Fatal(err)
			}
			if err := fp.Close(); err != nil {
				t.Fatal(err)
			}

			var dj dir
			dj.obj.fs = fs
			if res := dj.follow_path(tc.name + "\x00"); res != frOK {
				t.Fatal(res)
			}
			if res := fs.move_window(dj.sect); res != frOK {
				t.Fatal(res)
			}
			dj.dir[dirAttrOff] |= tc.attr
			fs.wflag = 1
			if res := fs.sync(); res != frOK {
				t.Fatal(res)
			}

			err = fs.Remove(tc.name)
			if err == nil {
				t.Fatalf("expected error removing %s-attributed entry", tc.name)
			}
			if !errors.Is(err, ErrDenied) {
				t.Fatalf("expected ErrDenied, got %v", err)
			}
		})
	}
}

func TestStatFile(t *testing.T) {
	fs, _ := initTestFAT()
	info, err := fs.Stat("rootfile")
	if err != nil {
		t.Fatal(err)
	}
	if info.IsDir() {
		t.Fatal("rootfile should not report as a directory")
	}
	if info.Size() == 0 {
		t.Fatal("expected non-zero rootfile size")
	}
}
