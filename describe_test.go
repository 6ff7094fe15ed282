package fat

import (
	"strings"
	"testing"
)

func TestDescribeBootSectorReportsVolumeLabel(t *testing.T) {
	fs, _ := initTestFAT()
	desc := fs.DescribeBootSector()
	if !strings.Contains(desc, "keylargo") {
		t.Fatalf("expected boot sector description to mention volume label, got: %s", desc)
	}
	if !strings.Contains(desc, "FAT32") {
		t.Fatalf("expected boot sector description to mention filesystem type, got: %s", desc)
	}
}

func TestDescribeFSInfo(t *testing.T) {
	fs, _ := initTestFAT()
	desc, ok := fs.DescribeFSInfo()
	if !ok {
		t.Fatal("expected mounted FAT32 volume to carry an FSInfo sector")
	}
	if !strings.Contains(desc, "FreeClusterCount") {
		t.Fatalf("expected FSInfo description to report free cluster count, got: %s", desc)
	}
}
