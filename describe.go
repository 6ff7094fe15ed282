package fat

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// String summarizes the mounted volume's capacity and free space in
// human-readable units, for logging and the CLI's "mount" command.
func (fsys *FS) String() string {
	clusterBytes := uint64(fsys.csize) * uint64(fsys.ssize)
	total := clusterBytes * uint64(fsys.n_fatent-2)
	free := clusterBytes * uint64(fsys.free_clst)
	name := fsys.mountName
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("volume %s: %s free of %s", name, humanize.Bytes(free), humanize.Bytes(total))
}

// DescribeBootSector renders the boot sector's BIOS Parameter Block fields
// (OEM name, geometry, volume label and serial, and so on) as captured at
// mount time, one field per line. Before a successful Mount it reports the
// zero value of every field.
func (fsys *FS) DescribeBootSector() string {
	return fsys.bpb().String()
}

// DescribeFSInfo renders the FAT32 FSInfo sector's free-cluster hint fields
// as captured at mount time. The second return value is false if the volume
// had no usable FSInfo sector, in which case the string is empty.
func (fsys *FS) DescribeFSInfo() (string, bool) {
	fsi, ok := fsys.fsinfo()
	if !ok {
		return "", false
	}
	return fsi.String(), true
}

// String renders a FileInfo the way `ls -l` would: attribute flags,
// human-readable size, modification time, and name.
func (finfo *FileInfo) String() string {
	flags := "-"
	if finfo.IsDir() {
		flags = "d"
	}
	return fmt.Sprintf("%s %8s %s %s", flags, humanize.Bytes(uint64(finfo.Size())), finfo.ModTime().Format("2006-01-02 15:04"), finfo.Name())
}
