package fat

import (
	"encoding/binary"
	"log/slog"
)

// f_mkdir creates a new directory at path. It mirrors f_open's create
// branch: resolve the parent, register a fresh entry, then allocate and
// initialize a cluster holding "." and ".." instead of wiring up a File.
func (fsys *FS) f_mkdir(path string) fileResult {
	fsys.trace("fs:f_mkdir", slog.String("path", path))
	if fsys.perm&ModeWrite == 0 {
		return frDenied
	}
	path += "\x00"
	var dj dir
	dj.obj.fs = fsys
	res := dj.follow_path(path)
	if res == frOK {
		return frExist // Name is already in use.
	}
	if res != frNoFile {
		return res
	}
	if dj.fn[nsFLAG]&nsNONAME != 0 {
		return frInvalidName
	}
	pclst := dj.obj.sclust // Containing directory's cluster, 0 if root.

	res = dj.register()
	if res != frOK {
		return res
	}

	tm := fsys.time()
	dcl := dj.obj.create_chain(0)
	switch dcl {
	case 0:
		return frNoSpace // No free cluster: disk full, distinct from access-denied.
	case 1:
		return frIntErr
	case maxu32:
		return frDiskErr
	}
	res = fsys.dir_clear(dcl)
	if res != frOK {
		return res
	}

	// Populate "." and ".." in the first two slots of the new cluster.
	res = fsys.move_window(fsys.clst2sect(dcl))
	if res != frOK {
		return res
	}
	copy(fsys.win[dirNameOff:], ".          ")
	fsys.win[dirAttrOff] = amDIR
	binary.LittleEndian.PutUint32(fsys.win[dirCrtTimeOff:], tm)
	binary.LittleEndian.PutUint32(fsys.win[dirModTimeOff:], tm)
	fsys.st_clust(fsys.win[:], dcl)

	copy(fsys.win[sizeDirEntry+dirNameOff:], "..         ")
	fsys.win[sizeDirEntry+dirAttrOff] = amDIR
	binary.LittleEndian.PutUint32(fsys.win[sizeDirEntry+dirCrtTimeOff:], tm)
	binary.LittleEndian.PutUint32(fsys.win[sizeDirEntry+dirModTimeOff:], tm)
	fsys.st_clust(fsys.win[sizeDirEntry:], pclst)
	fsys.wflag = 1

	// Finish the new entry in the parent directory.
	res = fsys.move_window(dj.sect)
	if res != frOK {
		return res
	}
	binary.LittleEndian.PutUint32(dj.dir[dirCrtTimeOff:], tm)
	binary.LittleEndian.PutUint32(dj.dir[dirModTimeOff:], tm)
	fsys.st_clust(dj.dir, dcl)
	dj.dir[dirAttrOff] = amDIR
	fsys.wflag = 1

	return fsys.sync()
}

// f_unlink removes a file or an empty directory named by path, grounded in
// the same follow_path/remove_chain primitives f_open and create_chain use
// for the opposite operation (creation).
func (fsys *FS) f_unlink(path string) fileResult {
	fsys.trace("fs:f_unlink", slog.String("path", path))
	if fsys.perm&ModeWrite == 0 {
		return frDenied
	}
	path += "\x00"
	var dj dir
	dj.obj.fs = fsys
	res := dj.follow_path(path)
	if res != frOK {
		return res
	}
	if dj.fn[nsFLAG]&nsNONAME != 0 {
		return frInvalidName // Cannot remove the origin directory.
	}
	if dj.obj.attr&(amRDO|amSYS|amVOL) != 0 {
		return frDenied // Read-only, system, or volume-label entries cannot be removed.
	}
	dclst := fsys.ld_clust(dj.dir)
	if dj.obj.attr&amDIR != 0 {
		// Directory: verify empty before allowing removal.
		var sdj dir
		sdj.obj.fs = fsys
		sdj.obj.sclust = dclst
		res = sdj.sdi(2 * sizeDirEntry) // Skip "." and "..".
		if res != frOK {
			return res
		}
		res = sdj.read(false)
		if res == frOK {
			return frDenied // Directory is not empty.
		} else if res != frNoFile {
			return res
		}
	}

	res = fsys.move_window(dj.sect)
	if res != frOK {
		return res
	}
	dj.dir[dirNameOff] = mskDDEM // Mark the entry deleted.
	fsys.wflag = 1

	if dclst != 0 {
		res = dj.obj.remove_chain(dclst, 0)
		if res != frOK {
			return res
		}
	}
	return fsys.sync()
}

// f_stat resolves path and fills fno with its directory entry, without
// opening a File or Dir handle.
func (fsys *FS) f_stat(path string, fno *FileInfo) fileResult {
	fsys.trace("fs:f_stat", slog.String("path", path))
	path += "\x00"
	var dj dir
	dj.obj.fs = fsys
	res := dj.follow_path(path)
	if res != frOK {
		return res
	}
	if dj.fn[nsFLAG]&nsNONAME != 0 {
		// Root directory: synthesize a minimal entry.
		fno.fname[0] = '/'
		fno.fname[1] = 0
		fno.fattrib = amDIR
		fno.fsize = 0
		return frOK
	}
	dj.get_fileinfo(fno)
	return frOK
}
