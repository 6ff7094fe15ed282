package fat

// Byte offsets within a 32-byte short (SFN) directory entry. Layout is fixed
// by the FAT32 on-disk format: 11-byte name, attribute byte, NT-reserved
// byte, creation time-tenths, creation time/date, last-access date,
// high/low cluster halves split around the write time/date, file size.
const (
	dirNameOff        = 0  // DIR_Name, 8+3 bytes.
	dirAttrOff        = 11 // DIR_Attr, 1 byte.
	dirNTresOff       = 12 // DIR_NTres, 1 byte.
	dirCrtTimeTenthOff = 13 // DIR_CrtTimeTenth, 1 byte.
	dirCrtTimeOff     = 14 // DIR_CrtTime(2) + DIR_CrtDate(2), read/written as one uint32.
	dirLstAccDateOff  = 18 // DIR_LstAccDate, 2 bytes.
	dirFstClusHIOff   = 20 // DIR_FstClusHI, 2 bytes.
	dirModTimeOff     = 22 // DIR_WrtTime(2) + DIR_WrtDate(2), read/written as one uint32.
	dirFstClusLOOff   = 26 // DIR_FstClusLO, 2 bytes.
	dirFileSizeOff    = 28 // DIR_FileSize, 4 bytes.
)

// Byte offsets within a 32-byte long-filename (LFN) directory entry.
const (
	ldirOrdOff        = 0  // LDIR_Ord, sequence number with 0x40 set on the first physical slot.
	ldirAttrOff       = 11 // LDIR_Attr, always amLFN.
	ldirTypeOff       = 12 // LDIR_Type, always 0.
	ldirChksumOff     = 13 // LDIR_Chksum, SFN checksum this group binds to.
	ldirFstClusLO_Off = 26 // LDIR_FstClusLO, always 0.
)

// File attribute bits, matching the FAT32 on-disk byte layout: RO 0x01,
// HIDDEN 0x02, SYS 0x04, LABEL 0x08, DIR 0x10, ARCHIVE 0x20.
const (
	amRDO  = 0x01
	amHID  = 0x02
	amSYS  = 0x04
	amVOL  = 0x08
	amLFN  = amRDO | amHID | amSYS | amVOL
	amDIR  = 0x10
	amARC  = 0x20
	amMASK = 0x3F
)
