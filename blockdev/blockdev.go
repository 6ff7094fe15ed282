// Package blockdev provides ready-made fat.BlockDevice implementations:
// an in-memory device for tests and synthetic images, and a file-backed
// device for real storage media addressed through an io.ReadWriteSeeker.
package blockdev

import (
	"errors"
	"io"
	"sync"

	"github.com/xaionaro-go/bytesextra"
)

// Memory is a byte-slice backed block device, useful for tests and for
// building small synthetic volumes entirely in RAM.
type Memory struct {
	buf       []byte
	blockSize int64
}

// NewMemory allocates a Memory device of numBlocks blocks of blockSize
// bytes each, zero-filled.
func NewMemory(numBlocks int, blockSize int) *Memory {
	return &Memory{
		buf:       make([]byte, numBlocks*blockSize),
		blockSize: int64(blockSize),
	}
}

// BlockSize returns the device's fixed block size in bytes.
func (m *Memory) BlockSize() int { return int(m.blockSize) }

func (m *Memory) ReadBlocks(dst []byte, startBlock int64) (int, error) {
	off := startBlock * m.blockSize
	end := off + int64(len(dst))
	if startBlock < 0 || end > int64(len(m.buf)) {
		return 0, errors.New("blockdev: read out of range")
	}
	return copy(dst, m.buf[off:end]), nil
}

func (m *Memory) WriteBlocks(data []byte, startBlock int64) (int, error) {
	off := startBlock * m.blockSize
	end := off + int64(len(data))
	if startBlock < 0 || end > int64(len(m.buf)) {
		return 0, errors.New("blockdev: write out of range")
	}
	return copy(m.buf[off:end], data), nil
}

func (m *Memory) EraseBlocks(startBlock, numBlocks int64) error {
	off := startBlock * m.blockSize
	end := off + numBlocks*m.blockSize
	if startBlock < 0 || numBlocks <= 0 || end > int64(len(m.buf)) {
		return errors.New("blockdev: erase out of range")
	}
	clear(m.buf[off:end])
	return nil
}

// File adapts an io.ReadWriteSeeker (a real *os.File, or any in-memory
// buffer obtained via bytesextra.NewReadWriteSeeker) into a fat.BlockDevice,
// for volumes that live outside of process memory. Every call seeks before
// reading or writing, so calls are serialized by an internal mutex.
type File struct {
	mu        sync.Mutex
	rw        io.ReadWriteSeeker
	blockSize int64
}

// NewFile wraps rw, treating it as a sequence of fixed-size blocks.
func NewFile(rw io.ReadWriteSeeker, blockSize int) *File {
	return &File{rw: rw, blockSize: int64(blockSize)}
}

// NewFileFromBytes wraps a plain byte slice the same way NewFile wraps a
// file, via bytesextra's in-memory ReadWriteSeeker, so synthetic images can
// be driven through the same adapter real files use.
func NewFileFromBytes(buf []byte, blockSize int) *File {
	return NewFile(bytesextra.NewReadWriteSeeker(buf), blockSize)
}

// BlockSize returns the device's fixed block size in bytes.
func (f *File) BlockSize() int { return int(f.blockSize) }

func (f *File) ReadBlocks(dst []byte, startBlock int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.rw.Seek(startBlock*f.blockSize, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(f.rw, dst)
}

func (f *File) WriteBlocks(data []byte, startBlock int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.rw.Seek(startBlock*f.blockSize, io.SeekStart); err != nil {
		return 0, err
	}
	return f.rw.Write(data)
}

func (f *File) EraseBlocks(startBlock, numBlocks int64) error {
	zeros := make([]byte, f.blockSize)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := int64(0); i < numBlocks; i++ {
		if _, err := f.rw.Seek((startBlock+i)*f.blockSize, io.SeekStart); err != nil {
			return err
		}
		if _, err := f.rw.Write(zeros); err != nil {
			return err
		}
	}
	return nil
}
