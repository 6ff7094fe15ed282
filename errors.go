package fat

import (
	"errors"
	"fmt"
)

// Public error taxonomy. Every error an exported operation returns from the
// engine wraps exactly one of these, regardless of which of the internal
// fileResult codes produced it, so callers can dispatch with errors.Is
// instead of matching on the package's internal code enum. The exceptions
// are the argument checks done before the engine is entered: an invalid or
// forbidden access mode (Mount, OpenFile, Seek's whence, ForEachFile) and a
// sector size too large for Mount return their own plain errors.
var (
	ErrNoFAT  = errors.New("fat: no valid FAT32 filesystem")
	ErrBroken = errors.New("fat: on-disk structure inconsistent")
	ErrIO     = errors.New("fat: block device I/O error")
	ErrParam  = errors.New("fat: invalid parameter")
	ErrPath   = errors.New("fat: path not found or invalid")
	ErrDenied = errors.New("fat: operation denied")
	ErrFull   = errors.New("fat: volume full")
)

// classify groups the internal fileResult codes (modeled closely on FatFs's
// own FRESULT enum) into the public taxonomy above, wrapping so both
// errors.Is(err, ErrPath) and errors.Is(err, fr) keep working.
func classify(fr fileResult) error {
	switch fr {
	case frOK:
		return nil
	case frDiskErr, frTimeout:
		return wrap(ErrIO, fr)
	case frNoFilesystem:
		return wrap(ErrNoFAT, fr)
	case frIntErr, frNotEnabled:
		return wrap(ErrBroken, fr)
	case frInvalidParameter, frInvalidDrive, frNotReady, frTooManyOpenFiles, frNotEnoughCore, frUnsupported:
		return wrap(ErrParam, fr)
	case frNoFile, frNoPath, frInvalidName, frInvalidObject, frClosed:
		return wrap(ErrPath, fr)
	case frDenied, frExist, frWriteProtected, frLocked, frMkfsAborted:
		return wrap(ErrDenied, fr)
	case frNoSpace:
		return wrap(ErrFull, fr)
	default:
		return wrap(ErrBroken, fr)
	}
}

// classifyIO behaves like classify, except for frDiskErr/frTimeout it also
// wraps the underlying BlockDevice error that produced the failure (if any
// was recorded), so errors.Unwrap reaches the adapter error instead of
// stopping at the package's own sentinels.
func (fsys *FS) classifyIO(fr fileResult) error {
	err := classify(fr)
	if err == nil || fsys.lastIOErr == nil {
		return err
	}
	if fr != frDiskErr && fr != frTimeout {
		return err
	}
	ioErr := fsys.lastIOErr
	fsys.lastIOErr = nil
	return fmt.Errorf("%w: %w", err, ioErr)
}

type classifiedError struct {
	sentinel error
	code     fileResult
}

func wrap(sentinel error, code fileResult) error {
	return &classifiedError{sentinel: sentinel, code: code}
}

func (e *classifiedError) Error() string {
	return e.sentinel.Error() + ": " + e.code.Error()
}

func (e *classifiedError) Unwrap() []error {
	return []error{e.sentinel, e.code}
}
