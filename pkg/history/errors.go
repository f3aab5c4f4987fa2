package history

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCorruptRecord    = errors.New("corrupt record")
)

// UnavailableError reports that the backing database at Path could not be
// created, opened or prepared.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s at %s: %v", ErrStoreUnavailable, e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// CorruptRecordError reports an existing history value that failed to decode.
type CorruptRecordError struct {
	Key string
	Err error
}

func (e *CorruptRecordError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q: %v", ErrCorruptRecord, e.Key, e.Err)
}

func (e *CorruptRecordError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *CorruptRecordError) Is(target error) bool {
	return target == ErrCorruptRecord
}
