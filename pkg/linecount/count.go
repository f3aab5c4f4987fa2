package linecount

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrFileUnreadable marks a candidate file that could not be opened or read.
var ErrFileUnreadable = errors.New("file unreadable")

// FileUnreadableError carries the path that failed to open or read.
type FileUnreadableError struct {
	Path string
	Err  error
}

func (e *FileUnreadableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q: %v", ErrFileUnreadable, e.Path, e.Err)
}

func (e *FileUnreadableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *FileUnreadableError) Is(target error) bool {
	return target == ErrFileUnreadable
}

// Count returns the number of content lines read from r. Lines are split on
// '\n' without a length limit; a trailing line without newline is counted.
func (c Classifier) Count(r io.Reader) (int, error) {
	br := bufio.NewReader(r)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 && c.IsContentLine(line) {
			n++
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

// CountFile opens path and counts its content lines. Any open or read failure
// is returned as a *FileUnreadableError.
func (c Classifier) CountFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &FileUnreadableError{Path: path, Err: err}
	}
	defer f.Close()

	n, err := c.Count(f)
	if err != nil {
		return 0, &FileUnreadableError{Path: path, Err: err}
	}
	return n, nil
}
