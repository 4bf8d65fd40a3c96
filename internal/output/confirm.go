package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

// IsNonEmptyDir reports whether dir exists and has at least one entry. A
// missing directory is empty.
func IsNonEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, ferrors.FileSystemError("cannot inspect output directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, ferrors.FileSystemError("cannot inspect output directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	return len(names) > 0, nil
}

// Confirm asks whether to continue writing into the non-empty dir. Only "y"
// and "yes" (any case) accept; end of input declines.
func Confirm(in io.Reader, out io.Writer, dir string) (bool, error) {
	fmt.Fprintf(out, "Output directory %s is not empty. Continue? [y/N] ", dir)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, ferrors.FileSystemError("cannot read confirmation").
			WithCause(err).
			Build()
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
