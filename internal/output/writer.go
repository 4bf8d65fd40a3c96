package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/plan"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Writer materializes a plan under Dir. With DryRun set it reports what it
// would write and touches nothing.
type Writer struct {
	Dir    string
	DryRun bool
	Out    io.Writer
}

// Result lists the files written (or that would be written) in order.
type Result struct {
	Paths []string
}

// Write emits the index first, then every page in namespace and page order.
// The first failure aborts the write. An empty plan writes nothing.
func (w *Writer) Write(ctx context.Context, p *plan.Plan) (Result, error) {
	var res Result
	if p.Empty() {
		return res, nil
	}
	out := w.Out
	if out == nil {
		out = io.Discard
	}

	if !w.DryRun {
		if err := os.MkdirAll(w.Dir, dirPerm); err != nil {
			return res, ferrors.FileSystemError("cannot create output directory").
				WithCause(err).
				WithContext("path", w.Dir).
				Build()
		}
	}

	if err := w.emit(p.Index, &res); err != nil {
		return res, err
	}
	fmt.Fprintf(out, "%s: %s\n", w.verb(), filepath.Join(w.Dir, p.Index.Name))

	next := 0
	for _, s := range p.Summaries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		fmt.Fprintf(out, "\nNamespace '%s': %d files, %d page(s)\n", s.Namespace, s.Files, s.Pages)
		for range s.Pages {
			doc := p.Pages[next]
			next++
			if err := w.emit(doc, &res); err != nil {
				return res, err
			}
			fmt.Fprintf(out, "  %s: %s (%d files)\n", w.verb(), filepath.Join(w.Dir, doc.Name), doc.Files)
		}
	}
	return res, nil
}

func (w *Writer) emit(doc plan.Document, res *Result) error {
	path := filepath.Join(w.Dir, doc.Name)
	res.Paths = append(res.Paths, path)
	if w.DryRun {
		return nil
	}
	if err := os.WriteFile(path, []byte(doc.Content), filePerm); err != nil {
		return ferrors.FileSystemError("cannot write output file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	slog.Debug("Wrote document", logfields.File(path))
	return nil
}

func (w *Writer) verb() string {
	if w.DryRun {
		return "Would create"
	}
	return "Created"
}
