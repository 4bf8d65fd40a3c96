package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/util/sets"
)

// DefaultExtensions lists the source file extensions documented by default.
var DefaultExtensions = []string{".m"}

// DefaultSkipDirs lists directory names that never contain documented sources.
var DefaultSkipDirs = []string{"private", "__pycache__"}

// File represents one discovered source file.
type File struct {
	Path string // Path as discovered (root joined with the relative path)
	Rel  string // Slash-separated path relative to the source root
	Name string // File name without extension
	Ext  string // File extension including the dot
}

// Options controls which files and directories discovery considers.
type Options struct {
	Extensions []string
	SkipDirs   []string
	// Exclude holds doublestar patterns matched against slash-separated
	// root-relative paths, e.g. "**/tests/**" or "legacy/*.m".
	Exclude []string
}

// Validate checks that every exclude pattern is well formed.
func (o Options) Validate() error {
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return ferrors.ConfigError("invalid exclude pattern").
				WithContext("pattern", pattern).
				Build()
		}
	}
	return nil
}

// Discovery walks a source tree and collects documented files.
type Discovery struct {
	extensions sets.Set[string]
	skipDirs   sets.Set[string]
	exclude    []string
}

// NewDiscovery creates a discovery instance. Empty option lists fall back to
// DefaultExtensions and DefaultSkipDirs.
func NewDiscovery(opts Options) *Discovery {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	skips := opts.SkipDirs
	if skips == nil {
		skips = DefaultSkipDirs
	}
	return &Discovery{
		extensions: sets.New(exts...),
		skipDirs:   sets.New(skips...),
		exclude:    slices.Clone(opts.Exclude),
	}
}

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return ferrors.PathError("source directory does not exist").
				WithCause(ErrRootNotFound).
				WithContext("path", root).
				Build()
		}
		return ferrors.WrapError(err, ferrors.CategoryPath, "cannot access source directory").
			Fatal().
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return ferrors.PathError("source path is not a directory").
			WithCause(ErrRootNotDirectory).
			WithContext("path", root).
			Build()
	}
	return nil
}

// Discover returns every source file under root in path order. Hidden
// directories and files, and directories named in the skip list, are ignored.
func (d *Discovery) Discover(root string) ([]File, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOutsideRoot, err)
		}

		name := entry.Name()
		if entry.IsDir() {
			if d.SkipsDir(name) || d.Excluded(rel+"/") {
				slog.Debug("Skipping directory", logfields.Path(path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Matches(name) || d.Excluded(rel) {
			return nil
		}

		ext := filepath.Ext(name)
		files = append(files, File{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Name: strings.TrimSuffix(name, ext),
			Ext:  ext,
		})
		slog.Debug("Discovered file", logfields.File(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", ErrWalkFailed, err), ferrors.CategoryFileSystem, "failed to walk source directory").
			Fatal().
			WithContext("path", root).
			Build()
	}

	SortFiles(files)
	slog.Info("Source files discovered",
		logfields.Path(root),
		logfields.Files(len(files)),
		slog.Any("extensions", d.Extensions()))
	return files, nil
}

// Extensions returns the matched extensions in sorted order.
func (d *Discovery) Extensions() []string { return sets.Sorted(d.extensions) }

// SkipsDir reports whether a directory with this base name is never walked.
func (d *Discovery) SkipsDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return d.skipDirs.Has(name)
}

// Matches reports whether a file with this base name is a source file. Hidden
// files never match: a name like ".draft.m" has no valid module name.
func (d *Discovery) Matches(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return d.extensions.Has(filepath.Ext(name))
}

// Excluded reports whether the root-relative path rel matches an exclude
// pattern. Directories are passed with a trailing slash.
func (d *Discovery) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range d.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if dir, isDir := strings.CutSuffix(rel, "/"); isDir {
			if ok, err := doublestar.Match(pattern, dir); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// SortFiles orders files component by component of their relative path, so
// the order does not depend on the platform separator.
func SortFiles(files []File) {
	slices.SortStableFunc(files, func(a, b File) int {
		return slices.Compare(strings.Split(a.Rel, "/"), strings.Split(b.Rel, "/"))
	})
}

// RelSegments returns the path components of path relative to root, the file
// name being the last element. It fails when path is not strictly below root.
func RelSegments(path, root string) ([]string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, outsideRoot(path, root, err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, outsideRoot(path, root, err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return nil, outsideRoot(path, root, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, outsideRoot(path, root, nil)
	}
	return strings.Split(filepath.ToSlash(rel), "/"), nil
}

func outsideRoot(path, root string, cause error) error {
	wrapped := ErrOutsideRoot
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrOutsideRoot, cause)
	}
	return ferrors.PathError("file is not under source root").
		WithCause(wrapped).
		WithContext("file", path).
		WithContext("root", root).
		Build()
}
