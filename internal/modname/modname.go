// Package modname derives Sphinx module names and file stems from MATLAB
// source paths.
//
// A module name is a dotted identifier whose segments contain only letters,
// digits and underscores and never start with a digit. Sanitizing is
// idempotent.
package modname

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/namespace"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// DigitPrefix is prepended to segments that would otherwise start with a digit.
const DigitPrefix = "m_"

// RootStem is the file stem of the root namespace.
const RootStem = namespace.RootLabel

// ErrEmptySegment indicates a name segment that sanitizes to nothing.
var ErrEmptySegment = errors.New("name segment is empty after sanitizing")

// Name is a sanitized dotted module name.
type Name string

func (n Name) String() string { return string(n) }

var replacer = strings.NewReplacer(
	"-", "_",
	"(", "",
	")", "",
	" ", "_",
)

// Segment sanitizes a single name segment.
func Segment(s string, m namespace.Markers) string {
	s = m.Remove(norm.NFC.String(s))
	s = replacer.Replace(s)
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(r) {
		s = DigitPrefix + s
	}
	return s
}

// Sanitize cleans every segment of an already dotted name.
func Sanitize(dotted string, m namespace.Markers) Name {
	return Name(join(strings.Split(dotted, "."), m))
}

// FromPath builds the module name of the file at p relative to root. The
// extension is dropped and the remaining path segments become dotted parts.
// A part that sanitizes to nothing, such as "()", is a path error.
func FromPath(p, root string, m namespace.Markers) (Name, error) {
	segs, err := source.RelSegments(p, root)
	if err != nil {
		return "", err
	}

	last := len(segs) - 1
	segs[last] = strings.TrimSuffix(segs[last], path.Ext(segs[last]))

	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		for _, part := range strings.Split(seg, ".") {
			clean := Segment(part, m)
			if clean == "" {
				return "", ferrors.PathError("module name has an empty segment").
					WithCause(ErrEmptySegment).
					WithContext("path", p).
					WithContext("segment", part).
					Build()
			}
			parts = append(parts, clean)
		}
	}
	return Name(strings.Join(parts, ".")), nil
}

// CheckNamespace fails when any segment of ns sanitizes to nothing.
func CheckNamespace(ns namespace.Namespace, m namespace.Markers) error {
	for _, seg := range ns.Segments() {
		if Segment(seg, m) == "" {
			return ferrors.ValidationError("namespace has an empty segment").
				WithCause(ErrEmptySegment).
				WithContext("namespace", ns.String()).
				WithContext("segment", seg).
				Build()
		}
	}
	return nil
}

// NamespaceStem returns the file stem for ns: sanitized segments joined with
// "_". The root namespace uses RootStem.
func NamespaceStem(ns namespace.Namespace, m namespace.Markers) string {
	if ns.IsRoot() {
		return RootStem
	}
	segs := ns.Segments()
	for i, seg := range segs {
		segs[i] = Segment(seg, m)
	}
	return strings.Join(segs, "_")
}

func join(parts []string, m namespace.Markers) string {
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = Segment(part, m)
	}
	return strings.Join(out, ".")
}
