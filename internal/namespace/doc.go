// Package namespace maps source files to dotted MATLAB namespaces and groups
// files by namespace.
//
// Only directories whose names start with the package marker ("+") or the
// class-folder marker ("@") contribute a segment; every other directory is
// transparent. A file with no marker directory above it belongs to Root, which is displayed
// as "root" but never equals a namespace spelled by marker directories.
//
//	+pkg/+sub/f.m        -> pkg.sub
//	+pkg/@Widget/draw.m  -> pkg.Widget
//	tools/_util/f.m      -> root
package namespace
