// Package errors provides the classified error primitives used across mapidoc.
//
// Every failure that can reach the command line is a ClassifiedError carrying a
// category (path, config, validation, filesystem, git, internal), a severity and
// optional structured context. The CLI adapter maps categories to exit codes.
//
// Example usage:
//
//	err := errors.PathError("source directory does not exist").
//		WithContext("path", root).
//		Build()
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write page failed").
//		WithContext("file", target).
//		Build()
package errors
