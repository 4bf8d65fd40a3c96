// Package workspace manages ephemeral working directories, such as the
// checkout of a remote source repository. Each workspace is a timestamped
// directory (e.g. mapidoc-20251214-122336-1234) removed by Cleanup.
package workspace
