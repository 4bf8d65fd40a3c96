// Package output writes planned documents to the output directory and
// reports every file to the user.
package output
