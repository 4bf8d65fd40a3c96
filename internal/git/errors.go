package git

import "errors"

// ErrEmptyURL is returned when a remote has no URL.
var ErrEmptyURL = errors.New("remote URL is empty")
