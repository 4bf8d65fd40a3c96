package plan

import "errors"

// ErrStemCollision indicates two pages would be written to the same file.
var ErrStemCollision = errors.New("output file name collision")
