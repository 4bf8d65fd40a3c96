// Package git clones remote MATLAB source repositories into a workspace so
// they can be documented like a local tree.
//
// Supported authentication: none, token (HTTP basic with the token as
// password), basic and ssh (private key file).
package git
