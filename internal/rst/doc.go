// Package rst renders Sphinx reStructuredText pages for namespace pages and
// the index that links them.
//
// Page and index bodies come from text/template files. The defaults are
// embedded; a templates directory may override either one by file name
// (page.rst.tmpl, index.rst.tmpl).
package rst
