// Package types holds the shared value types passed between objlink's
// scanner, duplicate selector and replacer, plus the filesystem interface
// the packages operate through.
package types
