// Package filesystem provides filesystem implementations for objlink.
//
// This package contains implementations of the types.FS interface,
// currently the standard OS filesystem used by every real run.
package filesystem
