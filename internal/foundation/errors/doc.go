// Package errors provides the classified error primitives used across mdlinkcheck.
//
// A ClassifiedError carries a category, a severity and a retry strategy next to the
// usual message and cause, so the CLI can pick exit codes and log levels without
// string matching.
//
//	err := errors.GitError("list tracked files").
//		WithContext("root", root).
//		WithCause(cause).
//		Build()
package errors
