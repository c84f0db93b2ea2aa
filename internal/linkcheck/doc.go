// Package linkcheck finds relative markdown links whose targets do not exist.
//
// A run enumerates tracked documentation files, extracts raw link targets, drops the
// ones that are not local paths (same-file anchors, anything with a URI scheme),
// normalizes the rest (angle brackets, fragment, query, percent-encoding) and resolves
// them against the directory of the file that contains the link.
package linkcheck
