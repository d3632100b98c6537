// Package platform hides the few filesystem differences between Unix and
// Windows that matter when locating and writing executables. On Windows
// permission bits are not enforced, so executability is decided by file
// extension instead.
package platform
