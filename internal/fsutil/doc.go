// Package fsutil holds the filesystem error kind shared by discovery and
// manifest writing, and the atomic file replace used for every write.
package fsutil
