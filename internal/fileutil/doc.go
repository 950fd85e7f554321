// Package fileutil writes command output files atomically, optionally under
// an exclusive flock so only one writer touches a container at a time.
package fileutil
