// Package migrate rewrites voice bank documents between the modern schema
// used by editors and the legacy schema stored inside containers.
//
// The legacy schema names the singing model "pitch_model" and stores each
// style's optional "extra" scalar as an 8-character little-endian float32
// hex string. ToLegacy and ToModern walk the whole tree, so nested objects
// receive the same renames, and pass any value of an unexpected shape
// through untouched.
package migrate
