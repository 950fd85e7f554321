// Package testsupport holds fixtures shared by package tests: a valid voice
// bank document, deterministic vectors, and temp-directory configs.
package testsupport
