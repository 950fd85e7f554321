// Package voicebank checks and canonicalizes voice bank configuration
// documents.
//
// Validate runs every rule against an untyped jsondoc tree and returns all
// problems at once as Issues carrying a severity, a message, and the path of
// the offending value. It never fails: wrong-typed or missing fields become
// issues, not errors. Normalize rewrites a document into canonical form
// (lower-case languages, the phoneset mandated by the language, upper-case
// hex) and is meant to run before validation or persistence of generated or
// imported documents.
//
// The allowed languages, their phonesets, and the four model id tables are
// fixed lookup tables built once at start-up. FromDocument gives callers a
// typed Config for documents that already passed validation, and Schema
// describes the same shape as JSON Schema for editor integration.
package voicebank
