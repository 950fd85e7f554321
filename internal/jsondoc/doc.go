// Package jsondoc models untyped JSON documents as an ordered tagged union.
//
// Voice bank documents are edited by hand and migrated between schema
// generations, so the codecs cannot rely on a fixed Go struct: unknown keys,
// wrong-typed fields, and member order all have to survive a decrypt/encrypt
// round trip. Value keeps object members in source order, remembers number
// literals verbatim, and exposes explicit kind checks so the migrator and the
// validator match on variants instead of type-asserting interface values.
//
// Conversions to plain Go values (for jq queries) and to YAML map slices live
// here as well so every consumer sees the same ordering rules.
package jsondoc
