package migrate_test

import (
	"testing"

	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/migrate"
)

func mustParse(t *testing.T, text string) *jsondoc.Value {
	t.Helper()
	doc, err := jsondoc.ParseString(text)
	if err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}
	return doc
}

func TestToLegacyRenamesModelAndEncodesExtra(t *testing.T) {
	doc := mustParse(t, `{"name":"A","sing_model":"abc","styles":[{"name":"s","extra":1},{"name":"t","extra":"0000803f"},{"name":"u","extra":"loud"},{"name":"v"}]}`)
	got := migrate.ToLegacy(doc).String()
	want := `{"name":"A","pitch_model":"abc","styles":[{"name":"s","extra":"0000803F"},{"name":"t","extra":"0000803F"},{"name":"u","extra":"loud"},{"name":"v"}]}`
	if got != want {
		t.Fatalf("ToLegacy mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestToModernDecodesExtra(t *testing.T) {
	doc := mustParse(t, `{"pitch_model":"abc","styles":[{"extra":"000020C0"},{"extra":"xyz"},{"extra":2}]}`)
	got := migrate.ToModern(doc).String()
	want := `{"sing_model":"abc","styles":[{"extra":-2.5},{"extra":"xyz"},{"extra":2}]}`
	if got != want {
		t.Fatalf("ToModern mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestMigrationRoundTrip(t *testing.T) {
	inputs := []string{
		`{"name":"Bank","sing_model":"m1","styles":[{"name":"a","data":"00","extra":0.5}]}`,
		`{"sing_model":"m","nested":{"sing_model":"n","styles":[{"extra":-0.25}]}}`,
		`[{"sing_model":"x"},1,"s",null]`,
		`"scalar"`,
		`{"styles":"not-an-array"}`,
		`{"styles":[1,"two",{"extra":null}]}`,
	}
	for _, input := range inputs {
		doc := mustParse(t, input)
		legacy := migrate.ToLegacy(doc)
		back := migrate.ToModern(legacy)
		if !jsondoc.Equal(doc, back) {
			t.Fatalf("round trip mismatch for %s: got %s (legacy %s)", input, back, legacy)
		}
	}
}

func TestMigrationRecursesIntoNestedObjects(t *testing.T) {
	doc := mustParse(t, `{"variants":[{"sing_model":"a"}],"inner":{"sing_model":"b"}}`)
	got := migrate.ToLegacy(doc).String()
	want := `{"variants":[{"pitch_model":"a"}],"inner":{"pitch_model":"b"}}`
	if got != want {
		t.Fatalf("nested rename mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestMigrationDoesNotMutateInput(t *testing.T) {
	doc := mustParse(t, `{"sing_model":"a","styles":[{"extra":1}]}`)
	before := doc.String()
	_ = migrate.ToLegacy(doc)
	if doc.String() != before {
		t.Fatalf("input mutated: %s", doc.String())
	}
}

// Both forms present is ambiguous; the migration keeps the target-named field
// and silently drops the other. These tests pin that lossy behaviour.
func TestMigrationDropsSourceFieldOnCollision(t *testing.T) {
	doc := mustParse(t, `{"sing_model":"modern","pitch_model":"legacy"}`)
	if got := migrate.ToLegacy(doc).String(); got != `{"pitch_model":"legacy"}` {
		t.Fatalf("ToLegacy collision result %s", got)
	}
	if got := migrate.ToModern(doc).String(); got != `{"sing_model":"modern"}` {
		t.Fatalf("ToModern collision result %s", got)
	}
	// The round trip is therefore not lossless for such documents.
	if jsondoc.Equal(doc, migrate.ToModern(migrate.ToLegacy(doc))) {
		t.Fatal("expected collision document to lose a field across the round trip")
	}
}

func TestNonFiniteExtraPassesThrough(t *testing.T) {
	doc := jsondoc.Object(jsondoc.Member{Key: "styles", Value: jsondoc.Array(
		jsondoc.Object(jsondoc.Member{Key: "extra", Value: jsondoc.Number(nan())}),
	)})
	legacy := migrate.ToLegacy(doc)
	styles, _ := legacy.Get("styles")
	extra, _ := styles.Items()[0].Get("extra")
	if !extra.IsNumber() {
		t.Fatalf("expected non-finite extra to stay numeric, got %s", extra.Kind())
	}
}
