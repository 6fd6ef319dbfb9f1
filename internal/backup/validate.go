package backup

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce  sync.Once
	snapshotDef cue.Value
)

// snapshotSchema compiles the embedded schema once per process.
func snapshotSchema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		snapshotDef = ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).
			LookupPath(cue.ParsePath("#Snapshot"))
	})
	return snapshotDef
}

// ValidateDocument checks that data is well-formed JSON matching the
// snapshot schema. Called by Import before any store mutation; a failure
// here means the document was rejected with the database untouched.
func ValidateDocument(data []byte) error {
	schema := snapshotSchema()
	if err := schema.Err(); err != nil {
		return fmt.Errorf("snapshot schema: %w", err)
	}

	expr, err := cuejson.Extract("snapshot.json", data)
	if err != nil {
		return fmt.Errorf("parse snapshot document: %w", err)
	}

	doc := schema.Context().BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse snapshot document: %w", err)
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid snapshot document: %w", err)
	}
	return nil
}
