package record

import (
	"github.com/venicegeo/sidd-go/util"
)

var strictDefault bool

func init() {
	strictDefault, _ = util.IsStrictValidationEnabled()
	if strictDefault {
		util.LogInfo(&util.BasicLogContext{}, "Strict metadata validation enabled via environment variable")
	}
}

// Apply performs mapping construction on a record: each entry of fields is
// coerced to its declared kind and assigned, absent DefaultNow timestamps are
// filled in, and the namespace override is stored when given. Required fields
// left unset are a ValidationError under strict mode and are tolerated
// otherwise, left for Validate to report.
func Apply(rec Record, fields Fields, ns *Namespace) error {
	return applyFields(rec, fields, ns, strictDefault)
}

// ApplyStrict is Apply with strict validation regardless of the process-wide
// setting.
func ApplyStrict(rec Record, fields Fields, ns *Namespace) error {
	return applyFields(rec, fields, ns, true)
}

func applyFields(rec Record, fields Fields, ns *Namespace, strict bool) error {
	if ns != nil {
		rec.SetNamespace(ns)
	}

	schema := rec.Schema()
	for name, value := range fields {
		field := schema.Field(name)
		if field == nil {
			panic(&SchemaError{Tag: schema.Tag, Name: name})
		}
		canonical, err := coerceValue(field, value)
		if err != nil {
			return err
		}
		if err = rec.SetField(name, canonical); err != nil {
			return err
		}
	}

	applyDefaults(rec)

	if strict {
		return Validate(rec)
	}
	return nil
}

// applyDefaults fills in DefaultNow timestamps left unset by construction.
// Decoding deliberately skips this: a document with an absent timestamp must
// read back as absent.
func applyDefaults(rec Record) {
	schema := rec.Schema()
	for i := range schema.Fields {
		field := &schema.Fields[i]
		if field.Kind == DateTimeField && field.DefaultNow && rec.Field(field.Name) == nil {
			rec.SetField(field.Name, Now())
		}
	}
}
