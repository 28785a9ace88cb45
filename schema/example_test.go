package schema_test

import (
	"errors"
	"fmt"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/schema"
)

func ExampleSchema_Validate() {
	store := confit.New("demo")
	store.Set("server", "port", confit.Integer(0))
	store.Set("server", "mode", confit.Text("turbo"))

	s := schema.New().
		RequiredSection("database").
		Field("server", "port", schema.NewField(schema.TypeInteger).
			Required().
			Constraint(schema.Integer().Min(1).Max(65535))).
		Field("server", "mode", schema.NewField(schema.TypeText).
			Constraint(schema.Text().OneOf("debug", "release")))

	err := s.Validate(store)

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.FieldErrors {
			fmt.Println(fe)
		}
	}
	// Output:
	// database: missing_section (required section is missing)
	// server.mode: invalid_value (must be one of [debug, release], got "turbo")
	// server.port: integer_too_small (must be >= 1, got 0)
}

func ExampleSchema_ApplyDefaults() {
	store := confit.New("demo")

	s := schema.New().
		Field("server", "host", schema.NewField(schema.TypeText).Default(confit.Text("localhost"))).
		Field("server", "port", schema.NewField(schema.TypeInteger).Default(confit.Integer(8080)))

	s.ApplyDefaults(store)

	for _, field := range store.Provenance().Fields {
		v, _ := store.Get(field.Section, field.Key)
		fmt.Printf("%s = %s (%s)\n", field.KeyPath(), v, field.SourceName)
	}
	// Output:
	// server.host = "localhost" (default)
	// server.port = 8080 (default)
}
