/*
Package dsl provides a Go DSL for programmatically constructing gatefold models.

It builds the same domain.SourceModel the text parser produces, using a fluent
builder instead of source text. Sites are written in source notation
("t^", "x*", "a!1").

Example usage:

	model, err := dsl.New().
		Toehold("t").
		Complex(1).
		Gate(dsl.Gate(dsl.Middle("x").LowerLeft("t^*").UpperRight("y")).
			Lower(dsl.HairpinRight("r").Core("z"))).
		Complex(10).
		Strand("t^", "x").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	lowered, err := eng.LowerModel(ctx, model)
*/
package dsl
