/*
Package gatefold lowers DNA strand-displacement gate descriptions into plain strands.

A model source describes complexes made of strands and gates. A gate is a
chain of double-stranded segments joined along their lower (":") or upper
("::") edge, optionally closed by hairpin loops. The lowering pass melts every
gate into the single strands it is physically made of, giving each paired
position a fresh binding so that the result can be handed to a simulator that
only understands strands and bonds.

# Usage

	eng, err := gatefold.New("") // no library: lower raw sources only
	if err != nil {
		log.Fatal(err)
	}

	model, err := eng.Lower(ctx, []byte("toehold t\n[ {t^*}[x]<y> ] | <t^ x>"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(model.StrandCount())

With a library path the engine reads model documents (markdown with a YAML
frontmatter) through Loam and can lower them by ID:

	eng, _ := gatefold.New("./models", gatefold.WithStore(memory.NewStore()))
	model, err := eng.LowerByID(ctx, "transducer")

# Errors

Joining two hairpin-closed pieces produces a ring, which the lowering pass does
not support; such runs fail with an error wrapping
domain.ErrUnsupportedCircularStructure. Malformed source text yields a
*compiler.SyntaxError carrying the line and column.
*/
package gatefold
