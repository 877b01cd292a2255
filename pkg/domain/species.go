package domain

// SpeciesKind tags a species as a plain strand or a gate.
type SpeciesKind string

const (
	SpeciesStrand SpeciesKind = "strand"
	SpeciesGate   SpeciesKind = "gate"
)

// Species is one molecule description inside a complex.
type Species struct {
	Kind   SpeciesKind `json:"kind"`
	Strand Strand      `json:"strand,omitempty"`
	Gate   *Gate       `json:"gate,omitempty"`
}

// StrandSpecies wraps a plain strand.
func StrandSpecies(s Strand) Species {
	return Species{Kind: SpeciesStrand, Strand: s}
}

// GateSpecies wraps a gate tree.
func GateSpecies(g *Gate) Species {
	return Species{Kind: SpeciesGate, Gate: g}
}

// SourceComplex is a complex as written: a multiplicity and its species.
type SourceComplex struct {
	Multiplicity int       `json:"multiplicity"`
	Species      []Species `json:"species"`
}

// Complex is a lowered complex: a multiplicity and plain strands only.
type Complex struct {
	Multiplicity int      `json:"multiplicity"`
	Strands      []Strand `json:"strands"`
}

// Nick is an enzyme directive. It is carried through lowering untouched.
type Nick struct {
	Left  []Domain `json:"left"`
	Right []Domain `json:"right"`
}

// SourceModel is the parsed form of a source document.
type SourceModel struct {
	Toeholds  []string        `json:"toeholds,omitempty"`
	Nicks     []Nick          `json:"nicks,omitempty"`
	Complexes []SourceComplex `json:"complexes"`
}

// Model is the canonical flat form consumed by the simulator.
type Model struct {
	Toeholds  []string  `json:"toeholds"`
	Nicks     []Nick    `json:"nicks,omitempty"`
	Complexes []Complex `json:"complexes"`
}

// StrandCount returns the number of strands across all complexes.
func (m *Model) StrandCount() int {
	n := 0
	for _, c := range m.Complexes {
		n += len(c.Strands)
	}
	return n
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	out := &Model{
		Toeholds:  append([]string(nil), m.Toeholds...),
		Complexes: make([]Complex, len(m.Complexes)),
	}
	if m.Nicks != nil {
		out.Nicks = make([]Nick, len(m.Nicks))
		for i, n := range m.Nicks {
			out.Nicks[i] = Nick{
				Left:  append([]Domain(nil), n.Left...),
				Right: append([]Domain(nil), n.Right...),
			}
		}
	}
	for i, c := range m.Complexes {
		strands := make([]Strand, len(c.Strands))
		for j, s := range c.Strands {
			strands[j] = append(Strand(nil), s...)
		}
		out.Complexes[i] = Complex{Multiplicity: c.Multiplicity, Strands: strands}
	}
	return out
}
