/*
Package domain contains the core data model of gatefold.

It defines sites, strands, segments, gates, species and complexes, both in their
source (tree-shaped) form and in the flat form produced by lowering. The package
is pure: no I/O, no persistence, no global state.

# Key Entities

  - Site / Strand: binding positions and the 5'→3' sequences they form.
  - Segment: a hairpin-left, middle or hairpin-right unit with a double-stranded core.
  - Gate: a binary join tree of segments, fused on the lower or upper edge.
  - SourceModel / Model: a document before and after lowering.
*/
package domain
