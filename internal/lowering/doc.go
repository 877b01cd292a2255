/*
Package lowering converts gate trees into plain strands.

A gate is folded bottom-up. Each segment is first viewed as either one
continuous strand (hairpins) or an open upper/lower pair (middles), with its
double-stranded core melted into two antiparallel strands that share fresh
bindings. Joins then fuse neighbouring views on their lower or upper edge;
strands left without an attachment point are sealed. Joining two single-strand
views would close a ring and fails with domain.ErrUnsupportedCircularStructure.

Bindings come from an Allocator that belongs to exactly one run.
*/
package lowering
