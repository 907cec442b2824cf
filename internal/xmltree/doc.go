// Package xmltree holds an XML document as an arena of nodes addressed by
// NodeID.
//
// Documents are read and written through github.com/beevik/etree, but every
// consumer works on indices: schema nodes keep a NodeID into the chain's
// canonical document and merges mutate that document in place through the
// same indices. Nodes removed from the tree stay in the arena, unreachable.
//
// Only elements, attributes and character data are kept. Comments and
// processing instructions are dropped on load.
package xmltree
