// Package gen emits typed loaders for a merged schema.
//
// A schema tree is first lowered into a language-neutral Model: one Class
// per map node, named after its document path with '/' replaced by '_'.
// Backends render the model through text/template:
//   - CSharp: partial classes with XmlSerializer attributes
//   - Python: classes reading an ElementTree element
//   - Go: structs with encoding/xml tags and a Load function, run
//     through goimports
package gen
