/*
Package entityref parses the property paths an evaluator uses as node
identifiers, such as `Input1.text` or `Table1.selectedRows[0].name`.

A path is a dot-separated sequence of segments. Each segment is a name
optionally followed by one or more `[index]` accessors. The first segment
names the entity that owns the property; the debugger groups nodes by it.
*/
package entityref
