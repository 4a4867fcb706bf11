// Package resource provides 32-bit handle tables for values the shim
// hands out across the binary interface.
//
// Legacy callers only ever see raw pointers and 32-bit tokens. The shim
// keeps the Go values behind them in a Table: live proxy objects,
// enumeration contexts for one enumeration call, and Direct3D 8 shader
// and state block tokens.
//
//	table := resource.NewTable()
//	h := table.Insert(typeID, proxy)
//	v, ok := table.Get(h)
//	v, ok = table.Remove(h)
//
// Handle 0 is never issued. Freed slots are reused under a new
// generation, so a token kept after Remove stays invalid.
//
// # Typed views
//
// Typed restricts a shared table to one type ID. Views over the same
// table never hand out equal handles:
//
//	shaders := resource.NewTyped[*vertexShader](table, kindVertexShader)
//	h := shaders.Insert(vs)
//	vs, ok := shaders.Get(h)
//
// # Observers and cleanup
//
// Observers receive created and dropped events synchronously, outside
// the table lock. Values implementing Dropper are dropped when removed
// or cleared. Close only stops new inserts.
package resource
