// Package script runs user Lua scripts against a document.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, file loading functions are removed
// and require only resolves the standard modules and "blocksel". Every run
// is bounded by a deadline that interrupts the Lua VM.
//
// The blocksel module exposes the block resolver and the selection commands
// of a Host. Line numbers are 0-indexed, matching the JSON protocol:
//
//	local n = blocksel.line_count()
//	local s, e = blocksel.select(2)
//	for _, b in ipairs(blocksel.outline(2)) do
//	    print(b.kind, b.start_line, b.end_line, b.header)
//	end
//	return blocksel.selection()
package script
