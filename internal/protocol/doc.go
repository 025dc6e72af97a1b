// Package protocol serves block resolution to editors over a JSON-lines
// stream.
//
// Each request is one JSON object on its own line:
//
//	{"id":1,"method":"resolve","params":{"path":"app.py","language":"python",
//	  "selection":{"start":4,"end":4,"active":4,"empty":true}}}
//
// and each response is one line carrying the same id:
//
//	{"id":1,"result":{"startLine":4,"endLine":9,"endColumn":12}}
//
// A resolution that finds no block answers with "result":null; failures
// answer with an "error" object holding a JSON-RPC style code and message.
//
// Methods:
//
//   - resolve: the range to select next for a document and selection.
//   - classify: the kind and indentation of one line.
//   - outline: the block outline of a document.
//   - shutdown: answers and ends the session.
//
// Documents named by path are decoded once and kept in an LRU cache keyed
// by path, modification time and size, so an edited file is re-read.
package protocol
