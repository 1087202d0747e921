// Package jolt transforms JSON documents with Jolt style specifications.
//
// A specification is an ordered list of operations:
//
//	[
//	  {"operation": "shift", "spec": {"name": "data.name", "account": "data.account"}},
//	  {"operation": "default", "spec": {"data": {"active": true}}},
//	  {"operation": "remove", "spec": {"data": {"account": {"id": ""}}}}
//	]
//
// shift moves input values to new output locations. Its keys match input
// keys (literals, a|b alternation, * globs, &(level,index) back-references,
// $ and @ computed values, #text constants) and its values are output paths
// such as "a.b[0].c", "list[]" or "photo-&-url". default inserts values that
// are missing and remove deletes paths.
//
// Documents are plain trees: nil, bool, string, json.Number, []any and
// *Object, which keeps member order. Compile a spec once and share it;
// Transform is safe for concurrent use.
package jolt
