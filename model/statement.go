package model

// Statement is one body-statement of a closed set of kinds (bind, connect,
// flow, allocate, succession, entry/exit/do, transition, accept, send,
// assign, control flow, terminate, merge/decide/join/fork, first/then,
// result expression, metadata usage, shorthand feature, require/assume,
// subject, end member, return, actor/stakeholder/objective, frame, satisfy,
// include, expose, render, verify). Structured fields are filled in where
// the grammar makes them unambiguous; RawText preserves the fragment after
// the leading keyword token (the keyword itself is recovered from Kind's
// string value) so the writer can fall back to it.
type Statement struct {
	Kind     StatementKind
	Source   QualifiedRef
	Target   QualifiedRef
	Guard    string
	Payload  string
	RawText  string
	Location Location
}
