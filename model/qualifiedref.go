package model

import "strings"

// QualifiedRef is a "::"-separated path used to refer to a named element,
// possibly in another scope or model.
type QualifiedRef string

// ParentPath returns the substring up to the last "::" separator, or ""
// (with ok=false) when ref is unqualified.
func (ref QualifiedRef) ParentPath() (QualifiedRef, bool) {
	s := string(ref)
	idx := strings.LastIndex(s, "::")
	if idx < 0 {
		return "", false
	}
	return QualifiedRef(s[:idx]), true
}

// FirstSegment returns the substring up to the first "::" separator (the
// leading package name of an import target), or the whole ref if
// unqualified.
func (ref QualifiedRef) FirstSegment() string {
	s := string(ref)
	if idx := strings.Index(s, "::"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// TypedRef is a typing reference (the `typed_by` relation), which carries an
// extra flag recording whether it was written with the conjugation prefix
// `~`.
type TypedRef struct {
	Ref        QualifiedRef
	Conjugated bool
}
