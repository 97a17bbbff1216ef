package write

import "github.com/viant/sysml/model"

// writeStatement renders one body statement and reports whether it emitted
// anything. The parser consumes a statement's leading keyword before
// capturing RawText, so StatementKind's own string value (it is declared as
// the keyword text itself, e.g. StmtBind = "bind") is what reintroduces the
// keyword on the way back out. Bind, connect, succession, then/first, and
// metadata-usage statements have the further special-cased rules the
// specification calls out to avoid corrupting a round trip. Every branch is
// responsible for its own trailing ";" — writeBody does not add one.
func (w *Writer) writeStatement(st *model.Statement) bool {
	switch st.Kind {
	case model.StmtBind:
		return w.writeBind(st)
	case model.StmtConnect:
		return w.writeConnect(st)
	case model.StmtSuccession:
		return w.writeSuccession(st)
	case model.StmtThen, model.StmtFirst:
		return w.writeThenOrFirst(st)
	case model.StmtMetadataUsage:
		return w.writeMetadataUsageStatement(st)
	default:
		return w.writeKeywordStatement(st)
	}
}

// writeKeywordStatement renders "<keyword> <rawtext>;", omitting the body
// entirely when RawText is empty (a bare keyword statement, e.g. "entry;",
// still needs its keyword) and skipping the trailing ";" when RawText
// already closes its own brace.
func (w *Writer) writeKeywordStatement(st *model.Statement) bool {
	kw := string(st.Kind)
	if st.RawText == "" {
		w.writeString(kw + ";")
		return true
	}
	w.writeString(kw + " " + trimTrailingSemicolon(st.RawText))
	if n := len(st.RawText); n == 0 || st.RawText[n-1] != '}' {
		w.buf.WriteString(";")
	}
	return true
}

func (w *Writer) writeBind(st *model.Statement) bool {
	if st.Source != "" && st.Target != "" {
		w.writeString("bind " + string(st.Source) + " = " + string(st.Target))
		w.buf.WriteString(";")
		return true
	}
	return w.writeKeywordStatement(st)
}

func (w *Writer) writeConnect(st *model.Statement) bool {
	if st.Source != "" && st.Target != "" {
		w.writeString("connect " + string(st.Source) + " to " + string(st.Target))
		w.buf.WriteString(";")
		return true
	}
	return w.writeKeywordStatement(st)
}

// writeSuccession implements the round-trip-safety rule: if the source
// text already contains " then ", the statement was captured whole and
// must not have a second "then" appended; if neither source nor target is
// present, the statement contributes nothing at all.
func (w *Writer) writeSuccession(st *model.Statement) bool {
	if st.Source != "" && st.Target != "" &&
		!containsThen(string(st.Source)) && !containsThen(string(st.Target)) {
		b := "succession first " + string(st.Source)
		if st.Guard != "" {
			b += " if " + st.Guard
		}
		b += " then " + string(st.Target)
		w.writeString(b)
		w.buf.WriteString(";")
		return true
	}
	if isEmptyOrSemicolons(st.RawText) {
		return false
	}
	return w.writeKeywordStatement(st)
}

func containsThen(s string) bool {
	for i := 0; i+6 <= len(s); i++ {
		if s[i:i+6] == " then " {
			return true
		}
	}
	return false
}

// writeThenOrFirst skips emitting anything when RawText, after trimming
// surrounding whitespace, is empty or only semicolons — a bodiless then/first
// carries no information worth preserving and would otherwise round-trip
// into orphaned punctuation.
func (w *Writer) writeThenOrFirst(st *model.Statement) bool {
	if isEmptyOrSemicolons(st.RawText) {
		return false
	}
	return w.writeKeywordStatement(st)
}

func isEmptyOrSemicolons(s string) bool {
	for _, r := range s {
		if r != ' ' && r != ';' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}

func trimTrailingSemicolon(s string) string {
	n := len(s)
	for n > 0 && (s[n-1] == ';' || s[n-1] == ' ') {
		n--
	}
	return s[:n]
}

// writeMetadataUsageStatement preserves the statement's raw text verbatim,
// adding a trailing ";" only when the text does not already end in "}" or
// ";" (a body-form metadata usage supplies its own closing brace). Unlike
// the other kinds, a metadata usage statement's RawText is captured
// including its leading "@Type", so no keyword needs reintroducing.
func (w *Writer) writeMetadataUsageStatement(st *model.Statement) bool {
	text := st.RawText
	if isEmptyOrSemicolons(text) {
		return false
	}
	w.writeString(text)
	if n := len(text); n == 0 || (text[n-1] != '}' && text[n-1] != ';') {
		w.buf.WriteString(";")
	}
	return true
}
