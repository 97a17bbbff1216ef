// Package write implements the canonical source writer: given a
// SemanticModel, it produces textual SysML v2/KerML source that round-trips
// to an equal model and is idempotent under a second parse/write pass. The
// two primitive operations, writeIndent and writeNewline, are the only
// places atLineStart changes; the indent level is raised and lowered around
// each nested body by the body writers, mirroring the
// small, explicit state machines the teacher package favors for its own
// text emitters (see golang/emitter.go).
package write

import (
	"sort"
	"strings"

	"github.com/viant/sysml/model"
	"github.com/viant/sysml/parse"
)

const indentUnit = "    "

// Writer accumulates canonical source text. Its two observable pieces of
// state are atLineStart and the current indent level. writeIndent and
// writeNewline are the only mutators of atLineStart; indentLevel is
// incremented and decremented around nested bodies (writeBody and the
// inline applied-metadata body).
type Writer struct {
	buf         strings.Builder
	indentLevel int
	atLineStart bool
	sm          *model.SemanticModel
}

// New creates an empty Writer.
func New() *Writer {
	return &Writer{atLineStart: true}
}

// String returns the accumulated text.
func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i := 0; i < w.indentLevel; i++ {
		w.buf.WriteString(indentUnit)
	}
	w.atLineStart = false
}

func (w *Writer) writeNewline() {
	w.buf.WriteByte('\n')
	w.atLineStart = true
}

func (w *Writer) writeString(s string) {
	w.writeIndent()
	w.buf.WriteString(s)
}

// Model renders sm's top-level content: imports, then aliases, then a
// blank line if either block is nonempty and elements follow, then the
// top-level elements.
func Model(sm *model.SemanticModel) string {
	w := New()
	w.writeModel(sm)
	return w.String()
}

func (w *Writer) writeModel(sm *model.SemanticModel) {
	w.sm = sm
	imports := sortedImports(sm.ImportsOf("", false))
	aliases := sortedAliases(sm.AliasesOf("", false))
	elements := sm.ChildrenOf("", false)

	for _, imp := range imports {
		w.writeImport(imp)
		w.writeNewline()
	}
	for _, a := range aliases {
		w.writeAlias(a)
		w.writeNewline()
	}
	if (len(imports) > 0 || len(aliases) > 0) && len(elements) > 0 {
		w.writeNewline()
	}
	for i, n := range elements {
		if i > 0 {
			w.writeNewline()
		}
		w.writeNode(n)
		w.writeNewline()
	}
}

func (w *Writer) writeImport(imp *model.Import) {
	w.writeString("import ")
	if imp.Visibility == model.ImportExplicitPublic {
		w.buf.WriteString("public ")
	}
	w.buf.WriteString(string(imp.Target))
	w.buf.WriteString(";")
}

func (w *Writer) writeAlias(a *model.Alias) {
	w.writeString("alias ")
	w.buf.WriteString(QuoteName(a.Name))
	w.buf.WriteString(" for ")
	w.buf.WriteString(string(a.Target))
	w.buf.WriteString(";")
}

// sortedImports / sortedAliases apply the offset-ascending,
// offset-zero-sorts-last, stable-on-ties rule shared with node children.
func sortedImports(in []*model.Import) []*model.Import {
	out := append([]*model.Import(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return offsetLess(out[i].Location.Offset, out[j].Location.Offset) })
	return out
}

func sortedAliases(in []*model.Alias) []*model.Alias {
	out := append([]*model.Alias(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return offsetLess(out[i].Location.Offset, out[j].Location.Offset) })
	return out
}

func offsetLess(a, b int) bool {
	aZero, bZero := a == 0, b == 0
	if aZero != bZero {
		return !aZero
	}
	return a < b
}

// QuoteName applies the name-printing rule: single-quote when the name is
// empty, starts with anything but a letter/underscore, contains a
// character outside [A-Za-z0-9_], or collides with a reserved keyword.
// Inside quotes, ' and \ are backslash-escaped.
func QuoteName(name string) string {
	if needsQuoting(name) {
		var b strings.Builder
		b.WriteByte('\'')
		for _, r := range name {
			if r == '\'' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('\'')
		return b.String()
	}
	return name
}

func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	if parse.IsReserved(name) {
		return true
	}
	first := rune(name[0])
	if !isLetter(first) && first != '_' {
		return true
	}
	for _, r := range name {
		if !isLetter(r) && !isDigit(r) && r != '_' {
			return true
		}
	}
	return false
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
