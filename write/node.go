package write

import (
	"github.com/viant/sysml/model"
)

// writeNode renders one element. w.sm must be set so child/import/alias
// lookups by scope id work; callers outside this package should go through
// Model, which sets it.
func (w *Writer) writeNode(n *model.Node) {
	w.writeLeadingTrivia(n.LeadingTrivia)

	for _, m := range n.PrefixAppliedMetadata {
		w.writeAppliedMetadata(m)
		w.writeNewline()
	}

	w.writeIndent()

	if n.Visibility != model.VisibilityDefault {
		w.buf.WriteString(string(n.Visibility))
		w.buf.WriteByte(' ')
	}

	for i, ref := range n.PrefixMetadata {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		w.buf.WriteByte('#')
		w.buf.WriteString(string(ref))
		w.buf.WriteByte(' ')
	}

	if n.Direction != model.DirectionNone && n.IsUsage() {
		w.buf.WriteString(string(n.Direction))
		w.buf.WriteByte(' ')
	}

	if n.Asserted {
		w.buf.WriteString("assert ")
		if n.Negated {
			w.buf.WriteString("not ")
		}
	}

	writeFlag := func(flag bool, kw string) {
		if flag {
			w.buf.WriteString(kw)
			w.buf.WriteByte(' ')
		}
	}
	writeFlag(n.Abstract, "abstract")
	writeFlag(n.Variation, "variation")
	if n.Kind == model.KindStateUsage {
		writeFlag(n.Parallel, "parallel")
	}
	writeFlag(n.Readonly, "readonly")
	writeFlag(n.Derived, "derived")
	writeFlag(n.Constant, "constant")

	if n.Ref {
		w.buf.WriteString("ref ")
		if n.HasRefBehavioralKeyword {
			w.buf.WriteString(n.RefBehavioralKeyword)
			w.buf.WriteByte(' ')
		}
	}
	writeFlag(n.End, "end")
	if n.Kind == model.KindStateUsage {
		writeFlag(n.Exhibit, "exhibit")
	}

	kw := writeKindKeyword(n)
	if kw != "" {
		w.buf.WriteString(kw)
	}

	if n.Kind == model.KindEndFeature && n.Multiplicity != nil {
		if kw != "" {
			w.buf.WriteByte(' ')
		}
		w.writeMultiplicityCompact(n.Multiplicity)
	}

	if n.HasName {
		if kw != "" {
			w.buf.WriteByte(' ')
		}
		w.buf.WriteString(QuoteName(n.Name))
	}

	if n.HasParamList {
		w.buf.WriteString(n.ParamList)
	}

	w.writeRelationGroups(n)

	if n.Kind != model.KindEndFeature && n.Multiplicity != nil {
		w.buf.WriteByte(' ')
		w.writeMultiplicityCompact(n.Multiplicity)
	}

	if n.Default != nil && n.IsUsage() {
		if n.Default.HasKeyword {
			w.buf.WriteString(" default")
		}
		w.buf.WriteString(" = ")
		w.buf.WriteString(n.Default.Expr)
	}

	if n.HasConnectorPart {
		w.buf.WriteByte(' ')
		if n.HasConnectKeyword {
			w.buf.WriteString("connect ")
		}
		w.buf.WriteString(n.ConnectorPart)
	}

	w.writeBody(n)
}

func (w *Writer) writeMultiplicityCompact(m *model.Multiplicity) {
	w.buf.WriteByte('[')
	w.buf.WriteString(m.Lower)
	if m.Upper != "" && m.Upper != m.Lower {
		w.buf.WriteString("..")
		w.buf.WriteString(m.Upper)
	}
	w.buf.WriteByte(']')
}

// writeRelationGroups emits typing/specialization/redefinition/reference
// groups in the fixed order :>, :>>, ::>, then :. Each group starts with
// its own operator once; further entries in the group are comma-separated.
func (w *Writer) writeRelationGroups(n *model.Node) {
	writeRefs := func(op string, refs []model.QualifiedRef) {
		if len(refs) == 0 {
			return
		}
		w.buf.WriteByte(' ')
		w.buf.WriteString(op)
		w.buf.WriteByte(' ')
		for i, r := range refs {
			if i > 0 {
				w.buf.WriteString(", ")
			}
			w.buf.WriteString(string(r))
		}
	}
	writeRefs(":>", n.Specializes)
	writeRefs(":>>", n.Redefines)
	writeRefs("::>", n.References)

	if len(n.TypedBy) == 0 {
		return
	}
	if n.Kind == model.KindEndFeature {
		w.buf.WriteString(":")
	} else {
		w.buf.WriteString(" : ")
	}
	for i, t := range n.TypedBy {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		if t.Conjugated {
			w.buf.WriteByte('~')
		}
		w.buf.WriteString(string(t.Ref))
	}
}

// bodyItem is one entry of the unified body collection: documentation,
// applied metadata, owned imports/aliases, body statements, child nodes,
// named comments, and textual representations all reduce to one of these
// before the single offset/insertion sort.
// render writes the item and reports whether anything was emitted; items
// that contribute no text (e.g. a degenerate succession/then statement)
// return false so the caller skips the line entirely instead of leaving a
// blank one behind. Every render that returns true is responsible for its
// own trailing ";" or "}" — members differ in how they close themselves.
type bodyItem struct {
	offset int
	order  int
	render func(w *Writer) bool
}

func selfTerminated(write func(w *Writer)) func(w *Writer) bool {
	return func(w *Writer) bool {
		write(w)
		w.buf.WriteString(";")
		return true
	}
}

func (w *Writer) writeBody(n *model.Node) {
	var items []bodyItem
	order := 0
	next := func() int { order++; return order - 1 }

	if n.Doc != nil {
		doc := n.Doc
		items = append(items, bodyItem{offset: doc.Location.Offset, order: next(), render: selfTerminated(func(w *Writer) {
			w.writeString("doc /* " + doc.Text + " */")
		})})
	}
	for _, m := range n.AppliedMetadata {
		m := m
		items = append(items, bodyItem{offset: m.Location.Offset, order: next(), render: func(w *Writer) bool {
			w.writeIndent()
			w.writeAppliedMetadataInline(m)
			w.buf.WriteString(";")
			return true
		}})
	}
	imports := w.sm.ImportsOf(n.ID, true)
	for _, imp := range imports {
		imp := imp
		items = append(items, bodyItem{offset: imp.Location.Offset, order: next(), render: func(w *Writer) bool {
			w.writeImport(imp)
			return true
		}})
	}
	aliases := w.sm.AliasesOf(n.ID, true)
	for _, a := range aliases {
		a := a
		items = append(items, bodyItem{offset: a.Location.Offset, order: next(), render: func(w *Writer) bool {
			w.writeAlias(a)
			return true
		}})
	}
	for _, st := range n.BodyStatements {
		st := st
		items = append(items, bodyItem{offset: st.Location.Offset, order: next(), render: func(w *Writer) bool {
			return w.writeStatement(st)
		}})
	}
	for _, child := range w.sm.ChildrenOf(n.ID, true) {
		child := child
		items = append(items, bodyItem{offset: child.Location.Offset, order: child.InsertionIndex(), render: func(w *Writer) bool {
			w.writeNode(child)
			return true
		}})
	}
	for _, nc := range n.NamedComments {
		nc := nc
		items = append(items, bodyItem{offset: nc.Location.Offset, order: next(), render: selfTerminated(func(w *Writer) {
			w.writeString("comment " + QuoteName(nc.Name) + " /* " + nc.Text + " */")
		})})
	}
	for _, rep := range n.TextualRepresentations {
		rep := rep
		items = append(items, bodyItem{offset: rep.Location.Offset, order: next(), render: selfTerminated(func(w *Writer) {
			w.writeString("rep " + QuoteName(rep.Name) + " language \"" + rep.Language + "\" /* " + rep.Text + " */")
		})})
	}

	if len(items) == 0 && n.ResultExpression == nil {
		w.buf.WriteString(";")
		return
	}

	sortBodyItems(items)

	w.buf.WriteString(" {")
	w.writeNewline()
	w.indentLevel++
	for _, it := range items {
		if it.render(w) {
			w.writeNewline()
		}
	}
	if n.ResultExpression != nil {
		if w.writeStatement(n.ResultExpression) {
			w.writeNewline()
		}
	}
	w.writeTrailingTrivia(n.TrailingTrivia)
	w.indentLevel--
	w.writeIndent()
	w.buf.WriteString("}")
}

func sortBodyItems(items []bodyItem) {
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && bodyItemLess(items[j], items[j-1]) {
			items[j], items[j-1] = items[j-1], items[j]
			j--
		}
	}
}

func bodyItemLess(a, b bodyItem) bool {
	aZero, bZero := a.offset == 0, b.offset == 0
	if aZero != bZero {
		return !aZero
	}
	if a.offset != b.offset {
		return a.offset < b.offset
	}
	return a.order < b.order
}

func (w *Writer) writeLeadingTrivia(t *model.Trivia) {
	for _, item := range t.Slice() {
		w.writeOneTrivia(item)
	}
}

func (w *Writer) writeTrailingTrivia(t *model.Trivia) {
	for _, item := range t.Slice() {
		w.writeOneTrivia(item)
	}
}

func (w *Writer) writeOneTrivia(t *model.Trivia) {
	switch t.Kind {
	case model.TriviaBlankLine:
		for i := 0; i < t.BlankLineCount; i++ {
			w.writeNewline()
		}
	case model.TriviaLineComment:
		w.writeString("// " + t.Text)
		w.writeNewline()
	case model.TriviaBlockComment, model.TriviaRegularComment:
		w.writeString("/* " + t.Text + " */")
		w.writeNewline()
	}
}

func (w *Writer) writeAppliedMetadata(m *model.MetadataUsage) {
	w.writeIndent()
	w.writeAppliedMetadataInline(m)
}

// writeAppliedMetadataInline renders `@Type { :>> f = v; ... }` or
// `@Type;` without managing indentation itself (the caller already placed
// the cursor), per the applied-metadata-write rule: features use the
// :>> shorthand, one per line.
func (w *Writer) writeAppliedMetadataInline(m *model.MetadataUsage) {
	w.buf.WriteString("@")
	w.buf.WriteString(string(m.TypeRef))
	if len(m.Features) == 0 {
		w.buf.WriteString(";")
		return
	}
	w.buf.WriteString(" {")
	w.writeNewline()
	w.indentLevel++
	for _, f := range m.Features {
		w.writeString(":>> " + f.Name + " = " + f.Value + ";")
		w.writeNewline()
	}
	w.indentLevel--
	w.writeIndent()
	w.buf.WriteString("}")
}
