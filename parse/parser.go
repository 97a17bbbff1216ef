package parse

import (
	"fmt"
	"strings"

	"github.com/viant/sysml/model"
)

// sigTok is a significant (non-trivia) token together with the run of
// comments/blank lines that preceded it.
type sigTok struct {
	tok    Token
	trivia []Token
}

// Parser is a hand-written recursive-descent parser over the lexer's token
// stream. It never builds a model.SemanticModel directly — it only ever
// appends Events — so it carries no dependency on package build; something
// downstream (typically pipeline.Pipeline) pulls events from the returned
// Source and feeds them to a build.Context via Apply.
type Parser struct {
	toks []sigTok
	pos  int

	events []Event
	errs   []string
}

// Parse tokenizes and parses src, returning a pull Source over the
// resulting events. Syntax errors do not abort parsing: they are recorded
// both in the returned slice and as EventSyntaxError events in the stream,
// and the parser resynchronizes at the next statement boundary.
func Parse(src []byte, sourceName string) (Source, []string) {
	p := &Parser{}
	p.tokenize(src)
	p.parseMembers(true)
	p.emit(Event{Kind: EventEOF})
	return &eventList{events: p.events}, p.errs
}

// eventList is the simplest possible Source: a recorded slice pulled one
// item at a time, matching how a QueryCursor hands back matches.
type eventList struct {
	events []Event
	pos    int
}

func (e *eventList) Next() (Event, bool) {
	if e.pos >= len(e.events) {
		return Event{}, false
	}
	ev := e.events[e.pos]
	e.pos++
	return ev, true
}

func (p *Parser) tokenize(src []byte) {
	lex := NewLexer(src)
	var trivia []Token
	for {
		t := lex.Next()
		switch t.Kind {
		case TokLineComment, TokBlockComment, TokBlankLine:
			trivia = append(trivia, t)
			continue
		}
		p.toks = append(p.toks, sigTok{tok: t, trivia: trivia})
		trivia = nil
		if t.Kind == TokEOF {
			return
		}
	}
}

func (p *Parser) cur() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokEOF}
	}
	return p.toks[p.pos].tok
}

func (p *Parser) at(n int) Token {
	idx := p.pos + n
	if idx < 0 || idx >= len(p.toks) {
		return Token{Kind: TokEOF}
	}
	return p.toks[idx].tok
}

func (p *Parser) loc(t Token) model.Location {
	return model.Location{Offset: t.Offset, Line: t.Line, Column: t.Column}
}

// flushTrivia emits the current token's leading comments/blank lines as
// EventAppendTrivia, once. build.Context accumulates them into the pending
// leading-trivia chain, drained onto whatever node BuildNode produces next.
func (p *Parser) flushTrivia() {
	if p.pos >= len(p.toks) {
		return
	}
	cur := &p.toks[p.pos]
	for _, tr := range cur.trivia {
		kind := model.TriviaLineComment
		switch tr.Kind {
		case TokBlockComment:
			kind = model.TriviaBlockComment
		case TokBlankLine:
			kind = model.TriviaBlankLine
		}
		p.emit(Event{Kind: EventAppendTrivia, TriviaKind: kind, Text: tr.Text, BlankLineCount: tr.Count, Location: p.loc(tr)})
	}
	cur.trivia = nil
}

// takeLeadingComment extracts the current token's first pending comment
// instead of letting it flush as ordinary trivia, for constructs (doc,
// comment, rep) whose body IS a comment rather than free-floating trivia
// next to one.
func (p *Parser) takeLeadingComment() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	cur := &p.toks[p.pos]
	if len(cur.trivia) == 0 {
		return "", false
	}
	first := cur.trivia[0]
	if first.Kind != TokBlockComment && first.Kind != TokLineComment {
		return "", false
	}
	cur.trivia = cur.trivia[1:]
	return first.Text, true
}

func (p *Parser) advance() Token {
	p.flushTrivia()
	t := p.cur()
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *Parser) isPunct(s string) bool {
	t := p.cur()
	return t.Kind == TokPunct && t.Text == s
}

func (p *Parser) isKeyword(kw string) bool {
	t := p.cur()
	return t.Kind == TokKeyword && t.Text == kw
}

func (p *Parser) emit(ev Event) { p.events = append(p.events, ev) }

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errs = append(p.errs, msg)
	p.emit(Event{Kind: EventSyntaxError, Message: msg, Location: p.loc(p.cur())})
}

// --- member dispatch --------------------------------------------------------

// parseMembers parses a sequence of package-level or body members until EOF
// (topLevel) or a closing "}" (the caller consumes the brace itself on
// either side).
func (p *Parser) parseMembers(topLevel bool) {
	for {
		p.flushTrivia()
		t := p.cur()
		if t.Kind == TokEOF {
			return
		}
		if !topLevel && t.Kind == TokPunct && t.Text == "}" {
			return
		}
		if t.Kind == TokPunct && t.Text == ";" {
			p.advance()
			continue
		}
		p.parseMember()
	}
}

func (p *Parser) parseMember() {
	switch {
	case p.isPunct("@") || p.isPunct("#"):
		p.parseMetadataUsage()
	case p.isKeyword("doc"):
		p.parseDoc()
	case p.isKeyword("comment"):
		p.parseNamedComment()
	case p.isKeyword("rep"):
		p.parseTextualRepresentation()
	case p.isKeyword("package") || p.isKeyword("library") || p.isKeyword("standard"):
		p.parsePackage()
	case p.isKeyword("import"):
		p.parseImport()
	case p.isKeyword("alias"):
		p.parseAlias()
	case p.isKeyword("perform"):
		p.parsePerform()
	case p.isKeyword("connect"):
		p.parseConnectUsage()
	case p.isKeyword("end") && !p.endIntroducesKind():
		p.parseEndFeature()
	case p.cur().Kind == TokKeyword && isStatementKeyword(p.cur().Text):
		p.parseStatement()
	default:
		p.parseDefOrUsage()
	}
}

func (p *Parser) endIntroducesKind() bool {
	nxt := p.at(1)
	if nxt.Kind != TokKeyword {
		return false
	}
	_, ok := kindKeywords[nxt.Text]
	return ok
}

// --- modifiers / def-or-usage -----------------------------------------------

var modifierKeywords = map[string]string{
	"abstract":  ModAbstract,
	"variation": ModVariation,
	"readonly":  ModReadonly,
	"derived":   ModDerived,
	"constant":  ModConstant,
	"ref":       ModRef,
	"end":       ModEnd,
	"parallel":  ModParallel,
	"exhibit":   ModExhibit,
}

// refBehavioralKeywords are tokens that, immediately after "ref", introduce a
// reference to an existing behavioral occurrence (a flow, transition, accept,
// send, or do already declared elsewhere) instead of any def/usage keyword in
// kindKeywords. The captured text becomes the node's ref_behavioral_keyword
// and is what the writer prints in place of the normal kind keyword.
var refBehavioralKeywords = map[string]bool{
	"flow": true, "transition": true, "accept": true, "send": true, "do": true,
}

var visibilityKeywords = map[string]model.Visibility{
	"public":    model.VisibilityPublic,
	"private":   model.VisibilityPrivate,
	"protected": model.VisibilityProtected,
}

type kindPair struct {
	def     model.NodeKind
	usage   model.NodeKind
	onlyDef bool
}

var kindKeywords = map[string]kindPair{
	"part":          {def: model.KindPartDef, usage: model.KindPartUsage},
	"action":        {def: model.KindActionDef, usage: model.KindActionUsage},
	"state":         {def: model.KindStateDef, usage: model.KindStateUsage},
	"port":          {def: model.KindPortDef, usage: model.KindPortUsage},
	"attribute":     {def: model.KindAttributeDef, usage: model.KindAttributeUsage},
	"constraint":    {def: model.KindConstraintDef, usage: model.KindConstraintUsage},
	"requirement":   {def: model.KindRequirementDef, usage: model.KindRequirementUsage},
	"connection":    {def: model.KindConnectionDef, usage: model.KindConnectionUsage},
	"interface":     {def: model.KindInterfaceDef, usage: model.KindInterfaceUsage},
	"item":          {def: model.KindItemDef, usage: model.KindItemUsage},
	"occurrence":    {def: model.KindOccurrenceDef, usage: model.KindOccurrenceUsage},
	"calc":          {def: model.KindCalcDef, usage: model.KindCalcDef, onlyDef: true},
	"use":           {def: model.KindUseCaseDef, usage: model.KindUseCaseDef, onlyDef: true},
	"verification":  {def: model.KindVerificationDef, usage: model.KindVerificationDef, onlyDef: true},
	"viewpoint":     {def: model.KindViewpointDef, usage: model.KindViewpointDef, onlyDef: true},
	"allocation":    {def: model.KindAllocationDef, usage: model.KindAllocationUsage},
	"enum":          {def: model.KindEnumerationDef, usage: model.KindEnumerationUsage},
	"enumeration":   {def: model.KindEnumerationDef, usage: model.KindEnumerationUsage},
	"metadata":      {def: model.KindMetadataDef, usage: model.KindMetadataDef, onlyDef: true},
	"event":         {def: model.KindEventUsage, usage: model.KindEventUsage, onlyDef: true},
	"portion":       {def: model.KindPortionUsage, usage: model.KindPortionUsage, onlyDef: true},
}

func (p *Parser) parseDefOrUsage() {
	startLoc := p.loc(p.cur())
	sawRef := false

	for {
		t := p.cur()
		if t.Kind != TokKeyword {
			break
		}
		if mod, ok := modifierKeywords[t.Text]; ok {
			loc := p.loc(t)
			p.advance()
			if mod == ModRef {
				sawRef = true
			}
			p.emit(Event{Kind: EventAttachModifier, Modifier: mod, Location: loc})
			continue
		}
		if vis, ok := visibilityKeywords[t.Text]; ok {
			loc := p.loc(t)
			p.advance()
			p.emit(Event{Kind: EventAttachVisibility, Visibility: vis, Location: loc})
			continue
		}
		if t.Text == "in" || t.Text == "out" || t.Text == "inout" {
			loc := p.loc(t)
			p.advance()
			dir := model.DirectionIn
			switch t.Text {
			case "out":
				dir = model.DirectionOut
			case "inout":
				dir = model.DirectionInout
			}
			p.emit(Event{Kind: EventAttachDirection, Direction: dir, Location: loc})
			continue
		}
		if t.Text == "snapshot" || t.Text == "timeslice" {
			loc := p.loc(t)
			p.advance()
			kind := "snapshot"
			if t.Text == "timeslice" {
				kind = "timeslice"
			}
			p.emit(Event{Kind: EventAttachPortionKind, Text: kind, Location: loc})
			continue
		}
		break
	}

	if sawRef {
		if t := p.cur(); t.Kind == TokKeyword && refBehavioralKeywords[t.Text] {
			loc := p.loc(t)
			kw := t.Text
			p.advance()
			p.emit(Event{Kind: EventAttachModifier, Modifier: ModRefBehavioralKw, Text: kw, Location: loc})
			p.parseNodeBody(model.KindOccurrenceUsage, startLoc)
			return
		}
	}

	if p.isKeyword("event") && p.at(1).Kind == TokKeyword && p.at(1).Text == "occurrence" {
		p.advance()
		p.advance()
		p.emit(Event{Kind: EventAttachModifier, Modifier: ModEventOccur, Location: startLoc})
		p.parseNodeBody(model.KindOccurrenceUsage, startLoc)
		return
	}

	kwTok := p.cur()
	pair, ok := kindKeywords[kwTok.Text]
	if !(kwTok.Kind == TokKeyword && ok) {
		p.parseShorthandFeature()
		return
	}
	p.advance()

	nodeKind := pair.usage
	if p.isKeyword("def") {
		p.advance()
		nodeKind = pair.def
	}
	if pair.onlyDef {
		nodeKind = pair.def
	}
	if kwTok.Text == "use" && p.isKeyword("case") {
		p.advance()
	}

	p.parseNodeBody(nodeKind, startLoc)
}

func (p *Parser) parseNodeBody(kind model.NodeKind, startLoc model.Location) {
	name, hasName := p.parseOptionalName()

	p.emit(Event{Kind: EventCreateNode, NodeKind: kind, Name: name, HasName: hasName, Location: startLoc})
	p.emit(Event{Kind: EventAddElement})

	if p.isPunct("(") {
		text := p.captureBalanced("(", ")")
		p.emit(Event{Kind: EventAttachParamList, Text: text})
	}

	p.parseTypeRelations()
	p.parseMultiplicity()
	p.parseDefaultValue()

	if p.isPunct("{") {
		p.advance()
		p.emit(Event{Kind: EventEnterScope})
		p.parseMembers(false)
		if p.isPunct("}") {
			p.advance()
		}
		p.emit(Event{Kind: EventLeaveScope})
	} else if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseOptionalName() (string, bool) {
	t := p.cur()
	if t.Kind == TokIdent || t.Kind == TokQuotedName {
		p.advance()
		return t.Text, true
	}
	return "", false
}

// --- typing / specialization / redefinition / reference --------------------

func (p *Parser) parseTypeRelations() {
	for {
		switch {
		case p.isPunct(":"):
			p.advance()
			p.parseTypedRefList()
		case p.isPunct(":>") || p.isKeyword("specializes"):
			p.advance()
			p.parseRefList(EventAttachSpecializes)
		case p.isKeyword("subsets"):
			p.advance()
			p.parseRefList(EventAttachSpecializes)
		case p.isPunct(":>>") || p.isKeyword("redefines"):
			p.advance()
			p.parseRefList(EventAttachRedefines)
		case p.isPunct("::>") || p.isKeyword("references"):
			p.advance()
			p.parseRefList(EventAttachReferences)
		default:
			return
		}
	}
}

func (p *Parser) parseTypedRefList() {
	for {
		conjugated := false
		if p.isPunct("~") {
			p.advance()
			conjugated = true
		}
		ref, loc := p.parseQualifiedRef()
		if ref == "" {
			return
		}
		p.emit(Event{Kind: EventAttachTyped, Ref: ref, Conjugated: conjugated, Location: loc})
		if p.isPunct(",") {
			p.advance()
			continue
		}
		return
	}
}

func (p *Parser) parseRefList(kind EventKind) {
	for {
		ref, loc := p.parseQualifiedRef()
		if ref == "" {
			return
		}
		p.emit(Event{Kind: kind, Ref: ref, Location: loc})
		if p.isPunct(",") {
			p.advance()
			continue
		}
		return
	}
}

func (p *Parser) parseQualifiedRef() (model.QualifiedRef, model.Location) {
	t := p.cur()
	if t.Kind != TokIdent && t.Kind != TokQuotedName {
		return "", model.Location{}
	}
	loc := p.loc(t)
	var b strings.Builder
	b.WriteString(t.Text)
	p.advance()
	for p.isPunct("::") {
		p.advance()
		nt := p.cur()
		if nt.Kind != TokIdent && nt.Kind != TokQuotedName {
			break
		}
		b.WriteString("::")
		b.WriteString(nt.Text)
		p.advance()
	}
	return model.QualifiedRef(b.String()), loc
}

func (p *Parser) parseImportTarget() (model.QualifiedRef, model.ImportKind, model.Location) {
	base, loc := p.parseQualifiedRef()
	kind := model.ImportSingle
	if p.isPunct("::*") {
		p.advance()
		base += "::*"
		kind = model.ImportWildcard
	} else if p.isPunct("::**") {
		p.advance()
		base += "::**"
		kind = model.ImportRecursive
	}
	return base, kind, loc
}

// --- multiplicity / default --------------------------------------------------

func (p *Parser) parseMultiplicity() {
	if !p.isPunct("[") {
		return
	}
	p.advance()
	lower := p.parseBoundToken()
	upper := lower
	if p.isPunct("..") {
		p.advance()
		upper = p.parseBoundToken()
	}
	if p.isPunct("]") {
		p.advance()
	}
	p.emit(Event{Kind: EventAttachMultiplicity, MultLower: lower, MultUpper: upper})
}

func (p *Parser) parseBoundToken() string {
	t := p.cur()
	if t.Kind == TokNumber {
		p.advance()
		return t.Text
	}
	if t.Kind == TokPunct && t.Text == "*" {
		p.advance()
		return "*"
	}
	return ""
}

func (p *Parser) parseDefaultValue() {
	hasKeyword := false
	if p.isKeyword("default") {
		p.advance()
		hasKeyword = true
	}
	if !p.isPunct("=") {
		if hasKeyword {
			p.emit(Event{Kind: EventAttachDefault, DefaultHasKeyword: true})
		}
		return
	}
	p.advance()
	expr := p.captureUntil(";", "{", "[")
	p.emit(Event{Kind: EventAttachDefault, Text: strings.TrimSpace(expr), DefaultHasKeyword: hasKeyword})
}

// --- metadata ----------------------------------------------------------------

func (p *Parser) parseMetadataUsage() {
	p.advance() // '@' or '#'
	ref, loc := p.parseQualifiedRef()
	p.emit(Event{Kind: EventStartMetadata, Ref: ref, Location: loc})

	if p.isPunct("{") {
		p.advance()
		for !p.isPunct("}") && p.cur().Kind != TokEOF {
			if p.isKeyword("about") {
				p.advance()
				target, _ := p.parseQualifiedRef()
				p.emit(Event{Kind: EventMetadataAbout, Target: target})
				if p.isPunct(";") {
					p.advance()
				}
				continue
			}
			name, ok := p.parseOptionalName()
			if !ok {
				p.advance()
				continue
			}
			value := ""
			if p.isPunct("=") || p.isPunct(":>>") || p.isPunct(":") {
				p.advance()
				value = p.captureUntil(";", "}")
			}
			p.emit(Event{Kind: EventMetadataFeature, MetaName: name, MetaValue: strings.TrimSpace(value)})
			if p.isPunct(";") {
				p.advance()
			}
		}
		if p.isPunct("}") {
			p.advance()
		}
	} else if p.isKeyword("about") {
		p.advance()
		target, _ := p.parseQualifiedRef()
		p.emit(Event{Kind: EventMetadataAbout, Target: target})
		if p.isPunct(";") {
			p.advance()
		}
	} else if p.isPunct(";") {
		p.advance()
	}

	if p.startsNewMember() {
		p.emit(Event{Kind: EventEndMetadataPrefix})
	} else {
		p.emit(Event{Kind: EventEndMetadataApplied})
	}
}

func (p *Parser) startsNewMember() bool {
	t := p.cur()
	switch t.Kind {
	case TokIdent, TokQuotedName:
		return true
	case TokPunct:
		return t.Text == "@" || t.Text == "#"
	case TokKeyword:
		if _, ok := kindKeywords[t.Text]; ok {
			return true
		}
		switch t.Text {
		case "abstract", "variation", "readonly", "derived", "ref", "public",
			"private", "protected", "import", "alias", "package", "library",
			"standard", "perform", "connect", "snapshot", "timeslice":
			return true
		}
	}
	return false
}

// --- doc / comment / rep ------------------------------------------------------

func (p *Parser) parseDoc() {
	loc := p.loc(p.cur())
	p.advance() // 'doc'
	p.parseOptionalName()
	text, _ := p.takeLeadingComment()
	p.emit(Event{Kind: EventAttachDoc, Text: strings.TrimSpace(text), Location: loc})
	if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseNamedComment() {
	loc := p.loc(p.cur())
	p.advance() // 'comment'
	name, _ := p.parseOptionalName()
	if p.isKeyword("about") {
		p.advance()
		p.parseQualifiedRef()
	}
	text, _ := p.takeLeadingComment()
	p.emit(Event{Kind: EventAttachNamedComment, Name: name, Text: strings.TrimSpace(text), Location: loc})
	if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseTextualRepresentation() {
	loc := p.loc(p.cur())
	p.advance() // 'rep'
	name, _ := p.parseOptionalName()
	language := ""
	if p.isKeyword("language") {
		p.advance()
		if p.cur().Kind == TokString {
			language = p.cur().Text
			p.advance()
		}
	}
	text, _ := p.takeLeadingComment()
	p.emit(Event{Kind: EventAttachTextualRepresentation, Name: name, MetaValue: language, Text: strings.TrimSpace(text), Location: loc})
	if p.isPunct(";") {
		p.advance()
	}
}

// --- package / import / alias / perform / connect ----------------------------

func (p *Parser) parsePackage() {
	loc := p.loc(p.cur())
	standardLib := false
	if p.isKeyword("standard") {
		p.advance()
		standardLib = true
	}
	kind := model.KindPackage
	if p.isKeyword("library") {
		p.advance()
		kind = model.KindLibraryPackage
	}
	if p.isKeyword("package") {
		p.advance()
	}
	name, hasName := p.parseOptionalName()
	if standardLib {
		p.emit(Event{Kind: EventAttachModifier, Modifier: ModStdLib, Location: loc})
	}
	p.emit(Event{Kind: EventCreateNode, NodeKind: kind, Name: name, HasName: hasName, Location: loc})
	p.emit(Event{Kind: EventAddElement})

	if p.isPunct("{") {
		p.advance()
		p.emit(Event{Kind: EventEnterScope})
		p.parseMembers(false)
		if p.isPunct("}") {
			p.advance()
		}
		p.emit(Event{Kind: EventLeaveScope})
	} else if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseImport() {
	loc := p.loc(p.cur())
	p.advance() // 'import'
	visibility := model.ImportPrivate
	if p.isKeyword("private") {
		p.advance()
	} else if p.isKeyword("public") {
		p.advance()
		visibility = model.ImportExplicitPublic
	}
	target, kind, _ := p.parseImportTarget()
	if p.isKeyword("as") {
		p.advance()
		name, _ := p.parseOptionalName()
		p.emit(Event{Kind: EventAddAlias, AliasName: name, Target: target, Location: loc})
		if p.isPunct(";") {
			p.advance()
		}
		return
	}
	p.emit(Event{Kind: EventAddImport, ImportKind: kind, Target: target, Visibility: model.Visibility(visibility), Location: loc})
	if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseAlias() {
	loc := p.loc(p.cur())
	p.advance() // 'alias'
	name, _ := p.parseOptionalName()
	if p.isKeyword("for") {
		p.advance()
	}
	target, _ := p.parseQualifiedRef()
	p.emit(Event{Kind: EventAddAlias, AliasName: name, Target: target, Location: loc})
	if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parsePerform() {
	loc := p.loc(p.cur())
	p.advance() // 'perform'
	if p.isKeyword("action") {
		p.advance()
		p.emit(Event{Kind: EventAttachModifier, Modifier: ModActionKw, Location: loc})
	}
	name, hasName := p.parseOptionalName()
	var ref model.QualifiedRef
	if p.isPunct(":") {
		p.advance()
		ref, _ = p.parseQualifiedRef()
	}
	p.emit(Event{Kind: EventCreateNode, NodeKind: model.KindPerformActionUsage, Name: name, HasName: hasName, Location: loc})
	p.emit(Event{Kind: EventAddElement})
	if ref != "" {
		p.emit(Event{Kind: EventAttachTyped, Ref: ref})
	}
	if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseConnectUsage() {
	loc := p.loc(p.cur())
	p.advance() // 'connect'
	name, hasName := p.parseOptionalName()
	p.emit(Event{Kind: EventAttachModifier, Modifier: ModConnectKw, Location: loc})
	p.emit(Event{Kind: EventCreateNode, NodeKind: model.KindConnectionUsage, Name: name, HasName: hasName, Location: loc})
	p.emit(Event{Kind: EventAddElement})

	connector := strings.TrimSpace(p.captureUntil(";", "{", ":"))
	if connector != "" {
		p.emit(Event{Kind: EventAttachConnectorPart, Text: connector})
	}
	p.parseTypeRelations()

	if p.isPunct("{") {
		p.advance()
		p.emit(Event{Kind: EventEnterScope})
		p.parseMembers(false)
		if p.isPunct("}") {
			p.advance()
		}
		p.emit(Event{Kind: EventLeaveScope})
	} else if p.isPunct(";") {
		p.advance()
	}
}

func (p *Parser) parseEndFeature() {
	loc := p.loc(p.cur())
	p.advance() // 'end'
	name, hasName := p.parseOptionalName()
	p.emit(Event{Kind: EventCreateNode, NodeKind: model.KindEndFeature, Name: name, HasName: hasName, Location: loc})
	p.emit(Event{Kind: EventAddElement})
	p.parseTypeRelations()
	p.parseMultiplicity()
	if p.isPunct(";") {
		p.advance()
	}
}

// --- body statements -----------------------------------------------------------

var statementKeywords = map[string]model.StatementKind{
	"bind": model.StmtBind, "flow": model.StmtFlow, "allocate": model.StmtAllocate,
	"succession": model.StmtSuccession, "entry": model.StmtEntry, "exit": model.StmtExit,
	"do": model.StmtDo, "transition": model.StmtTransition, "accept": model.StmtAccept,
	"send": model.StmtSend, "if": model.StmtIf, "while": model.StmtWhile,
	"for": model.StmtFor, "loop": model.StmtLoop, "terminate": model.StmtTerminate,
	"merge": model.StmtMerge, "decide": model.StmtDecide, "join": model.StmtJoin,
	"fork": model.StmtFork, "first": model.StmtFirst, "then": model.StmtThen,
	"return": model.StmtReturn, "require": model.StmtRequire, "assume": model.StmtAssume,
	"subject": model.StmtSubject, "actor": model.StmtActor, "stakeholder": model.StmtStakeholder,
	"objective": model.StmtObjective, "frame": model.StmtFrame, "satisfy": model.StmtSatisfy,
	"include": model.StmtInclude, "expose": model.StmtExpose, "render": model.StmtRender,
	"verify": model.StmtVerify,
}

func isStatementKeyword(text string) bool {
	_, ok := statementKeywords[text]
	return ok
}

func (p *Parser) parseStatement() {
	loc := p.loc(p.cur())
	kind := statementKeywords[p.cur().Text]
	p.advance()

	raw := p.captureUntil(";", "{")
	source, target, guard := heuristicStatementParts(kind, raw)

	text := strings.TrimSpace(raw)
	if p.isPunct("{") {
		body := p.captureBalanced("{", "}")
		text = strings.TrimSpace(raw + " " + body)
	}

	p.emit(Event{
		Kind: EventAddBodyStatement, StmtKind: kind,
		Source: source, Target: target, Guard: guard,
		Text: text, Location: loc,
	})
	if p.isPunct(";") {
		p.advance()
	}
}

func heuristicStatementParts(kind model.StatementKind, raw string) (source, target model.QualifiedRef, guard string) {
	switch kind {
	case model.StmtBind, model.StmtFlow, model.StmtAllocate, model.StmtSatisfy, model.StmtInclude:
		if idx := strings.Index(raw, " to "); idx >= 0 {
			source = model.QualifiedRef(strings.TrimSpace(raw[:idx]))
			target = model.QualifiedRef(strings.TrimSpace(raw[idx+4:]))
		} else if idx := strings.Index(raw, " = "); idx >= 0 {
			source = model.QualifiedRef(strings.TrimSpace(raw[:idx]))
			target = model.QualifiedRef(strings.TrimSpace(raw[idx+3:]))
		}
	case model.StmtIf, model.StmtWhile:
		guard = strings.TrimSpace(raw)
	}
	return
}

func (p *Parser) parseShorthandFeature() {
	loc := p.loc(p.cur())
	raw := p.captureUntil(";", "{")
	text := strings.TrimSpace(raw)
	if p.isPunct("{") {
		body := p.captureBalanced("{", "}")
		text = strings.TrimSpace(raw + " " + body)
	}
	if text == "" {
		// Nothing recognizable and nothing captured: advance one token to
		// guarantee forward progress on malformed input.
		p.errorf("unrecognized member near %q", p.cur().Text)
		p.advance()
		return
	}
	p.emit(Event{Kind: EventAddBodyStatement, StmtKind: model.StmtShorthandFeature, Text: text, Location: loc})
	if p.isPunct(";") {
		p.advance()
	}
}

// --- raw-text capture helpers --------------------------------------------------

func tokenText(t Token) string {
	switch t.Kind {
	case TokString:
		return `"` + t.Text + `"`
	case TokQuotedName:
		return "'" + t.Text + "'"
	default:
		return t.Text
	}
}

// captureUntil joins tokens verbatim (space-separated) up to the first
// depth-zero occurrence of one of stops, without consuming the stop token.
func (p *Parser) captureUntil(stops ...string) string {
	depth := 0
	var b strings.Builder
	for {
		t := p.cur()
		if t.Kind == TokEOF {
			break
		}
		if depth == 0 && t.Kind == TokPunct {
			stop := false
			for _, s := range stops {
				if t.Text == s {
					stop = true
					break
				}
			}
			if stop {
				break
			}
		}
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return strings.TrimSpace(b.String())
				}
				depth--
			}
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(tokenText(t))
		p.advance()
	}
	return strings.TrimSpace(b.String())
}

// captureBalanced captures a delimited run starting at the current token
// (which must be open), including both delimiters.
func (p *Parser) captureBalanced(open, close string) string {
	var b strings.Builder
	depth := 0
	for {
		t := p.cur()
		if t.Kind == TokEOF {
			break
		}
		if t.Kind == TokPunct && t.Text == open {
			depth++
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(tokenText(t))
		closing := t.Kind == TokPunct && t.Text == close
		p.advance()
		if closing {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	return b.String()
}
