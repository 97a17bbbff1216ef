package build

import "github.com/viant/sysml/model"

// pending holds the one-shot fields the next BuildNode call consumes and
// clears. It is a small, typed record — a plain struct reset by a dedicated
// helper, not a stack: the grammar this module targets never nests
// modifiers (a node's own modifiers are fully resolved before its name is
// even parsed), so there is exactly one live set at a time.
type pending struct {
	abstract  bool
	variation bool
	readonly  bool
	derived   bool
	constant  bool
	ref       bool
	end       bool
	parallel  bool
	exhibit   bool
	asserted  bool
	negated   bool

	isStandardLibrary bool
	hasEnumKeyword    bool
	hasActionKeyword  bool
	hasConnectKeyword bool
	isEventOccurrence bool
	portionKind       model.PortionKind

	refBehavioralKeyword    string
	hasRefBehavioralKeyword bool

	direction        model.Direction
	visibility       model.Visibility
	importPrivate    bool

	hasMultiplicity bool
	multLower       string
	multUpper       string

	hasDefault        bool
	defaultExpr       string
	hasDefaultKeyword bool

	prefixMetadataRefs    []model.QualifiedRef
	prefixAppliedMetadata []*model.MetadataUsage

	triviaHead *model.Trivia
	triviaTail *model.Trivia
}

// clearFlags empties every flag-like and enum-like slot, leaving the
// accumulating slots (trivia chain, prefix metadata lists) untouched. Used
// when a partially-parsed node is discarded without reaching BuildNode, so
// already-captured trivia/metadata survive to attach to the next real node.
func (p *pending) clearFlags() {
	*p = pending{
		prefixMetadataRefs:    p.prefixMetadataRefs,
		prefixAppliedMetadata: p.prefixAppliedMetadata,
		triviaHead:            p.triviaHead,
		triviaTail:            p.triviaTail,
	}
}

// drain resets every slot, flag-like and accumulating alike, and returns the
// values BuildNode should stamp onto the new node.
func (p *pending) drain() pending {
	drained := *p
	*p = pending{}
	return drained
}

func (p *pending) appendTrivia(t *model.Trivia) {
	if p.triviaHead == nil {
		p.triviaHead = t
		p.triviaTail = t
		return
	}
	p.triviaTail.Next = t
	p.triviaTail = t
}
