package write

import "github.com/viant/sysml/model"

// kindKeyword is the canonical introducing keyword for a node kind, before
// the special cases (event occurrence, portion usage, perform action,
// behavioral keyword override, enum member, standard library prefix)
// layered on in writeKindKeyword.
var kindKeyword = map[model.NodeKind]string{
	model.KindPackage:        "package",
	model.KindLibraryPackage: "library package",

	model.KindPartDef:   "part def",
	model.KindPartUsage: "part",

	model.KindActionDef:   "action def",
	model.KindActionUsage: "action",

	model.KindStateDef:   "state def",
	model.KindStateUsage: "state",

	model.KindPortDef:   "port def",
	model.KindPortUsage: "port",

	model.KindAttributeDef:   "attribute def",
	model.KindAttributeUsage: "attribute",

	model.KindConstraintDef:   "constraint def",
	model.KindConstraintUsage: "constraint",

	model.KindRequirementDef:   "requirement def",
	model.KindRequirementUsage: "requirement",

	model.KindConnectionDef:   "connection def",
	model.KindConnectionUsage: "connection",

	model.KindInterfaceDef:   "interface def",
	model.KindInterfaceUsage: "interface",

	model.KindItemDef:   "item def",
	model.KindItemUsage: "item",

	model.KindOccurrenceDef:   "occurrence def",
	model.KindOccurrenceUsage: "occurrence",

	model.KindCalcDef:          "calc def",
	model.KindUseCaseDef:       "use case def",
	model.KindVerificationDef:  "verification def",
	model.KindViewpointDef:     "viewpoint def",
	model.KindAllocationDef:    "allocation def",
	model.KindAllocationUsage:  "allocation",
	model.KindEnumerationDef:   "enum def",
	model.KindEnumerationUsage: "",

	model.KindEndFeature:         "end",
	model.KindEventUsage:         "event",
	model.KindPortionUsage:       "",
	model.KindPerformActionUsage: "perform",
	model.KindMetadataDef:        "metadata def",
}

// writeKindKeyword resolves n's canonical introducing keyword, applying the
// special cases layered over the plain table. When a ref behavioral keyword
// is set, it was already emitted as part of the "ref" prefix, so this slot
// contributes nothing rather than printing it a second time.
func writeKindKeyword(n *model.Node) string {
	if n.HasRefBehavioralKeyword {
		return ""
	}
	if n.IsEventOccurrence {
		return "event occurrence"
	}
	switch n.Kind {
	case model.KindPortionUsage:
		if n.PortionKind == model.PortionTimeslice {
			return "timeslice"
		}
		return "snapshot"
	case model.KindPerformActionUsage:
		if n.HasActionKeyword {
			return "perform action"
		}
		return "perform"
	case model.KindEnumerationUsage:
		if n.HasEnumKeyword {
			return "enum"
		}
		return ""
	case model.KindPackage, model.KindLibraryPackage:
		kw := kindKeyword[n.Kind]
		if n.IsStandardLibrary {
			return "standard " + kw
		}
		return kw
	}
	return kindKeyword[n.Kind]
}
