package write

import (
	"github.com/minio/highwayhash"

	"github.com/viant/sysml/model"
)

var verifyHashKey = []byte("sysml-write-verify-0123456789AB")

// Hash returns a content hash of sm's canonical rendering, using the same
// non-cryptographic hash family arena.Intern uses for its bucket table.
func Hash(sm *model.SemanticModel) uint64 {
	return highwayhash.Sum64([]byte(Model(sm)), verifyHashKey)
}

// VerifyIdempotent reports whether first and second render to byte-identical
// canonical text. The specification's idempotence property is "reparsing and
// rewriting a canonical rendering yields the same bytes", so callers pass the
// originally-built model as first and the model obtained by reparsing that
// model's own rendering as second -- write has no parser of its own to do the
// reparse here, so the round trip is the caller's job; this only compares the
// two resulting hashes.
func VerifyIdempotent(first, second *model.SemanticModel) bool {
	return Hash(first) == Hash(second)
}
