package arena

import "github.com/minio/highwayhash"

// hashKey is a fixed, non-secret key: the table is used for deduplication,
// not for anything adversarial, so a static key is fine (same pattern the
// teacher package uses for content hashing).
var hashKey = []byte("sysml-intern-0123456789ABCDEF01")

const initialCapacity = 64

// Intern is a string-canonicalization table: two calls with equal content
// return the identical string value (same underlying bytes), so callers may
// compare interned strings with == instead of content equality.
type Intern struct {
	arena    *Arena
	buckets  [][]string
	capacity int
	count    int
}

// NewIntern creates an empty Intern table backed by its own Arena.
func NewIntern() *Intern {
	return &Intern{
		arena:    New(0),
		buckets:  make([][]string, initialCapacity),
		capacity: initialCapacity,
	}
}

func hash32(b []byte) uint32 {
	sum := highwayhash.Sum64(b, hashKey)
	return uint32(sum ^ (sum >> 32))
}

// Lookup reports whether (bytes) is already present, returning the canonical
// string and true if so.
func (t *Intern) Lookup(b []byte) (string, bool) {
	idx := hash32(b) % uint32(t.capacity)
	for _, s := range t.buckets[idx] {
		if s == string(b) {
			return s, true
		}
	}
	return "", false
}

// Intern returns the canonical string for b, interning a copy into the
// arena the first time this content is seen.
func (t *Intern) Intern(b []byte) string {
	idx := hash32(b) % uint32(t.capacity)
	for _, s := range t.buckets[idx] {
		if s == string(b) {
			return s
		}
	}

	canon := t.arena.DupString(string(b))
	t.buckets[idx] = append(t.buckets[idx], canon)
	t.count++

	// Geometric growth once the load factor would push average chain
	// length above 2.
	if t.count > t.capacity*2 {
		t.grow()
	}
	return canon
}

// InternString is a convenience wrapper over Intern for string inputs.
func (t *Intern) InternString(s string) string {
	return t.Intern([]byte(s))
}

// Len reports the number of distinct interned strings.
func (t *Intern) Len() int { return t.count }

func (t *Intern) grow() {
	newCap := t.capacity * 2
	newBuckets := make([][]string, newCap)
	for _, bucket := range t.buckets {
		for _, s := range bucket {
			idx := hash32([]byte(s)) % uint32(newCap)
			newBuckets[idx] = append(newBuckets[idx], s)
		}
	}
	t.buckets = newBuckets
	t.capacity = newCap
}
