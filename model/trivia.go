package model

// Trivia is textual source content that is not part of the grammar:
// comments and blank lines. Trivia nodes form a singly-linked list so a
// run of consecutive comments/blank lines attaches to a node as one chain.
type Trivia struct {
	Kind            TriviaKind
	Text            string // delimiter-stripped content
	BlankLineCount  int
	Location        Location
	Next            *Trivia
}

// Slice flattens the linked list starting at t into a slice, in order.
func (t *Trivia) Slice() []*Trivia {
	var out []*Trivia
	for cur := t; cur != nil; cur = cur.Next {
		out = append(out, cur)
	}
	return out
}

// Append returns the chain with n appended at its tail; if t is nil, n
// becomes the head.
func (t *Trivia) Append(n *Trivia) *Trivia {
	if t == nil {
		return n
	}
	cur := t
	for cur.Next != nil {
		cur = cur.Next
	}
	cur.Next = n
	return t
}
