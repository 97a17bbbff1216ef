package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/sysml/arena"
)

func TestIntern_Identity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{name: "equal short strings", a: "Package::Part", b: "Package::Part"},
		{name: "equal after concat", a: "Foo" + "::" + "Bar", b: "Foo::Bar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := arena.NewIntern()
			a := in.InternString(tc.a)
			b := in.InternString(tc.b)
			assert.Equal(t, a, b)
			assert.Equal(t, 1, in.Len())
		})
	}
}

func TestIntern_LookupMiss(t *testing.T) {
	in := arena.NewIntern()
	_, ok := in.Lookup([]byte("nope"))
	assert.False(t, ok)

	in.InternString("nope")
	canon, ok := in.Lookup([]byte("nope"))
	assert.True(t, ok)
	assert.Equal(t, "nope", canon)
}

func TestIntern_GrowsAndStaysConsistent(t *testing.T) {
	in := arena.NewIntern()
	var canon []string
	for i := 0; i < 1000; i++ {
		canon = append(canon, in.InternString(string(rune('a'+i%26))+string(rune(i))))
	}
	for i, s := range canon {
		got, ok := in.Lookup([]byte(s))
		assert.True(t, ok)
		assert.Equal(t, s, got, "mismatch at %d", i)
	}
}

func TestArena_DupString(t *testing.T) {
	a := arena.New(8)
	s1 := a.DupString("hello world, this is longer than one chunk")
	assert.Equal(t, "hello world, this is longer than one chunk", s1)
}
