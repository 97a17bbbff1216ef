// Package model defines the pure data types of the semantic graph produced
// by build.Context: nodes, relationships, imports, aliases, trivia, and
// metadata. Nothing in this package mutates state beyond simple index
// maintenance; assembly lives in package build.
package model

// Location pinpoints the first token of an element in its source file.
type Location struct {
	Offset int
	Line   int
	Column int
}

// SourceFile records the bytes a model was parsed from, plus a table mapping
// byte offsets to (line, column) for diagnostics.
type SourceFile struct {
	Path        string
	Bytes       []byte
	LineOffsets []int // LineOffsets[i] is the byte offset where line i+1 starts
}

// PositionAt resolves a byte offset into 1-based line/column using the
// file's line-offset table.
func (f *SourceFile) PositionAt(offset int) (line, column int) {
	if f == nil || len(f.LineOffsets) == 0 {
		return 1, offset + 1
	}
	lo, hi := 0, len(f.LineOffsets)-1
	line = 1
	for lo <= hi {
		mid := (lo + hi) / 2
		if f.LineOffsets[mid] <= offset {
			line = mid + 1
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	column = offset - f.LineOffsets[line-1] + 1
	return line, column
}

// BuildLineOffsets computes the start-of-line offset table for src.
func BuildLineOffsets(src []byte) []int {
	offsets := []int{0}
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
