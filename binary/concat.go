package binary

import (
	"iter"

	"github.com/ezrec/bitvec/internal"
)

// Concat joins the raw bits of parts into one unsigned value. The first
// part is the most significant.
func Concat(parts ...*Binary) (*Binary, error) {
	if len(parts) == 0 {
		return Zero(1, Unsigned), nil
	}

	seqs := make([]iter.Seq[bool], len(parts))
	for n, part := range parts {
		seqs[n] = part.Bits()
	}

	return FromSeq(internal.Chain(seqs...))
}

// Join concatenates parts with the raw bits of sep between each pair.
func Join(sep *Binary, parts ...*Binary) (*Binary, error) {
	joined := make([]*Binary, 0, 2*len(parts))
	for n, part := range parts {
		if n > 0 {
			joined = append(joined, sep)
		}
		joined = append(joined, part)
	}
	return Concat(joined...)
}
