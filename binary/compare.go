package binary

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ezrec/bitvec/alu"
)

// Cmp compares the integer values of b and o, returning -1, 0 or +1.
// Width and sign behavior do not take part.
func (b *Binary) Cmp(o *Binary) int {
	if b.behavior == Unsigned && o.behavior == Unsigned {
		return alu.CompareUnsigned(b.buf, o.buf)
	}
	return b.Int().Cmp(o.Int())
}

func (b *Binary) Equal(o *Binary) bool     { return b.Cmp(o) == 0 }
func (b *Binary) Less(o *Binary) bool      { return b.Cmp(o) < 0 }
func (b *Binary) LessEq(o *Binary) bool    { return b.Cmp(o) <= 0 }
func (b *Binary) Greater(o *Binary) bool   { return b.Cmp(o) > 0 }
func (b *Binary) GreaterEq(o *Binary) bool { return b.Cmp(o) >= 0 }

// Hash returns a hash of the integer value. Values that are Equal hash
// equal, whatever their widths and sign behaviors.
func (b *Binary) Hash() uint64 {
	v := b.Int()

	h := xxhash.New()
	_, _ = h.Write([]byte{byte(v.Sign() + 1)})
	_, _ = h.Write(v.Bytes())

	return h.Sum64()
}
