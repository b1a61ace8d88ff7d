package hash

import (
	"encoding/binary"
	"math"

	"github.com/ryogrid/toydbms/types"
	"github.com/spaolacci/murmur3"
)

// HashValue returns the hash of the value.
// numeric values are hashed through their float64 form so that an Integer and
// a Float which compare equal hash equal too
func HashValue(val *types.Value) uint32 {
	if val.IsNull() {
		return GenHashMurMur([]byte{0})
	}
	switch val.ValueType() {
	case types.Integer, types.Float:
		raw := make([]byte, 8)
		f := val.ToFloat64()
		if f == 0 {
			// -0.0 and 0.0 are equal
			f = 0
		} else if math.IsNaN(f) {
			// every NaN payload compares equal
			f = math.NaN()
		}
		binary.LittleEndian.PutUint64(raw, math.Float64bits(f))
		return GenHashMurMur(raw)
	case types.Varchar, types.Boolean:
		raw := val.Serialize()
		return GenHashMurMur(raw)
	default:
		panic("not supported type!")
	}
}

func GenHashMurMur(key []byte) uint32 {
	h := murmur3.New128()
	h.Write(key)
	hash := h.Sum(nil)
	return binary.LittleEndian.Uint32(hash)
}
