package binxml

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lukhio/axml/errors"
	"github.com/lukhio/axml/internal/binary"
)

// Dimension units, indexed by the low nibble of a complex dimension value.
var dimensionUnits = [...]string{"px", "dip", "sp", "pt", "in", "mm"}

// Fraction units, indexed by the low nibble of a complex fraction value:
// fraction of the element itself or of its parent.
var fractionUnits = [...]string{"%", "%p"}

// Multipliers for the complex radix selector: the 24-bit mantissa sits in
// the top bits, so radix 0 (23 integer bits) divides by 2^8 and so on down
// to radix 3 (all fraction bits) dividing by 2^31.
var radixMults = [4]float64{
	1.0 / (1 << 8),
	1.0 / (1 << 15),
	1.0 / (1 << 23),
	1.0 / (1 << 31),
}

// readValue reads an 8-byte Res_value record: size, a zero padding byte,
// the type tag, then the data word.
func readValue(r *binary.Reader) (Value, error) {
	size, err := r.ReadU16()
	if err != nil {
		return Value{}, err
	}
	res0, err := r.ReadU8()
	if err != nil {
		return Value{}, err
	}
	if res0 != 0 {
		return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Offset(r.Position() - 1).
			Detail("typed value padding byte is 0x%02x, want 0", res0).
			Build()
	}
	typ, err := r.ReadU8()
	if err != nil {
		return Value{}, err
	}
	data, err := r.ReadU32()
	if err != nil {
		return Value{}, err
	}
	return Value{Size: size, Type: typ, Data: data}, nil
}

// Resolve renders the value in the canonical textual form Android tooling
// produces. String values resolve through the pool; tags with no defined
// rendering fail with unsupported_typed_value rather than guessing.
func (v Value) Resolve(pool *StringPool) (string, error) {
	switch v.Type {
	case TypeNull:
		return "", nil
	case TypeReference:
		return fmt.Sprintf("@0x%08x", v.Data), nil
	case TypeAttribute:
		return fmt.Sprintf("?0x%08x", v.Data), nil
	case TypeString:
		return pool.Get(int(v.Data))
	case TypeFloat:
		f := math.Float32frombits(v.Data)
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	case TypeDimension:
		return formatComplex(v.Data, dimensionUnits[:], 1)
	case TypeFraction:
		return formatComplex(v.Data, fractionUnits[:], 100)
	case TypeIntDec:
		return strconv.FormatInt(int64(int32(v.Data)), 10), nil
	case TypeIntHex:
		return "0x" + strconv.FormatUint(uint64(v.Data), 16), nil
	case TypeIntBoolean:
		if v.Data != 0 {
			return "true", nil
		}
		return "false", nil
	case TypeIntColorARGB8:
		if alpha := v.Data >> 24; alpha == 0xff {
			return fmt.Sprintf("#%06x", v.Data&0xffffff), nil
		}
		return fmt.Sprintf("#%08x", v.Data), nil
	case TypeIntColorRGB8:
		return fmt.Sprintf("#%06x", v.Data&0xffffff), nil
	case TypeIntColorARGB4:
		a, r, g, b := v.Data>>28&0xf, v.Data>>20&0xf, v.Data>>12&0xf, v.Data>>4&0xf
		if a == 0xf {
			return fmt.Sprintf("#%x%x%x", r, g, b), nil
		}
		return fmt.Sprintf("#%x%x%x%x", a, r, g, b), nil
	case TypeIntColorRGB4:
		r, g, b := v.Data>>20&0xf, v.Data>>12&0xf, v.Data>>4&0xf
		return fmt.Sprintf("#%x%x%x", r, g, b), nil
	default:
		return "", errors.UnsupportedValue(v.Type)
	}
}

// complexToFloat converts the fixed-point mantissa/radix encoding shared by
// dimension and fraction values.
func complexToFloat(data uint32) float64 {
	mantissa := int32(data &^ ((1 << complexMantissaShift) - 1))
	return float64(mantissa) * radixMults[(data>>complexRadixShift)&complexRadixMask]
}

func formatComplex(data uint32, units []string, scale float64) (string, error) {
	unit := int(data >> complexUnitShift & complexUnitMask)
	if unit >= len(units) {
		return "", errors.InvalidData(errors.PhaseResolve,
			fmt.Sprintf("unknown complex unit selector %d", unit))
	}
	num := complexToFloat(data) * scale
	return strconv.FormatFloat(num, 'g', -1, 32) + units[unit], nil
}
