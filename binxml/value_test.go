package binxml

import (
	stderrors "errors"
	"testing"

	"github.com/lukhio/axml/errors"
)

func TestResolve(t *testing.T) {
	pool := &StringPool{strings: []string{"zero", "one", "two"}}

	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"null", Value{Type: TypeNull}, ""},
		{"reference", Value{Type: TypeReference, Data: 0x7f010001}, "@0x7f010001"},
		{"attribute", Value{Type: TypeAttribute, Data: 0x0101021b}, "?0x0101021b"},
		{"string", Value{Type: TypeString, Data: 1}, "one"},
		{"float", Value{Type: TypeFloat, Data: 0x3fc00000}, "1.5"},
		{"int dec", Value{Type: TypeIntDec, Data: 42}, "42"},
		{"int dec negative", Value{Type: TypeIntDec, Data: 0xffffffff}, "-1"},
		{"int hex", Value{Type: TypeIntHex, Data: 0x7f}, "0x7f"},
		{"bool true", Value{Type: TypeIntBoolean, Data: 1}, "true"},
		{"bool true nonzero", Value{Type: TypeIntBoolean, Data: 0xffffffff}, "true"},
		{"bool false", Value{Type: TypeIntBoolean, Data: 0}, "false"},
		{"argb8 opaque", Value{Type: TypeIntColorARGB8, Data: 0xffaabbcc}, "#aabbcc"},
		{"argb8 translucent", Value{Type: TypeIntColorARGB8, Data: 0x80aabbcc}, "#80aabbcc"},
		{"rgb8", Value{Type: TypeIntColorRGB8, Data: 0xff00ff00}, "#00ff00"},
		{"argb4 opaque", Value{Type: TypeIntColorARGB4, Data: 0xffaabbcc}, "#abc"},
		{"argb4 translucent", Value{Type: TypeIntColorARGB4, Data: 0x88aabbcc}, "#8abc"},
		{"rgb4", Value{Type: TypeIntColorRGB4, Data: 0x00aabbcc}, "#abc"},
		// 16 in radix 0 (23p0) with unit dip: mantissa 16 << 8
		{"dimension dip", Value{Type: TypeDimension, Data: 16<<8 | 1}, "16dip"},
		{"dimension px", Value{Type: TypeDimension, Data: 100 << 8}, "100px"},
		// negative mantissa (-4 << 8), sp unit
		{"dimension negative", Value{Type: TypeDimension, Data: 0xfffffc00 | 2}, "-4sp"},
		// 0.5 in radix 3 (0p23): mantissa 1<<30, times 100 for fraction
		{"fraction", Value{Type: TypeFraction, Data: 1<<30 | 3<<4}, "50%"},
		{"fraction parent", Value{Type: TypeFraction, Data: 1<<30 | 3<<4 | 1}, "50%p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.val.Resolve(pool)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveUnsupported(t *testing.T) {
	unsupported := &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindUnsupportedValue}

	for _, typ := range []uint8{TypeDynamicReference, TypeDynamicAttribute, 0x09, 0x42, 0xff} {
		_, err := Value{Type: typ, Data: 1}.Resolve(nil)
		if !stderrors.Is(err, unsupported) {
			t.Errorf("type 0x%02x: expected unsupported_typed_value, got %v", typ, err)
		}
	}
}

func TestResolveStringOutOfRange(t *testing.T) {
	pool := &StringPool{strings: []string{"only"}}
	_, err := Value{Type: TypeString, Data: 1}.Resolve(pool)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindStringIndex}) {
		t.Errorf("expected string_index_out_of_range, got %v", err)
	}
}

func TestResolveUnknownComplexUnit(t *testing.T) {
	_, err := Value{Type: TypeDimension, Data: 16<<8 | 0x9}.Resolve(nil)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindInvalidData}) {
		t.Errorf("expected invalid_data for unit 9, got %v", err)
	}
}
