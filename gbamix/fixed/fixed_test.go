package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNum_FloorFrac(t *testing.T) {
	tests := []struct {
		name  string
		n     Num
		floor int
		frac  Num
	}{
		{name: "zero", n: 0, floor: 0, frac: 0},
		{name: "exact integer", n: FromInt(5), floor: 5, frac: 0},
		{name: "positive with fraction", n: FromInt(3) + One/2, floor: 3, frac: One / 2},
		{name: "negative exact", n: FromInt(-2), floor: -2, frac: 0},
		{name: "negative with fraction", n: FromInt(-2) + One/4, floor: -2, frac: One / 4},
		{name: "just below integer", n: FromInt(7) - 1, floor: 6, frac: One - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.floor, tt.n.Floor(), "floor of %v", tt.n)
			assert.Equal(t, tt.frac, tt.n.Frac(), "frac of %v", tt.n)
			assert.Equal(t, tt.n, FromInt(tt.n.Floor())+tt.n.Frac(), "floor+frac should reconstruct the value")
		})
	}
}

func TestNum_Mul(t *testing.T) {
	tests := []struct {
		name string
		a, b Num
		want Num
	}{
		{name: "identity", a: FromInt(42), b: One, want: FromInt(42)},
		{name: "halving", a: FromInt(10), b: One / 2, want: FromInt(5)},
		{name: "quarter times quarter", a: One / 4, b: One / 4, want: One / 16},
		{name: "negative operand", a: FromInt(-3), b: One * 2, want: FromInt(-6)},
		{name: "zero", a: FromInt(123), b: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Mul(tt.b))
		})
	}
}

func TestNum_Div(t *testing.T) {
	assert.Equal(t, One/2, One.Div(FromInt(2)), "1/2 should be one half")
	assert.Equal(t, FromInt(3), FromInt(6).Div(FromInt(2)))
	assert.Equal(t, FromInt(-3), FromInt(6).Div(FromInt(-2)))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, One, Ratio(32768, 32768))
	assert.Equal(t, One/2, Ratio(1, 2))

	// 10512/32768 doesn't divide evenly; check the truncated raw value.
	assert.Equal(t, Num(82), Ratio(10512, 32768), "ratio should truncate toward zero")
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, One, FromFloat(1.0))
	assert.Equal(t, One/2, FromFloat(0.5))
	assert.Equal(t, FromInt(-1), FromFloat(-1.0))
	assert.Equal(t, Num(1), FromFloat(1.0/256.0), "smallest positive step")
}

func TestNum_String(t *testing.T) {
	assert.Equal(t, "1.5", (One + One/2).String())
	assert.Equal(t, "-0.25", (-One / 4).String())
}
