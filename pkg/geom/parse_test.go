package geom

import (
	"testing"

	"github.com/panelstitch/panelstitch/pkg/errors"
)

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Matrix
	}{
		{
			name:  "empty string is identity",
			input: "",
			want:  Identity(),
		},
		{
			name:  "matrix",
			input: "matrix(1, 2, 3, 4, 5, 6)",
			want:  Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6},
		},
		{
			name:  "matrix space separated",
			input: "matrix(1 2 3 4 5 6)",
			want:  Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6},
		},
		{
			name:  "translate two args",
			input: "translate(10, -5)",
			want:  Translate(10, -5),
		},
		{
			name:  "translate one arg defaults y to zero",
			input: "translate(10)",
			want:  Translate(10, 0),
		},
		{
			name:  "uniform scale",
			input: "scale(2)",
			want:  Scale(2, 2),
		},
		{
			name:  "non-uniform scale",
			input: "scale(2, 0.5)",
			want:  Scale(2, 0.5),
		},
		{
			name:  "rotate about origin",
			input: "rotate(90)",
			want:  Rotate(90),
		},
		{
			name:  "rotate about center",
			input: "rotate(45 10 20)",
			want:  RotateAround(45, 10, 20),
		},
		{
			name:  "skewX",
			input: "skewX(30)",
			want:  SkewX(30),
		},
		{
			name:  "skewY",
			input: "skewY(-15)",
			want:  SkewY(-15),
		},
		{
			name:  "chain composes left to right",
			input: "translate(10, 20) scale(2)",
			want:  Translate(10, 20).Mul(Scale(2, 2)),
		},
		{
			name:  "chain with comma separator",
			input: "translate(10,20),scale(2)",
			want:  Translate(10, 20).Mul(Scale(2, 2)),
		},
		{
			name:  "scientific notation",
			input: "matrix(1e0 0 0 1.5e1 -2.5e-1 0)",
			want:  Matrix{A: 1, D: 15, E: -0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransform(tt.input)
			if err != nil {
				t.Fatalf("ParseTransform(%q) error: %v", tt.input, err)
			}
			if !got.Near(tt.want, tol) {
				t.Errorf("ParseTransform(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTransformChainOrder(t *testing.T) {
	// translate then scale: a point at (1, 0) scales to (2, 0) and then the
	// leading translate shifts it to (12, 0).
	m, err := ParseTransform("translate(10, 0) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	x, y := m.Apply(1, 0)
	if x != 12 || y != 0 {
		t.Errorf("chain applied to (1,0) = (%v, %v), want (12, 0)", x, y)
	}
}

func TestParseTransformErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown primitive", "shear(1, 2)"},
		{"missing paren", "translate 10 20"},
		{"unterminated", "translate(10, 20"},
		{"bad number", "translate(ten, 20)"},
		{"matrix arity", "matrix(1, 2, 3)"},
		{"rotate arity", "rotate(45, 10)"},
		{"skew arity", "skewX(1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransform(tt.input)
			if err == nil {
				t.Fatalf("ParseTransform(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, errors.ErrCodeMalformedTransform) {
				t.Errorf("error code = %v, want MALFORMED_TRANSFORM", errors.GetCode(err))
			}
		})
	}
}
