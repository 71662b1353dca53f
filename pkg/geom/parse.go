package geom

import (
	"strconv"
	"strings"

	"github.com/panelstitch/panelstitch/pkg/errors"
)

// ParseTransform parses an SVG transform attribute into a single Matrix.
//
// The attribute is a chain of primitives separated by whitespace and/or
// commas, composed left-to-right:
//
//	matrix(a b c d e f)
//	translate(tx [ty])
//	scale(sx [sy])
//	rotate(deg [cx cy])
//	skewX(deg)
//	skewY(deg)
//
// An empty string parses to the identity. An unrecognized primitive or a
// wrong argument count yields a MALFORMED_TRANSFORM error; callers that
// treat a transform as optional should fall back to [Identity] themselves.
func ParseTransform(s string) (Matrix, error) {
	m := Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		name, args, tail, err := nextPrimitive(rest)
		if err != nil {
			return Identity(), err
		}
		prim, err := primitiveMatrix(name, args)
		if err != nil {
			return Identity(), err
		}
		m = m.Mul(prim)
		rest = strings.TrimLeft(tail, " \t\r\n,")
	}
	return m, nil
}

// nextPrimitive splits the leading "name(arg, arg ...)" off a transform list.
func nextPrimitive(s string) (name string, args []float64, tail string, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", nil, "", errors.New(errors.ErrCodeMalformedTransform,
			"missing '(' in transform %q", s)
	}
	name = strings.TrimSpace(s[:open])
	closing := strings.IndexByte(s[open:], ')')
	if closing < 0 {
		return "", nil, "", errors.New(errors.ErrCodeMalformedTransform,
			"unterminated %s() in transform %q", name, s)
	}
	closing += open

	args, err = parseArgs(s[open+1 : closing])
	if err != nil {
		return "", nil, "", errors.Wrap(errors.ErrCodeMalformedTransform, err,
			"arguments of %s()", name)
	}
	return name, args, s[closing+1:], nil
}

// parseArgs splits a primitive's argument list on commas and/or whitespace.
func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func primitiveMatrix(name string, args []float64) (Matrix, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return Matrix{}, badArity(name, "6", args)
		}
		return Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil
	case "translate":
		switch len(args) {
		case 1:
			return Translate(args[0], 0), nil
		case 2:
			return Translate(args[0], args[1]), nil
		}
		return Matrix{}, badArity(name, "1 or 2", args)
	case "scale":
		switch len(args) {
		case 1:
			return Scale(args[0], args[0]), nil
		case 2:
			return Scale(args[0], args[1]), nil
		}
		return Matrix{}, badArity(name, "1 or 2", args)
	case "rotate":
		switch len(args) {
		case 1:
			return Rotate(args[0]), nil
		case 3:
			return RotateAround(args[0], args[1], args[2]), nil
		}
		return Matrix{}, badArity(name, "1 or 3", args)
	case "skewX":
		if len(args) != 1 {
			return Matrix{}, badArity(name, "1", args)
		}
		return SkewX(args[0]), nil
	case "skewY":
		if len(args) != 1 {
			return Matrix{}, badArity(name, "1", args)
		}
		return SkewY(args[0]), nil
	}
	return Matrix{}, errors.New(errors.ErrCodeMalformedTransform,
		"unknown transform primitive %q", name)
}

func badArity(name, want string, args []float64) error {
	return errors.New(errors.ErrCodeMalformedTransform,
		"%s() takes %s arguments, got %d", name, want, len(args))
}
