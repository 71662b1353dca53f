package svgdom

import "strconv"

// pathControlPoints extracts a conservative set of points from SVG path
// data: every on-curve endpoint plus every Bézier control point. The convex
// hull of these encloses the rendered curve, so their bounding box is a
// safe over-approximation. Arc segments contribute their endpoints only.
func pathControlPoints(d string) [][2]float64 {
	var pts [][2]float64
	var cur, start [2]float64

	add := func(p [2]float64) { pts = append(pts, p) }

	i := 0
	cmd := byte(0)
	for i < len(d) {
		c := d[i]
		switch {
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			cmd = c
			i++
			if cmd == 'Z' || cmd == 'z' {
				cur = start
			}
			continue
		case isPathSeparator(c):
			i++
			continue
		}

		rel := cmd >= 'a'
		base := [2]float64{}
		if rel {
			base = cur
		}

		switch cmd {
		case 'M', 'm', 'L', 'l', 'T', 't':
			p, next, ok := scanPair(d, i)
			if !ok {
				return pts
			}
			i = next
			cur = [2]float64{base[0] + p[0], base[1] + p[1]}
			add(cur)
			if cmd == 'M' || cmd == 'm' {
				start = cur
				// Subsequent pairs are implicit lineto.
				if cmd == 'M' {
					cmd = 'L'
				} else {
					cmd = 'l'
				}
			}
		case 'H', 'h':
			v, next, ok := scanNumber(d, i)
			if !ok {
				return pts
			}
			i = next
			cur[0] = base[0] + v
			add(cur)
		case 'V', 'v':
			v, next, ok := scanNumber(d, i)
			if !ok {
				return pts
			}
			i = next
			cur[1] = base[1] + v
			add(cur)
		case 'C', 'c':
			p, ok := scanCurve(d, &i, base, 3, add)
			if !ok {
				return pts
			}
			cur = p
		case 'S', 's', 'Q', 'q':
			p, ok := scanCurve(d, &i, base, 2, add)
			if !ok {
				return pts
			}
			cur = p
		case 'A', 'a':
			// rx ry rotation large-arc sweep x y: only the endpoint is a
			// geometric point; the radii are not coordinates.
			for k := 0; k < 5; k++ {
				if _, next, ok := scanNumber(d, i); ok {
					i = next
				} else {
					return pts
				}
			}
			p, next, ok := scanPair(d, i)
			if !ok {
				return pts
			}
			i = next
			cur = [2]float64{base[0] + p[0], base[1] + p[1]}
			add(cur)
		default:
			// Stray number with no preceding command: malformed, stop.
			return pts
		}
	}
	return pts
}

// scanCurve reads n coordinate pairs (control points then endpoint),
// records each, and returns the new current point. ok is false when the
// data runs out or turns non-numeric mid-segment; the caller must stop
// scanning, since i has not moved past the bad input.
func scanCurve(d string, i *int, base [2]float64, n int, add func([2]float64)) ([2]float64, bool) {
	var last [2]float64
	for k := 0; k < n; k++ {
		p, next, ok := scanPair(d, *i)
		if !ok {
			return base, false
		}
		*i = next
		last = [2]float64{base[0] + p[0], base[1] + p[1]}
		add(last)
	}
	return last, true
}

func scanPair(d string, i int) ([2]float64, int, bool) {
	x, i, ok := scanNumber(d, i)
	if !ok {
		return [2]float64{}, i, false
	}
	y, i, ok := scanNumber(d, i)
	if !ok {
		return [2]float64{}, i, false
	}
	return [2]float64{x, y}, i, true
}

// scanNumber reads the next float from path data starting at or after i,
// skipping separators. It understands signs, decimals, and exponents.
func scanNumber(d string, i int) (float64, int, bool) {
	for i < len(d) && isPathSeparator(d[i]) {
		i++
	}
	start := i
	if i < len(d) && (d[i] == '+' || d[i] == '-') {
		i++
	}
	digits := false
	for i < len(d) && (d[i] >= '0' && d[i] <= '9') {
		i++
		digits = true
	}
	if i < len(d) && d[i] == '.' {
		i++
		for i < len(d) && (d[i] >= '0' && d[i] <= '9') {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, start, false
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		j := i + 1
		if j < len(d) && (d[j] == '+' || d[j] == '-') {
			j++
		}
		expDigits := false
		for j < len(d) && (d[j] >= '0' && d[j] <= '9') {
			j++
			expDigits = true
		}
		if expDigits {
			i = j
		}
	}
	v, err := strconv.ParseFloat(d[start:i], 64)
	if err != nil {
		return 0, start, false
	}
	return v, i, true
}

func isPathSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

// scanNumbers extracts every float in a separator-delimited list.
func scanNumbers(s string) []float64 {
	var out []float64
	i := 0
	for i < len(s) {
		v, next, ok := scanNumber(s, i)
		if !ok {
			break
		}
		out = append(out, v)
		i = next
	}
	return out
}
