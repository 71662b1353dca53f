package svgdom

import "github.com/panelstitch/panelstitch/pkg/geom"

// Walk visits el and every descendant in document order. Returning false
// from fn prunes the subtree below the current element.
func Walk(el *Element, fn func(*Element) bool) {
	if !fn(el) {
		return
	}
	for _, c := range el.Children {
		Walk(c, fn)
	}
}

// Find returns the first element in document order for which pred is true.
func Find(root *Element, pred func(*Element) bool) (*Element, bool) {
	var found *Element
	Walk(root, func(e *Element) bool {
		if found != nil {
			return false
		}
		if pred(e) {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// FindWithTransform returns the first matching element along with the
// transform accumulated from base through the element's ancestors. The
// element's own transform attribute is not included; pair this with
// [Bounds], which applies it.
//
// Unparseable ancestor transforms are treated as identity, matching the
// resolver's recovery policy.
func FindWithTransform(root *Element, base geom.Matrix, pred func(*Element) bool) (*Element, geom.Matrix, bool) {
	return findWithTransform(root, base, pred)
}

func findWithTransform(el *Element, ctm geom.Matrix, pred func(*Element) bool) (*Element, geom.Matrix, bool) {
	if pred(el) {
		return el, ctm, true
	}
	local, err := el.Transform()
	if err != nil {
		local = geom.Identity()
	}
	child := ctm.Mul(local)
	for _, c := range el.Children {
		if found, m, ok := findWithTransform(c, child, pred); ok {
			return found, m, ok
		}
	}
	return nil, geom.Matrix{}, false
}

// HasIDSubstring returns a predicate matching elements whose id contains
// the given substring.
func HasIDSubstring(sub string) func(*Element) bool {
	return func(e *Element) bool {
		return sub != "" && containsFold(e.ID(), sub)
	}
}

// containsFold reports whether s contains sub, ASCII case-insensitively.
func containsFold(s, sub string) bool {
	n := len(sub)
	if n == 0 {
		return false
	}
	for i := 0; i+n <= len(s); i++ {
		if equalFold(s[i:i+n], sub) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
