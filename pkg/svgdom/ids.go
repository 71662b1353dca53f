package svgdom

import (
	"strings"

	"github.com/google/uuid"
)

// UniqueSuffix returns a short random identifier suffix. Merged composites
// use one suffix per source document so ids stay unique without being
// unreadably long.
func UniqueSuffix() string {
	return uuid.NewString()[:8]
}

// RewriteIDs appends "-"+suffix to every id attribute under root and fixes
// all references to the renamed ids: url(#id) occurrences in any attribute
// value, and href/xlink:href fragment targets. References to ids defined
// outside root are left untouched.
func RewriteIDs(root *Element, suffix string) {
	renamed := map[string]string{}
	Walk(root, func(e *Element) bool {
		if id := e.ID(); id != "" {
			newID := id + "-" + suffix
			renamed[id] = newID
			e.SetAttr("id", newID)
		}
		return true
	})
	if len(renamed) == 0 {
		return
	}

	Walk(root, func(e *Element) bool {
		for i, a := range e.Attrs {
			if a.Name == "id" {
				continue
			}
			e.Attrs[i].Value = rewriteRefs(a.Value, renamed)
		}
		return true
	})
}

// rewriteRefs replaces url(#old) and leading #old references in an
// attribute value using the rename table.
func rewriteRefs(v string, renamed map[string]string) string {
	if strings.HasPrefix(v, "#") {
		if newID, ok := renamed[v[1:]]; ok {
			return "#" + newID
		}
		return v
	}

	const marker = "url(#"
	if !strings.Contains(v, marker) {
		return v
	}

	var b strings.Builder
	rest := v
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx+len(marker)])
		rest = rest[idx+len(marker):]

		end := strings.IndexByte(rest, ')')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		id := rest[:end]
		if newID, ok := renamed[id]; ok {
			b.WriteString(newID)
		} else {
			b.WriteString(id)
		}
		rest = rest[end:]
	}
	return b.String()
}
