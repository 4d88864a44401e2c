package tree

import (
	"fmt"
	"strings"
)

// rawColumn is the column leaf raw text is aligned to in rendered output.
const rawColumn = 48

// Render produces the stable textual rendering of a tree used as a fixture
// format: one line per node, the segment type followed by the literal raw
// text for leaves, meta nodes as bracketed tags, nesting via indentation.
// The output is deterministic for a given (source, dialect) pair.
func Render(n Node) string {
	var sb strings.Builder
	Walk(n, func(node Node, depth int) bool {
		indent := strings.Repeat("    ", depth)
		switch t := node.(type) {
		case *Meta:
			sb.WriteString(indent)
			sb.WriteString("[" + t.Type() + "]")
		case *Leaf:
			line := indent + t.Type() + ":"
			sb.WriteString(pad(line))
			sb.WriteString(fmt.Sprintf("%q", t.Raw()))
		default:
			sb.WriteString(indent)
			sb.WriteString(node.Type())
			sb.WriteString(":")
		}
		sb.WriteString("\n")
		return true
	})
	return sb.String()
}

func pad(line string) string {
	if len(line) >= rawColumn {
		return line + " "
	}
	return line + strings.Repeat(" ", rawColumn-len(line))
}
