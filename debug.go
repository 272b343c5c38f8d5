package sprig

import (
	"fmt"
	"os"
)

// debugCheckDisposed panics with a descriptive message when a disposed
// control is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(c *Control, op string) {
	if c.IsDisposed() {
		panic(fmt.Sprintf("sprig debug: %s on disposed control %q", op, c.name))
	}
}

// debugWarnLocked writes a warning to the log of the display c is attached
// to, or to stderr for a detached tree. Caller holds treeMu.
func debugWarnLocked(c *Control, format string, args ...any) {
	if d := c.findDisplayLocked(); d != nil {
		d.logf("warning: "+format, args...)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sprig] warning: "+format+"\n", args...)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
// Caller holds treeMu.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(c *Control) {
	depth := 0
	for p := c; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugWarnLocked(c, "tree depth %d exceeds %d (control %q)",
			depth, debugMaxTreeDepth, c.name)
	}
}

// debugCheckChildCount warns if a container has more than 1000
// children. Caller holds treeMu.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *Control) {
	if n := len(c.kids.list); n > debugMaxChildCount {
		debugWarnLocked(c, "control %q has %d children (threshold %d)",
			c.name, n, debugMaxChildCount)
	}
}

// DumpTree writes an indented outline of the subtree rooted at c: name,
// screen bounds and the flags that affect painting.
func DumpTree(c *Control) string {
	treeMu.RLock()
	defer treeMu.RUnlock()
	var b []byte
	var walk func(n *Control, depth int)
	walk = func(n *Control, depth int) {
		for i := 0; i < depth; i++ {
			b = append(b, "  "...)
		}
		b = fmt.Appendf(b, "%s %v", n.name, n.bounds())
		if !n.visible {
			b = append(b, " hidden"...)
		}
		if !n.enabled {
			b = append(b, " disabled"...)
		}
		if n.suspended {
			b = append(b, " suspended"...)
		}
		if n.scroll != nil {
			b = fmt.Appendf(b, " scroll=(%d,%d)", n.scroll.scrollX, n.scroll.scrollY)
		}
		b = append(b, '\n')
		if n.kids != nil {
			for _, k := range n.kids.list {
				walk(k, depth+1)
			}
		}
	}
	walk(c, 0)
	return string(b)
}
