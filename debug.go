package gesture

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLog is the logger of the Scene that last enabled debug mode. Tree
// checks report through it; nil falls back to the logrus standard logger.
var debugLog logrus.FieldLogger

func debugLogger() logrus.FieldLogger {
	if debugLog == nil {
		return logrus.StandardLogger()
	}
	return debugLog
}

// newDefaultLogger returns the logger a Scene uses when none is supplied:
// text to stderr at warn level.
func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("gesture debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger().WithField("node", n.Name).Warnf("gesture: tree depth %d exceeds %d", depth, debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children. Delegate
// selectors scan the whole document on every event.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger().WithField("node", n.Name).Warnf("gesture: %d children (threshold %d)",
			len(n.children), debugMaxChildCount)
	}
}
