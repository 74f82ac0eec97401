package keymap

import "src.yle.sh/pkg/ui"

// Node is a node of a key trie. The root of a trie represents the empty
// sequence; every other node is reached by one key from its parent.
//
// A node may be bound to a command and be the prefix of longer sequences at
// the same time; Step reports such a node as Partial so that the longer
// sequences remain reachable.
type Node struct {
	children map[ui.Key]*Node
	cmd      *Command
}

// Result is the outcome of feeding one key to a trie node.
type Result int

// Possible values of Result.
const (
	// NoMatch means that no binding starts with the sequence fed so far.
	NoMatch Result = iota
	// Partial means that the sequence is the prefix of at least one longer
	// binding. The node may also be bound itself.
	Partial
	// Match means that the sequence is bound and no longer binding extends
	// it.
	Match
)

func (r Result) String() string {
	switch r {
	case NoMatch:
		return "no-match"
	case Partial:
		return "partial"
	case Match:
		return "match"
	default:
		return "bad-result"
	}
}

// NewTrie returns the root of an empty trie.
func NewTrie() *Node {
	return &Node{}
}

// Insert binds seq to cmd, creating intermediate nodes as needed. Rebinding
// an existing sequence overwrites its command. An empty sequence cannot be
// bound.
func (n *Node) Insert(seq []ui.Key, cmd Command) error {
	if len(seq) == 0 {
		return &ConfigError{Mode: NoMode, Msg: "empty key sequence"}
	}
	if cmd.Fn == nil {
		return &ConfigError{Mode: NoMode, Seq: seq, Msg: "command " + cmd.Name + " has no body"}
	}
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			if n.children == nil {
				n.children = make(map[ui.Key]*Node)
			}
			child = &Node{}
			n.children[k] = child
		}
		n = child
	}
	n.cmd = &cmd
	return nil
}

// Step feeds k to node n, returning the node reached and how it matched. The
// returned node is nil when the result is NoMatch.
func Step(n *Node, k ui.Key) (*Node, Result) {
	child, ok := n.children[k]
	if !ok {
		return nil, NoMatch
	}
	if len(child.children) > 0 {
		return child, Partial
	}
	return child, Match
}

// Command returns the command bound to the node, if any.
func (n *Node) Command() (Command, bool) {
	if n.cmd == nil {
		return Command{}, false
	}
	return *n.cmd, true
}

// Lookup walks seq from n and returns the command bound to it.
func (n *Node) Lookup(seq []ui.Key) (Command, bool) {
	for _, k := range seq {
		next, res := Step(n, k)
		if res == NoMatch {
			return Command{}, false
		}
		n = next
	}
	return n.Command()
}

// Walk calls f for every bound sequence in the trie, in no particular order.
func (n *Node) Walk(f func(seq ui.Keys, cmd Command)) {
	n.walk(nil, f)
}

func (n *Node) walk(prefix ui.Keys, f func(ui.Keys, Command)) {
	if n.cmd != nil {
		f(append(ui.Keys(nil), prefix...), *n.cmd)
	}
	for k, child := range n.children {
		child.walk(append(prefix, k), f)
	}
}
