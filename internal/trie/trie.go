// Package trie stores dotted rule names, such as "inline.placeholder", as
// paths of segments so that a namespace like "inline" can stand for every
// rule beneath it.
//
// Nodes live in a single arena slice and refer to their children by index.
package trie

import (
	"sort"
	"strings"
)

type nodeIndex int

const root nodeIndex = 0

type arenaNode struct {
	children map[string]nodeIndex
	isEnd    bool
}

type arena struct {
	nodes []arenaNode
}

func newArena() *arena {
	a := &arena{nodes: make([]arenaNode, 0, 16)}
	a.newNode()
	return a
}

func (a *arena) newNode() nodeIndex {
	idx := nodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{children: make(map[string]nodeIndex)})
	return idx
}

func (a *arena) insert(sequence []string) {
	current := root
	for _, part := range sequence {
		child, ok := a.nodes[current].children[part]
		if !ok {
			child = a.newNode()
			a.nodes[current].children[part] = child
		}
		current = child
	}
	a.nodes[current].isEnd = true
}

// coversPrefix reports whether some inserted path is a prefix of sequence,
// sequence itself included.
func (a *arena) coversPrefix(sequence []string) bool {
	current := root
	if a.nodes[current].isEnd {
		return true
	}
	for _, part := range sequence {
		child, ok := a.nodes[current].children[part]
		if !ok {
			return false
		}
		current = child
		if a.nodes[current].isEnd {
			return true
		}
	}
	return false
}

func (a *arena) equal(aIdx nodeIndex, b *arena, bIdx nodeIndex) bool {
	na, nb := a.nodes[aIdx], b.nodes[bIdx]
	if na.isEnd != nb.isEnd || len(na.children) != len(nb.children) {
		return false
	}
	for key, childA := range na.children {
		childB, ok := nb.children[key]
		if !ok || !a.equal(childA, b, childB) {
			return false
		}
	}
	return true
}

func (a *arena) write(sb *strings.Builder, idx nodeIndex) {
	n := a.nodes[idx]
	if n.isEnd {
		sb.WriteString("*")
	}
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("(")
		a.write(sb, n.children[key])
		sb.WriteString(")")
	}
}

// Trie is a set of rule names and rule namespaces.
type Trie struct {
	arena *arena
}

func New() *Trie {
	return &Trie{arena: newArena()}
}

// Insert adds a path of segments.
func (t *Trie) Insert(sequence []string) {
	t.arena.insert(sequence)
}

// Add inserts a dotted rule name. The empty name is the root and so covers
// every rule.
func (t *Trie) Add(rule string) {
	t.Insert(Split(rule))
}

// Covers reports whether rule, or one of its namespaces, was added.
func (t *Trie) Covers(rule string) bool {
	return t.arena.coversPrefix(Split(rule))
}

// Len counts inserted paths.
func (t *Trie) Len() int {
	n := 0
	for _, node := range t.arena.nodes {
		if node.isEnd {
			n++
		}
	}
	return n
}

func (t *Trie) Equal(other *Trie) bool {
	return t.arena.equal(root, other.arena, root)
}

// String renders the trie with sorted keys; "*" marks the end of a path.
func (t *Trie) String() string {
	var sb strings.Builder
	t.arena.write(&sb, root)
	return sb.String()
}

// Split breaks a dotted rule name into its segments.
func Split(rule string) []string {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return nil
	}
	return strings.Split(rule, ".")
}
