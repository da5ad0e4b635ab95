package trie

import (
	"math/rand"
	"strings"
	"testing"
)

func randomRules(r *rand.Rand, count, depth int) []string {
	rules := make([]string, count)
	for i := range rules {
		n := r.Intn(depth) + 1
		segments := make([]string, n)
		for j := range segments {
			segments[j] = string(rune('a' + r.Intn(26)))
		}
		rules[i] = strings.Join(segments, ".")
	}
	return rules
}

func BenchmarkCovers(b *testing.B) {
	sizes := []struct {
		name  string
		count int
		depth int
	}{
		{"Small", 10, 2},
		{"Medium", 100, 3},
		{"Large", 1000, 5},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			r := rand.New(rand.NewSource(1))
			tr := New()
			for _, rule := range randomRules(r, size.count, size.depth) {
				tr.Add(rule)
			}
			queries := randomRules(r, 64, size.depth+1)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tr.Covers(queries[i%len(queries)])
			}
		})
	}
}
