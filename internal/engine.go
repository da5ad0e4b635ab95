package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	lex "github.com/lex-fmt/core-sub004"
	"github.com/lex-fmt/core-sub004/internal/suppress"
	"github.com/lex-fmt/core-sub004/internal/trie"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

// DefaultExtensions lists the file extensions checked when none are
// configured.
var DefaultExtensions = []string{".lex"}

// Engine parses Lex files and runs the structural rules over them.
type Engine struct {
	mu           sync.RWMutex
	rules        map[string]LintRule
	ignored      *trie.Trie
	ignoredPaths []string

	inlines    bool
	attach     bool
	extensions []string
	cache      *Cache
	logger     *zap.Logger

	watcher    *fsnotify.Watcher
	isWatching atomic.Bool
	onIssues   func(filename string, issues []tt.Issue)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithCache(c *Cache) EngineOption {
	return func(e *Engine) { e.cache = c }
}

func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithInlines turns the inline.* rules on or off.
func WithInlines(enabled bool) EngineOption {
	return func(e *Engine) { e.inlines = enabled }
}

// WithAttachment controls whether annotations are attached before the
// rules run.
func WithAttachment(enabled bool) EngineOption {
	return func(e *Engine) { e.attach = enabled }
}

func WithExtensions(exts ...string) EngineOption {
	return func(e *Engine) {
		if len(exts) > 0 {
			e.extensions = exts
		}
	}
}

// NewEngine creates an engine with every rule enabled at its default
// severity, then applies the configured rules. A configured name may be a
// rule or a namespace such as "inline".
func NewEngine(rules map[string]tt.ConfigRule, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		ignored:    trie.New(),
		inlines:    true,
		attach:     true,
		extensions: DefaultExtensions,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registerDefaultRules()
	if err := e.applyRules(rules); err != nil {
		return nil, err
	}
	if !e.inlines {
		e.IgnoreRule("inline")
	}
	return e, nil
}

type ruleConstructor func() LintRule

var allRuleConstructors = map[string]ruleConstructor{
	ParseErrorRule:     NewParseErrorRule,
	DetachedAnnotation: NewDetachedAnnotationRule,
	IndeterminateRef:   NewIndeterminateReferenceRule,
	PlaceholderRef:     NewPlaceholderRule,
	SingleItemList:     NewSingleItemListRule,
}

// RuleNames returns the names of every known rule, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) registerDefaultRules() {
	e.rules = make(map[string]LintRule, len(allRuleConstructors))
	for key, newRule := range allRuleConstructors {
		e.rules[key] = newRule()
	}
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	for key, cfg := range rules {
		scope := trie.New()
		scope.Add(key)

		matched := false
		for name, r := range e.rules {
			if !scope.Covers(name) {
				continue
			}
			matched = true
			r.SetSeverity(cfg.Severity)
		}
		if !matched {
			return fmt.Errorf("unknown rule %q", key)
		}
		if cfg.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
	}
	return nil
}

// Rule returns the rule registered under name.
func (e *Engine) Rule(name string) (LintRule, bool) {
	r, ok := e.rules[name]
	return r, ok
}

// IgnoreRule disables a rule, or every rule under a namespace.
func (e *Engine) IgnoreRule(rule string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ignored.Add(rule)
}

// IgnorePath skips files matching a glob pattern or lying under a
// directory.
func (e *Engine) IgnorePath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ignoredPaths = append(e.ignoredPaths, path)
}

func (e *Engine) isIgnoredRule(rule string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ignored.Covers(rule)
}

func (e *Engine) isIgnoredPath(filename string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	clean := filepath.Clean(filename)
	for _, p := range e.ignoredPaths {
		if matched, _ := filepath.Match(p, filename); matched {
			return true
		}
		if matched, _ := filepath.Match(p, filepath.Base(filename)); matched {
			return true
		}
		dir := filepath.Clean(p)
		if clean == dir || strings.HasPrefix(clean, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// HasExtension reports whether filename is a file the engine checks.
func (e *Engine) HasExtension(filename string) bool {
	ext := filepath.Ext(filename)
	for _, want := range e.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Run checks the file at filename, consulting the cache when one is set.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename, content); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return issues, nil
		}
	}

	issues, err := e.RunSource(filename, content)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, content, issues); err != nil {
			e.logger.Warn("failed to cache issues", zap.String("file", filename), zap.Error(err))
		}
	}
	return issues, nil
}

// RunSource checks source as if it were read from filename. A parse
// failure is reported as a parse-error issue, not returned.
func (e *Engine) RunSource(filename string, source []byte) ([]tt.Issue, error) {
	src := newSource(filename, string(source))
	doc, err := lex.ParseWithOptions(src.Text, lex.Options{
		Logger:         e.logger,
		SkipAttachment: !e.attach,
	})
	src.Doc, src.Err, src.Attached = doc, err, e.attach

	nolint := suppress.Collect(doc)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		if e.isIgnoredRule(rule.Name()) {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(src)
			if err != nil {
				e.logger.Error("rule failed", zap.String("rule", r.Name()), zap.String("file", filename), zap.Error(err))
				return
			}

			kept := filterSuppressed(issues, nolint)

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	sortIssues(allIssues)
	return allIssues, nil
}

func filterSuppressed(issues []tt.Issue, m *suppress.Manager) []tt.Issue {
	if m.Len() == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !m.Suppressed(issue.Rule, issue.Start.Line-1) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.Rule < b.Rule
	})
}
