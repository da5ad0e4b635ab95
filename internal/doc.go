// Package internal runs structural checks over Lex documents.
//
// Engine parses each file with the lex package and hands the result to a
// set of LintRule implementations:
//
//	parse-error                      the source could not be parsed
//	annotation.detached              an annotation attached to nothing
//	inline.indeterminate-reference   a [reference] with no usable target
//	inline.placeholder               a [TK] placeholder
//	list.single-item                 a lone list item read as prose
//
// Rule names are dotted; configuring or ignoring a prefix such as "inline"
// applies to every rule beneath it. Issues covered by a nolint annotation
// are dropped (see package suppress).
//
// Cache keeps issues between runs keyed by content hash, and StartWatching
// re-checks files as they are written.
//
// Usage:
//
//	engine, err := internal.NewEngine(cfg.Rules, internal.WithLogger(logger))
//	if err != nil {
//	    // handle error
//	}
//	issues, err := engine.Run("notes.lex")
package internal
