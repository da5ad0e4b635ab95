// Package check runs the Lex checker over files and directories.
package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/lex-fmt/core-sub004/internal"
	tt "github.com/lex-fmt/core-sub004/internal/types"
	"github.com/lex-fmt/core-sub004/scanner"
)

// ProgressWriter receives the progress bar drawn while checking a
// directory.
var ProgressWriter io.Writer = os.Stderr

// LintEngine is the part of *internal.Engine the batch functions use.
type LintEngine interface {
	Run(filename string) ([]tt.Issue, error)
	RunSource(filename string, source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
	HasExtension(filename string) bool
}

var _ LintEngine = (*internal.Engine)(nil)

// New builds an engine from the configuration file at configurationPath.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config, configurationPath, logger)
}

// NewFromConfig builds an engine from config. configurationPath, when set,
// is tracked by the cache so that editing it invalidates stored results.
func NewFromConfig(config Config, configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	opts := []internal.EngineOption{
		internal.WithLogger(logger),
		internal.WithInlines(config.Inlines),
		internal.WithAttachment(config.AttachAnnotations),
		internal.WithExtensions(config.Extensions...),
	}

	if config.CacheDir != "" {
		cache, err := internal.NewCache(config.CacheDir)
		if err != nil {
			return nil, err
		}
		if configurationPath != "" {
			if err := cache.TrackDependency(configurationPath); err != nil {
				return nil, err
			}
		}
		opts = append(opts, internal.WithCache(cache))
	}

	engine, err := internal.NewEngine(config.Rules, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range config.IgnorePaths {
		engine.IgnorePath(p)
	}
	return engine, nil
}

// Source is an in-memory file.
type Source struct {
	Filename string
	Content  []byte
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources []Source,
	processor func(LintEngine, Source) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.String("source", source.Filename), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		allIssues = append(allIssues, issues...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
	}

	return allIssues, nil
}

type fileResult struct {
	issues []tt.Issue
	err    error
}

// ProcessPath checks one file, or every file with a checked extension
// under a directory using one worker per CPU. Files that fail are logged
// and skipped. On cancellation it returns what finished along with the
// context's error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !engine.HasExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	scanned, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	var files []string
	for _, f := range scanned {
		if engine.HasExtension(f.Path) {
			files = append(files, f.Path)
		}
	}

	results := make(chan fileResult, len(files))
	sem := make(chan struct{}, runtime.NumCPU())

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressWriter),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var wg sync.WaitGroup
	canceled := false
dispatch:
	for _, filePath := range files {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case <-ctx.Done():
			canceled = true
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			results <- fileResult{issues: fileIssues, err: err}
			_ = bar.Add(1)
		}(filePath)
	}
	wg.Wait()
	close(results)
	_ = bar.Finish()

	var issues []tt.Issue
	for r := range results {
		if r.err == nil {
			issues = append(issues, r.issues...)
		}
	}
	SortIssues(issues)

	if canceled {
		return issues, ctx.Err()
	}
	return issues, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source Source) ([]tt.Issue, error) {
	return engine.RunSource(source.Filename, source.Content)
}

// SortIssues orders issues by file, then position, then rule.
func SortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.Rule < b.Rule
	})
}

// Report groups the issues of one run by file. RunID tags the run in logs
// and JSON output.
type Report struct {
	RunID  string                `json:"run_id"`
	Issues map[string][]tt.Issue `json:"issues"`
	Total  int                   `json:"total"`
}

func NewReport(issues []tt.Issue) *Report {
	r := &Report{
		RunID:  uuid.NewString(),
		Issues: make(map[string][]tt.Issue),
		Total:  len(issues),
	}
	for _, issue := range issues {
		r.Issues[issue.Filename] = append(r.Issues[issue.Filename], issue)
	}
	return r
}

// Files returns the file names of the report, sorted.
func (r *Report) Files() []string {
	files := make([]string, 0, len(r.Issues))
	for filename := range r.Issues {
		files = append(files, filename)
	}
	sort.Strings(files)
	return files
}

// Count returns the number of issues at each severity.
func (r *Report) Count() map[tt.Severity]int {
	counts := make(map[tt.Severity]int)
	for _, issues := range r.Issues {
		for _, issue := range issues {
			counts[issue.Severity]++
		}
	}
	return counts
}
