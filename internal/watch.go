package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/lex-fmt/core-sub004/internal/types"
)

// settleDelay lets a burst of writes to one file land before it is
// re-checked.
const settleDelay = 100 * time.Millisecond

// OnIssues sets the callback that receives each re-check. Without one,
// results are logged.
func (e *Engine) OnIssues(fn func(filename string, issues []tt.Issue)) {
	e.onIssues = fn
}

// StartWatching re-checks files under dirs whenever they are written.
func (e *Engine) StartWatching(dirs ...string) error {
	if e.isWatching.Load() {
		return errors.New("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching.Store(true)
	e.logger.Info("watching", zap.Strings("dirs", dirs))
	go e.watchLoop(watcher)
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching.Swap(false) {
		e.logger.Warn("not watching")
		return nil
	}
	return e.watcher.Close()
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !e.HasExtension(event.Name) {
		return
	}

	time.Sleep(settleDelay)
	issues, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("re-check failed", zap.String("file", event.Name), zap.Error(err))
		return
	}
	e.reportIssues(event.Name, issues)
}

func (e *Engine) reportIssues(filename string, issues []tt.Issue) {
	if e.onIssues != nil {
		e.onIssues(filename, issues)
		return
	}
	if len(issues) == 0 {
		e.logger.Info("no issues found", zap.String("file", filename))
		return
	}

	e.logger.Info("issues found", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		e.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.String("severity", issue.Severity.String()),
			zap.Int("line", issue.Start.Line))
	}
}
