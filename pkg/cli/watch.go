package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/flowlint/flowlint/pkg/console"
	"github.com/flowlint/flowlint/pkg/constants"
	"github.com/flowlint/flowlint/pkg/fileutil"
	"github.com/flowlint/flowlint/pkg/logger"
)

var watchLog = logger.New("cli:watch")

// debounceDelay collapses bursts of filesystem events into a single re-run.
// Editors routinely emit several write events per save.
const debounceDelay = 300 * time.Millisecond

// watchAndValidate validates the document, then re-validates whenever it or
// its companion files change. It blocks until the context is cancelled.
func watchAndValidate(ctx context.Context, config RunConfig) error {
	path, err := fileutil.ResolvePath(config.File)
	if err != nil {
		return fmt.Errorf("invalid document path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	scriptsDir := filepath.Join(dir, "scripts")
	if fileutil.DirExists(scriptsDir) {
		if err := watcher.Add(scriptsDir); err != nil {
			watchLog.Printf("Could not watch %s: %v", scriptsDir, err)
		}
	}
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("watching %s for changes", dir)))

	revalidate := func() {
		if _, err := validateOnce(ctx, config); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
	}
	revalidate()

	var (
		mu      sync.Mutex
		pending *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = time.AfterFunc(debounceDelay, revalidate)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			mu.Unlock()
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(event) {
				continue
			}
			watchLog.Printf("Change detected: %s %s", event.Op, event.Name)
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("change in %s, re-validating", filepath.Base(event.Name))))
			schedule()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("watch error: %v", watchErr)))
		}
	}
}

// relevantChange filters watcher events down to files that can affect a run:
// the document and limits file, companion docs, and shell scripts.
func relevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if name == constants.DefaultLimitsFileName || name == "LICENSE" {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".md", ".sh", ".yml", ".yaml":
		return true
	}
	return false
}
