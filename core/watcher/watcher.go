package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/fsnotify/fsnotify"
)

// DescriptorWatcher recompiles the project whenever a behaviour descriptor
// or the project config changes. Events are debounced so one save triggers
// one rebuild.
type DescriptorWatcher struct {
	watcher       *fsnotify.Watcher
	rootDir       string
	excludePaths  []string
	onChange      func() error
	debounceTimer *time.Timer
	mutex         sync.Mutex
}

func New(rootDir string, excludePaths []string, onChange func() error) (*DescriptorWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &DescriptorWatcher{
		watcher:      fsWatcher,
		rootDir:      rootDir,
		excludePaths: excludePaths,
		onChange:     onChange,
	}, nil
}

func (dw *DescriptorWatcher) Watch() error {
	if err := dw.watcher.Add(dw.rootDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dw.rootDir, err)
	}

	if err := dw.onChange(); err != nil {
		logger.Error("Initial compile failed: %v", err)
	}

	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if dw.shouldExcludePath(event.Name) {
				continue
			}
			if !isDescriptorFile(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				dw.debounceCompile()
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (dw *DescriptorWatcher) debounceCompile() {
	dw.mutex.Lock()
	defer dw.mutex.Unlock()

	if dw.debounceTimer != nil {
		dw.debounceTimer.Stop()
	}

	dw.debounceTimer = time.AfterFunc(500*time.Millisecond, func() {
		logger.Debug("Descriptor changes detected, recompiling...")
		if err := dw.onChange(); err != nil {
			logger.Error("Recompile failed: %v", err)
		}
	})
}

func (dw *DescriptorWatcher) Close() error {
	dw.mutex.Lock()
	defer dw.mutex.Unlock()

	if dw.debounceTimer != nil {
		dw.debounceTimer.Stop()
	}
	return dw.watcher.Close()
}

func (dw *DescriptorWatcher) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(dw.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.Clean(relPath)

	for _, excludePath := range dw.excludePaths {
		excludePath = filepath.Clean(excludePath)
		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func isDescriptorFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml")
}
