package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/cache"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/models"
)

// WriteFiles persists the emitted files under the output directory, skipping
// files whose content fingerprint has not changed since the last write.
// It returns the paths that were actually written.
func WriteFiles(files map[string]*models.GeneratedFile, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fileCache := cache.GetCache()
	var written []string

	for _, name := range names {
		file := files[name]
		path := filepath.Join(outputDir, name)

		if !fileCache.Changed(path, file.EmittedText) {
			logger.Debug("Skipping unchanged file: %s", path)
			continue
		}

		if err := os.WriteFile(path, []byte(file.EmittedText), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		fileCache.Update(path, file.EmittedText)
		written = append(written, path)
		logger.Info("Wrote %s (%d unit(s), %d import(s))", path, len(file.Units), len(file.Imports))
	}

	fileCache.LogStats()
	return written, nil
}
