package document

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/aputinski/butane/pkgs/compiler"
)

// Watch recompiles inputPath every time it changes, until the context is
// cancelled. onResult is called after every attempt with the compiled
// tree or the failure; compile errors do not stop the watch. The parent
// directory is watched rather than the file itself, because editors
// replace files on save.
func Watch(ctx context.Context, c *compiler.Compiler, inputPath, outputPath string, onResult func(compiler.RuleTree, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(inputPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}

	name := filepath.Clean(inputPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			onResult(CompileFile(c, inputPath, outputPath))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}
