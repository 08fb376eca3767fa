package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/calvinalkan/docweave/internal/compose"
	"github.com/calvinalkan/docweave/internal/fs"
)

const watchHelp = `  watch <topic-dir>       Recompose a topic whenever its files change`

func cmdWatch(o *IO, cfg compose.Config, args []string, sigCh <-chan os.Signal) error {
	if hasHelpFlag(args) {
		o.Println("Usage: dw watch <topic-dir>")
		o.Println("")
		o.Println("Watch a topic directory (including subdirectories holding")
		o.Println("partials) and recompose on every change, reporting success or")
		o.Println("the failing directive. Stop with Ctrl-C.")

		return nil
	}

	if len(args) == 0 {
		return errTopicDirRequired
	}

	fsys := fs.NewReal()

	dir, err := resolveTopicDir(fsys, cfg, args[0])
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	err = watchTree(watcher, fsys, dir)
	if err != nil {
		return err
	}

	recompose(o, fsys, cfg, dir)

	for {
		select {
		case <-sigCh:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevantEvent(event) {
				continue
			}

			// New subdirectories must be watched too; partials can be
			// added after the watch started.
			if event.Op.Has(fsnotify.Create) {
				info, statErr := fsys.Stat(event.Name)
				if statErr == nil && info.IsDir() {
					_ = watchTree(watcher, fsys, event.Name)
				}
			}

			o.Println("change:", event.Name)
			recompose(o, fsys, cfg, dir)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watch: %w", watchErr)
		}
	}
}

// watchTree registers dir and every non-hidden subdirectory.
func watchTree(watcher *fsnotify.Watcher, fsys fs.FS, dir string) error {
	err := watcher.Add(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		err = watchTree(watcher, fsys, filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}

	// Ignore editor swap/backup churn, but manifest edits count.
	base := filepath.Base(event.Name)
	if base == compose.ManifestFileName {
		return true
	}

	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

// recompose runs one composition and reports the outcome. A fresh
// composer per run keeps memoized fragments from going stale.
func recompose(o *IO, fsys fs.FS, cfg compose.Config, dir string) {
	doc, err := compose.New(fsys, cfg.ComposerOptions()).ComposeDir(dir)
	if err != nil {
		o.Println("fail:", err)

		return
	}

	o.Println("ok:", doc.Topic.Slug, fmt.Sprintf("(%d bytes)", len(doc.Output)))
}
