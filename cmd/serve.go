package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serverPort int

// rebuildDebounce batches rapid editor save events into one rebuild.
const rebuildDebounce = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the built site locally and rebuilds on change",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP while watching the content and static directories.
Changes trigger a debounced rebuild so the served artifacts stay fresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuildProcess(appConfig); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer watcher.Close()

		go watchAndRebuild(watcher)

		for _, root := range []string{appConfig.ContentDir, appConfig.StaticDir} {
			if _, err := os.Stat(root); os.IsNotExist(err) {
				log.Debug().Str("dir", root).Msg("directory not found, not watching")
				continue
			}
			if err := watchTree(watcher, root); err != nil {
				return err
			}
		}

		addr := fmt.Sprintf(":%d", serverPort)
		log.Info().
			Str("dir", appConfig.OutputDir).
			Str("url", "http://localhost"+addr).
			Msg("serving site")

		fileServer := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				if _, err := os.Stat(filepath.Join(appConfig.OutputDir, r.URL.Path, "index.html")); os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			// No caching during local development.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fileServer.ServeHTTP(w, r)
		})

		if err := http.ListenAndServe(addr, nil); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	},
}

func watchAndRebuild(watcher *fsnotify.Watcher) {
	var rebuildTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					log.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
				}
			}

			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			rebuildTimer = time.AfterFunc(rebuildDebounce, func() {
				log.Info().Msg("rebuilding site")
				if err := runBuildProcess(appConfig); err != nil {
					log.Error().Err(err).Msg("rebuild failed")
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// watchTree registers root and every directory under it with the
// watcher; fsnotify does not watch recursively on its own.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error walking watch tree")
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				log.Warn().Err(err).Str("dir", path).Msg("failed to watch directory")
			}
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
