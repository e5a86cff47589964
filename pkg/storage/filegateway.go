package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"scrib/pkg/utils"
)

// FileGateway stores each key as <dataDir>/<key>.json
type FileGateway struct {
	dataDir      string
	mutex        sync.RWMutex
	watcher      *fsnotify.Watcher
	fileModTimes map[string]time.Time
	onChange     []func(key string)
	closeOnce    sync.Once
}

// NewFileGateway creates the data directory if needed and returns a gateway over it
func NewFileGateway(dataDir string) (*FileGateway, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("empty data directory")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileGateway{
		dataDir:      dataDir,
		fileModTimes: make(map[string]time.Time),
	}, nil
}

// DataDir returns the data directory path
func (g *FileGateway) DataDir() string {
	return g.dataDir
}

func (g *FileGateway) path(key string) (string, error) {
	if !utils.IsValidKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(g.dataDir, key+".json"), nil
}

// Get reads the file stored for key
func (g *FileGateway) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := g.path(key)
	if err != nil {
		return "", false, err
	}

	g.mutex.RLock()
	data, err := os.ReadFile(path)
	g.mutex.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set atomically replaces the file stored for key
func (g *FileGateway) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := g.path(key)
	if err != nil {
		return err
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.writeLocked(path, value)
}

// SetMany writes every entry; a failure part way leaves earlier keys written
func (g *FileGateway) SetMany(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		path, err := g.path(e.Key)
		if err != nil {
			return err
		}
		paths[i] = path
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()
	for i, e := range entries {
		if err := g.writeLocked(paths[i], e.Value); err != nil {
			return fmt.Errorf("write %s: %w", e.Key, err)
		}
	}
	return nil
}

func (g *FileGateway) writeLocked(path, value string) error {
	tmp, err := os.CreateTemp(g.dataDir, "write-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Remember our own write so the watcher does not report it
	if fileInfo, err := os.Stat(path); err == nil {
		g.fileModTimes[path] = fileInfo.ModTime()
	}
	return nil
}

// Remove deletes the file stored for key; removing a missing key is not an error
func (g *FileGateway) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := g.path(key)
	if err != nil {
		return err
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.fileModTimes, path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Watch reports keys whose files are changed by another process.
// Callbacks run on the watcher goroutine.
func (g *FileGateway) Watch(fn func(key string)) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.watcher == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		if err := watcher.Add(g.dataDir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch data directory: %w", err)
		}
		g.watcher = watcher
		go g.watchLoop(watcher)
	}

	g.onChange = append(g.onChange, fn)
	return nil
}

func (g *FileGateway) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			key, valid := utils.KeyFromFilename(filepath.Base(event.Name))
			if !valid {
				continue
			}

			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if g.isOwnWrite(event.Name) {
					continue
				}
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				g.mutex.Lock()
				delete(g.fileModTimes, event.Name)
				g.mutex.Unlock()
			default:
				continue
			}

			log.Printf("Storage key %s changed externally (%s)", key, event.Op)
			g.notify(key)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// isOwnWrite records the current modification time and reports whether it
// was already known from a write through this gateway.
func (g *FileGateway) isOwnWrite(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()
	lastModTime, exists := g.fileModTimes[path]
	currentModTime := fileInfo.ModTime()
	if exists && !currentModTime.After(lastModTime) {
		return true
	}
	g.fileModTimes[path] = currentModTime
	return false
}

func (g *FileGateway) notify(key string) {
	g.mutex.RLock()
	listeners := append([]func(string){}, g.onChange...)
	g.mutex.RUnlock()
	for _, fn := range listeners {
		fn(key)
	}
}

// Close stops the file watcher
func (g *FileGateway) Close() error {
	var err error
	g.closeOnce.Do(func() {
		g.mutex.Lock()
		watcher := g.watcher
		g.mutex.Unlock()
		if watcher != nil {
			err = watcher.Close()
		}
	})
	return err
}

var (
	_ Gateway     = (*FileGateway)(nil)
	_ BatchSetter = (*FileGateway)(nil)
)
