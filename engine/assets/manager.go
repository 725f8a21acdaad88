package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/heritage/engine/core"
)

type AssetInfo struct {
	Slug       string
	Path       string
	ModifiedAt time.Time
}

// AssetManager indexes the model files under a directory and, once watching,
// fires core.EVENT_CODE_ASSET_CHANGED on its bus when one of them is created
// or rewritten.
type AssetManager struct {
	bus    *core.EventBus
	assets map[string]AssetInfo
	mutex  sync.RWMutex

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	isClosed bool
}

func NewAssetManager(bus *core.EventBus) *AssetManager {
	return &AssetManager{
		bus:    bus,
		assets: make(map[string]AssetInfo),
	}
}

// Initialize indexes modelsDir. With watch set it also starts the watcher
// goroutine; Shutdown stops it.
func (am *AssetManager) Initialize(modelsDir string, watch bool) error {
	if err := am.scan(modelsDir); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	if _, err := os.Stat(modelsDir); err != nil {
		// nothing to watch
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := am.watchRecursive(w, modelsDir); err != nil {
		w.Close()
		return err
	}
	am.fsnotify = w
	am.done = make(chan struct{})
	am.wg.Add(1)
	go am.start()
	return nil
}

func (am *AssetManager) Shutdown() error {
	if am.fsnotify == nil || am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	am.wg.Wait()
	return am.fsnotify.Close()
}

// Lookup returns the model indexed under slug.
func (am *AssetManager) Lookup(slug string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	a, ok := am.assets[slug]
	return a, ok
}

// List returns every indexed model sorted by slug.
func (am *AssetManager) List() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					if err := am.watchRecursive(am.fsnotify, e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
					continue
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.handleFileEvent(e.Name); ok {
					am.bus.Fire(core.EventContext{
						Type: core.EVENT_CODE_ASSET_CHANGED,
						Data: &core.AssetChangedEvent{Slug: info.Slug, Path: info.Path},
					})
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) scan(dir string) error {
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			am.handleFileEvent(p)
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("models directory %s does not exist", dir)
		return nil
	}
	return err
}

// watchRecursive adds dir and all directories below it to the watch list.
func (am *AssetManager) watchRecursive(w *fsnotify.Watcher, dir string) error {
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	if !isModel(path) {
		return AssetInfo{}, false
	}
	info := AssetInfo{
		Slug:       SlugFor(path),
		Path:       path,
		ModifiedAt: time.Now(),
	}
	am.mutex.Lock()
	am.assets[info.Slug] = info
	am.mutex.Unlock()
	return info, true
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	slug := SlugFor(path)
	if a, ok := am.assets[slug]; ok && a.Path == path {
		delete(am.assets, slug)
	}
}

// SlugFor is the file name without extension, lower-cased.
func SlugFor(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func isModel(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".obj")
}
