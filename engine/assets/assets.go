package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

type Loader interface {
	Load(path string, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type ChangeKind int

const (
	AssetCreated ChangeKind = iota
	AssetModified
	AssetRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case AssetCreated:
		return "created"
	case AssetModified:
		return "modified"
	case AssetRemoved:
		return "removed"
	}
	return "unknown"
}

// AssetEvent describes a change to a watched asset. Path is relative to the
// assets root and uses forward slashes.
type AssetEvent struct {
	Path string
	Type metadata.ResourceType
	Kind ChangeKind
}

// AssetManager indexes an assets directory, loads files through the loader
// registered for their type and watches the tree for changes. Watch events
// are queued by a background goroutine and delivered on Changed by
// DispatchChanges, which the owner calls from the main loop.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex   sync.RWMutex
	pending []AssetEvent

	Changed core.Signal[AssetEvent]

	jobs *core.JobSystem

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	running  bool
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.RegisterLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.RegisterLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.RegisterLoader(metadata.ResourceTypeConfig, &loaders.ConfigLoader{})
	return am, nil
}

// Initialize indexes every known asset under assetsDir and starts watching it.
func (am *AssetManager) Initialize(assetsDir string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	if err := am.watchRecursive(root, false); err != nil {
		return err
	}
	am.running = true
	go am.start()

	core.LogInfo("asset manager watching %s (%d assets)", root, am.Len())
	return nil
}

// RegisterLoader replaces the loader used for assetType.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

func (am *AssetManager) Root() string {
	return am.root
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Assets lists the indexed asset paths in lexical order.
func (am *AssetManager) Assets() []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := make([]string, 0, len(am.assets))
	for p := range am.assets {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.ToSlash(name)]
	return info, ok
}

// LoadAsset loads the asset at name, a path relative to the assets root.
func (am *AssetManager) LoadAsset(name string, params interface{}) (*metadata.Resource, error) {
	key := filepath.ToSlash(name)

	am.mutex.Lock()
	asset, exists := am.assets[key]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	asset.LastLoaded = time.Now()
	am.assets[key] = asset
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", core.ErrNoLoader, asset.Type)
	}
	return loader.Load(filepath.Join(am.root, filepath.FromSlash(key)), params)
}

// UseJobSystem lets LoadAssetAsync decode on js's workers. Without one,
// LoadAssetAsync loads inline.
func (am *AssetManager) UseJobSystem(js *core.JobSystem) {
	am.jobs = js
}

// LoadAssetAsync loads name off the main thread and calls done with the
// result from the job system's Update.
func (am *AssetManager) LoadAssetAsync(name string, params interface{}, done func(*metadata.Resource, error)) error {
	if _, ok := am.Info(name); !ok {
		return fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	if am.jobs == nil {
		done(am.LoadAsset(name, params))
		return nil
	}
	return am.jobs.Submit(core.JobTask{
		Name: "load " + name,
		Run: func() (interface{}, error) {
			return am.LoadAsset(name, params)
		},
		OnComplete: func(result interface{}) { done(result.(*metadata.Resource), nil) },
		OnFailure:  func(err error) { done(nil, err) },
	})
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	if res == nil {
		return nil
	}
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrNoLoader, res.Type)
	}
	return loader.Unload(res)
}

// DispatchChanges emits every queued change on Changed and returns how many
// were delivered.
func (am *AssetManager) DispatchChanges() int {
	am.mutex.Lock()
	pending := am.pending
	am.pending = nil
	am.mutex.Unlock()

	for _, e := range pending {
		am.Changed.Emit(e)
	}
	return len(pending)
}

// Close stops the watcher. It is safe to call more than once.
func (am *AssetManager) Close() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	if !am.running {
		return am.fsnotify.Close()
	}
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("watching %s: %s", e.Name, err.Error())
			}
		}
		return
	}

	switch {
	case e.Has(fsnotify.Create):
		am.handleFileEvent(e.Name, AssetCreated)
	case e.Has(fsnotify.Write):
		am.handleFileEvent(e.Name, AssetModified)
	case e.Has(fsnotify.Remove), e.Has(fsnotify.Rename):
		am.removeAsset(e.Name)
		// the path may have been a directory; fsnotify drops its own watch
		_ = am.fsnotify.Remove(e.Name)
	}
}

// watchRecursive adds or removes every directory under path and indexes the
// files found on the way.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		if !unWatch {
			am.indexFile(walkPath)
		}
		return nil
	})
}

func (am *AssetManager) relative(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (am *AssetManager) indexFile(path string) (AssetInfo, bool) {
	rel, ok := am.relative(path)
	if !ok {
		return AssetInfo{}, false
	}
	assetType := determineAssetType(rel)
	if assetType == metadata.ResourceTypeNone {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := AssetInfo{Path: rel, Type: assetType}
	am.assets[rel] = info
	return info, true
}

func (am *AssetManager) handleFileEvent(path string, kind ChangeKind) {
	info, ok := am.indexFile(path)
	if !ok {
		return
	}
	am.queue(AssetEvent{Path: info.Path, Type: info.Type, Kind: kind})
}

func (am *AssetManager) removeAsset(path string) {
	rel, ok := am.relative(path)
	if !ok {
		return
	}
	am.mutex.Lock()
	info, exists := am.assets[rel]
	delete(am.assets, rel)
	am.mutex.Unlock()

	if exists {
		am.queue(AssetEvent{Path: rel, Type: info.Type, Kind: AssetRemoved})
	}
}

func (am *AssetManager) queue(e AssetEvent) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	// editors often write a file several times in a row
	for _, p := range am.pending {
		if p == e {
			return
		}
	}
	am.pending = append(am.pending, e)
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glsl", ".shader":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	case ".toml", ".yaml", ".yml":
		return metadata.ResourceTypeConfig
	default:
		return metadata.ResourceTypeNone
	}
}
