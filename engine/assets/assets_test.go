package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

const shaderText = "#type vertex\nvoid main() {}\n#type fragment\nvoid main() {}\n"

func newManager(t *testing.T) (*AssetManager, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "quad.glsl"), []byte(shaderText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.toml"), []byte("title = \"x\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	t.Cleanup(func() { _ = am.Close() })
	return am, dir
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, metadata.ResourceTypeShader, determineAssetType("a/b.glsl"))
	assert.Equal(t, metadata.ResourceTypeShader, determineAssetType("b.shader"))
	assert.Equal(t, metadata.ResourceTypeImage, determineAssetType("b.PNG"))
	assert.Equal(t, metadata.ResourceTypeImage, determineAssetType("b.webp"))
	assert.Equal(t, metadata.ResourceTypeConfig, determineAssetType("b.yml"))
	assert.Equal(t, metadata.ResourceTypeNone, determineAssetType("b.txt"))
}

func TestInitializeIndexesKnownFiles(t *testing.T) {
	am, _ := newManager(t)
	assert.Equal(t, []string{"game.toml", "shaders/quad.glsl"}, am.Assets())

	info, ok := am.Info("shaders/quad.glsl")
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeShader, info.Type)
}

func TestLoadAsset(t *testing.T) {
	am, _ := newManager(t)

	res, err := am.LoadAsset("shaders/quad.glsl", nil)
	require.NoError(t, err)
	assert.Equal(t, "quad", res.Name)
	info, _ := am.Info("shaders/quad.glsl")
	assert.False(t, info.LastLoaded.IsZero())
	assert.NoError(t, am.UnloadAsset(res))

	_, err = am.LoadAsset("missing.png", nil)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestLoadAssetWithoutLoader(t *testing.T) {
	am, _ := newManager(t)
	delete(am.loaders, metadata.ResourceTypeConfig)

	_, err := am.LoadAsset("game.toml", nil)
	assert.ErrorIs(t, err, core.ErrNoLoader)
}

func TestChangesAreDispatchedOnDemand(t *testing.T) {
	am, dir := newManager(t)

	var got []AssetEvent
	am.Changed.ConnectFunc(func(e AssetEvent) { got = append(got, e) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "circle.glsl"), []byte(shaderText), 0o644))

	assert.Eventually(t, func() bool {
		am.DispatchChanges()
		for _, e := range got {
			if e.Path == "shaders/circle.glsl" {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, am.Assets(), "shaders/circle.glsl")

	require.NoError(t, os.Remove(filepath.Join(dir, "game.toml")))
	assert.Eventually(t, func() bool {
		am.DispatchChanges()
		for _, e := range got {
			if e.Path == "game.toml" && e.Kind == AssetRemoved {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)
	_, ok := am.Info("game.toml")
	assert.False(t, ok)
}

func TestQueueCoalescesDuplicates(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	defer am.Close()

	e := AssetEvent{Path: "a.png", Type: metadata.ResourceTypeImage, Kind: AssetModified}
	am.queue(e)
	am.queue(e)
	assert.Equal(t, 1, am.DispatchChanges())
	assert.Equal(t, 0, am.DispatchChanges())
}

func TestCloseIsIdempotent(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	assert.NoError(t, am.Close())
	assert.NoError(t, am.Close())
	assert.Error(t, am.Initialize(t.TempDir()))
}

func TestLoadAssetAsync(t *testing.T) {
	am, _ := newManager(t)

	// inline without a job system
	var inline *metadata.Resource
	require.NoError(t, am.LoadAssetAsync("shaders/quad.glsl", nil, func(res *metadata.Resource, err error) {
		require.NoError(t, err)
		inline = res
	}))
	require.NotNil(t, inline)

	js, err := core.NewJobSystem(1, 4)
	require.NoError(t, err)
	defer js.Shutdown()
	am.UseJobSystem(js)

	var loaded *metadata.Resource
	require.NoError(t, am.LoadAssetAsync("shaders/quad.glsl", nil, func(res *metadata.Resource, err error) {
		require.NoError(t, err)
		loaded = res
	}))
	assert.Nil(t, loaded)
	require.Eventually(t, func() bool { return js.Update() == 1 }, time.Second, time.Millisecond)
	require.NotNil(t, loaded)
	assert.Equal(t, "quad", loaded.Name)

	err = am.LoadAssetAsync("missing.png", nil, func(*metadata.Resource, error) {})
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}
