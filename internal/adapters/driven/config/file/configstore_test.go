package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".onboard", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nestedPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("chat.max_tokens", 300))
	require.NoError(t, store.Set("chat.temperature", 0.7))

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, 300, store.GetInt("chat.max_tokens"))
	assert.InDelta(t, 0.7, store.GetFloat("chat.temperature"), 1e-9)

	// Mismatched types and missing keys read as zero values.
	assert.Empty(t, store.GetString("chat.max_tokens"))
	assert.Zero(t, store.GetInt("llm.provider"))
	assert.Zero(t, store.GetFloat("llm.provider"))
	assert.Zero(t, store.GetFloat("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetFloat_WidensIntegers(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[chat]\ntemperature = 1\n"), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, store.GetFloat("chat.temperature"), 1e-9)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "gpt-3.5-turbo"))
	require.NoError(t, store.Set("chat.history_window", 10))
	require.NoError(t, store.Set("chat.temperature", 0.25))
	require.NoError(t, store.Set("assistant.role_title", "New Employee"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo", reopened.GetString("llm.model"))
	assert.Equal(t, 10, reopened.GetInt("chat.history_window"))
	assert.InDelta(t, 0.25, reopened.GetFloat("chat.temperature"), 1e-9)
	assert.Equal(t, "New Employee", reopened.GetString("assistant.role_title"))
}

func TestConfigStore_Save_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("chat.max_tokens", 300))
	require.NoError(t, store.Set("references.dir", "/srv/docs"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "[llm]")
	assert.Contains(t, content, "[chat]")
	assert.Contains(t, content, "[references]")
	assert.NotContains(t, content, "'llm.provider'")
	assert.NotContains(t, content, `"llm.provider"`)
}

func TestNestKeys(t *testing.T) {
	got := nestKeys(map[string]any{
		"llm.provider":    "openai",
		"llm.model":       "gpt-4o",
		"chat.max_tokens": 300,
		"theme":           "dark",
		"theme.accent":    "blue",
	})

	assert.Equal(t, map[string]any{
		"llm":          map[string]any{"provider": "openai", "model": "gpt-4o"},
		"chat":         map[string]any{"max_tokens": 300},
		"theme":        "dark",
		"theme.accent": "blue",
	}, got)
}

func TestConfigStore_Load_FlattensTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[llm]\nprovider = \"ollama\"\nmodel = \"llama3.2\"\n\n[chat]\nhistory_window = 6\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
	assert.Equal(t, 6, store.GetInt("chat.history_window"))
}

func TestConfigStore_Load_CommentOnlyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# nothing yet\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("llm.provider")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.provider", "openai"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.provider", "openai"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("llm.model", "gpt-4o"))
	assert.Error(t, store.Save())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("broken", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("chat.max_tokens", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("chat.max_tokens")
		}()
	}
	wg.Wait()

	_, ok := store.Get("chat.max_tokens")
	assert.True(t, ok)
}
