package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestNilEngineIsSafe(t *testing.T) {
	var e *Engine
	e.OnJoin(PlayerContext{ID: 1})
	e.OnLeave(PlayerContext{ID: 1})
	assert.False(t, e.OnChat(PlayerContext{ID: 1}, "hi"))
	e.Close()
}

func TestMissingScriptDirYieldsNoHooks(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.False(t, e.OnChat(PlayerContext{}, "hi"))
}

func TestOnJoinHookSeesPlayer(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hooks.lua", `
joined = nil
function on_join(player)
  joined = player.name .. ":" .. player.level
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	e.OnJoin(PlayerContext{ID: 4, Name: "alice", Level: 12})

	e.mu.Lock()
	got := e.vm.GetGlobal("joined").String()
	e.mu.Unlock()
	assert.Equal(t, "alice:12", got)
}

func TestOnChatConsumesOnTrue(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "filter.lua", `
function on_chat(player, text)
  return text == "secret"
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.True(t, e.OnChat(PlayerContext{}, "secret"))
	assert.False(t, e.OnChat(PlayerContext{}, "hello"))
}

func TestHooksDirIsLoaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "hooks"), 0o755))
	writeScript(t, filepath.Join(dir, "hooks"), "chat.lua", `
function on_chat(player, text)
  return true
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.True(t, e.OnChat(PlayerContext{}, "anything"))
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", "function (")
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
