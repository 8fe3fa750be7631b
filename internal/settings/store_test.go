package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicesPath = "ServiceMonitor/Services"

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.BeginReadArray(servicesPath))
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, "  \n")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.BeginReadArray(servicesPath))
}

func TestOpen_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, "not valid json")

	_, err := Open(path)
	assert.Error(t, err)
}

func TestOpen_NotAnObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, "[1, 2, 3]")

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestStore_ReadArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"ServiceMonitor": {"Services": [
		{"Id": 1, "Name": "web", "Timeout": 30},
		{"Id": "2", "Timeout": -5},
		"garbage"
	]}}`)

	s, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, 3, s.BeginReadArray(servicesPath))

	s.SetArrayIndex(0)
	assert.Equal(t, 1, s.Value("Id").Int())
	assert.Equal(t, "web", s.Value("Name").String())
	assert.Equal(t, uint(30), s.Value("Timeout").Uint())

	s.SetArrayIndex(1)
	assert.Equal(t, 2, s.Value("Id").Int())
	assert.True(t, s.Value("Name").IsNil())
	assert.Equal(t, "", s.Value("Name").String())
	assert.Equal(t, uint(0), s.Value("Timeout").Uint())

	s.SetArrayIndex(2)
	assert.True(t, s.Value("Id").IsNil())

	s.SetArrayIndex(7)
	assert.True(t, s.Value("Id").IsNil())
}

func TestStore_ReadArray_NotAnArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"ServiceMonitor": {"Services": {"Id": 1}}}`)

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.BeginReadArray(servicesPath))
}

func TestStore_WriteArray_TruncatesSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"ServiceMonitor": {"Services": [{"Id": 1}, {"Id": 2}, {"Id": 3}]}}`)

	s, err := Open(path)
	require.NoError(t, err)

	s.BeginWriteArray(servicesPath)
	s.SetArrayIndex(0)
	s.SetValue("Id", 9)
	s.EndArray()
	require.NoError(t, s.Sync())

	reopened, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.BeginReadArray(servicesPath))
	reopened.SetArrayIndex(0)
	assert.Equal(t, 9, reopened.Value("Id").Int())
}

func TestStore_WriteArray_PreservesSiblings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"Network": {"Host": "pi"}, "ServiceMonitor": {"Enabled": true, "Services": []}}`)

	s, err := Open(path)
	require.NoError(t, err)

	s.BeginWriteArray(servicesPath)
	s.SetArrayIndex(0)
	s.SetValue("Name", "web")
	require.NoError(t, s.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "pi", doc["Network"].(map[string]any)["Host"])
	monitor := doc["ServiceMonitor"].(map[string]any)
	assert.Equal(t, true, monitor["Enabled"])
	assert.Len(t, monitor["Services"], 1)
}

func TestStore_LargeIntegers_Exact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"Other": {"Serial": 9007199254740993}, "ServiceMonitor": {"Services": [
		{"Id": 9007199254740993, "Timeout": 18446744073709551615},
		{"Id": 1.5e3, "Timeout": 2.0}
	]}}`)

	s, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, 2, s.BeginReadArray(servicesPath))
	s.SetArrayIndex(0)
	assert.Equal(t, 9007199254740993, s.Value("Id").Int())
	assert.Equal(t, uint(18446744073709551615), s.Value("Timeout").Uint())
	s.SetArrayIndex(1)
	assert.Equal(t, 1500, s.Value("Id").Int())
	assert.Equal(t, uint(2), s.Value("Timeout").Uint())
	s.EndArray()

	require.NoError(t, s.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Serial": 9007199254740993`)
	assert.Contains(t, string(data), `"Id": 9007199254740993`)
}

func TestOpen_TrailingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"a": 1} {"b": 2}`)

	_, err := Open(path)
	assert.Error(t, err)
}

func TestStore_SetValue_Root(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	s.SetValue("A/B/C", "deep")
	assert.Equal(t, "deep", s.Value("A/B/C").String())
	assert.True(t, s.Value("A/X").IsNil())
}

func TestStore_SetArrayIndex_OutsideArray(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	s.SetArrayIndex(0)
	s.SetValue("Id", 1)
	assert.Equal(t, 1, s.Value("Id").Int())
}

func TestStore_Sync_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")

	s, err := Open(path)
	require.NoError(t, err)
	s.SetValue("Key", "value")
	require.NoError(t, s.Sync())

	_, err = os.Stat(path)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_Sync_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Open(path)
	require.NoError(t, err)
	s.BeginWriteArray(servicesPath)
	for i, name := range []string{"web", "db"} {
		s.SetArrayIndex(i)
		s.SetValue("Id", i+1)
		s.SetValue("Name", name)
		s.SetValue("Timeout", uint(30))
	}
	require.NoError(t, s.Sync())
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, s.Sync())
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
