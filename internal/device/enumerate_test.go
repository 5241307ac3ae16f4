package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

func makeDevInput(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "by-id"), 0o755))
	return dir
}

func TestListIdentifiers(t *testing.T) {
	dir := makeDevInput(t, "event0", "event1", "mice", "mouse0", "js0")

	names, err := ListIdentifiers(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"event0", "event1"}, names)
}

func TestListIdentifiersLexicalOrder(t *testing.T) {
	dir := makeDevInput(t, "event2", "event10", "event1")

	names, err := ListIdentifiers(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"event1", "event10", "event2"}, names)
}

func TestListIdentifiersMissingDir(t *testing.T) {
	_, err := ListIdentifiers(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestEnumerateSkipsUnopenable(t *testing.T) {
	dir := makeDevInput(t, "event0", "event1", "event2")
	o := &Opener{
		Inspector: fakeInspector{
			"event0": {Name: "Power Button"},
			"event2": {Name: "USB Keyboard", Properties: map[string]string{"ID_INPUT_KEYBOARD": "1"}},
		},
		OpenNode: func(string) (Handle, error) { return &fakeHandle{}, nil },
		DevDir:   dir,
	}

	devices, err := Enumerate(dir, o)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "event0", devices[0].Sysname())
	assert.Equal(t, "event2", devices[1].Sysname())
	assert.Equal(t, types.Metadata{
		Sysname:    "event2",
		Name:       "USB Keyboard",
		Devnode:    filepath.Join(dir, "event2"),
		Properties: map[string]string{"ID_INPUT_KEYBOARD": "1"},
	}, devices[1].Metadata())
}
