package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	assert.Equal(t, ActionAdd, ParseAction("add"))
	assert.Equal(t, ActionRemove, ParseAction("remove"))
	assert.Equal(t, ActionUnknown, ParseAction("change"))
	assert.Equal(t, ActionUnknown, ParseAction(""))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "add", ActionAdd.String())
	assert.Equal(t, "remove", ActionRemove.String())
	assert.Equal(t, "unknown", ActionUnknown.String())
}

func TestMetadataProperty(t *testing.T) {
	m := Metadata{Properties: map[string]string{"ID_INPUT_KEYBOARD": "1"}}
	v, ok := m.Property("ID_INPUT_KEYBOARD")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = Metadata{}.Property("ID_INPUT_KEYBOARD")
	assert.False(t, ok)
}
