package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		action   string
		sysname  string
		keyboard bool
		want     types.HotplugEvent
		ok       bool
	}{
		{"add", "event5", true, types.HotplugEvent{Action: types.ActionAdd, Sysname: "event5"}, true},
		{"remove", "event5", true, types.HotplugEvent{Action: types.ActionRemove, Sysname: "event5"}, true},
		{"change", "event5", true, types.HotplugEvent{}, false},
		{"bind", "event5", true, types.HotplugEvent{}, false},
		{"", "event5", true, types.HotplugEvent{}, false},
		{"add", "input12", true, types.HotplugEvent{}, false},
		{"add", "event5", false, types.HotplugEvent{}, false},
	}
	for _, tt := range tests {
		got, ok := Filter(tt.action, tt.sysname, tt.keyboard)
		assert.Equal(t, tt.ok, ok, "%s %s", tt.action, tt.sysname)
		assert.Equal(t, tt.want, got, "%s %s", tt.action, tt.sysname)
	}
}
