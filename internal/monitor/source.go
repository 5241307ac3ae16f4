package monitor

import (
	"context"

	"github.com/yingmanwumen/no-internal-kbd/internal/device"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// QueueSize はソースからコントローラーへのイベントキューの長さ
const QueueSize = 32

// Source はキーボードのhotplugイベントを配信する
// 返されたチャネルは ctx の終了またはソースの停止で閉じられる
type Source interface {
	Events(ctx context.Context) (<-chan types.HotplugEvent, error)
}

// Filter はイベントノードかつキーボードの add / remove イベントだけを通す
func Filter(action, sysname string, keyboard bool) (types.HotplugEvent, bool) {
	if !device.IsEventNode(sysname) || !keyboard {
		return types.HotplugEvent{}, false
	}
	a := types.ParseAction(action)
	if a == types.ActionUnknown {
		return types.HotplugEvent{}, false
	}
	return types.HotplugEvent{Action: a, Sysname: sysname}, true
}
