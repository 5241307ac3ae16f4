package types

import "github.com/yingmanwumen/no-internal-kbd/internal/consts"

// Action はhotplugイベントの種類を表す
type Action int

const (
	ActionUnknown Action = iota
	ActionAdd
	ActionRemove
)

// ParseAction はudevのアクション文字列を Action に変換する
func ParseAction(s string) Action {
	switch s {
	case consts.ActionAdd:
		return ActionAdd
	case consts.ActionRemove:
		return ActionRemove
	default:
		return ActionUnknown
	}
}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return consts.ActionAdd
	case ActionRemove:
		return consts.ActionRemove
	default:
		return "unknown"
	}
}

// HotplugEvent はキーボードの接続・切断イベント
type HotplugEvent struct {
	Action  Action
	Sysname string
}
