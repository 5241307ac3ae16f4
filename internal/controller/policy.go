package controller

import (
	"slices"

	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// Op はコントローラーが実行する操作の種類
type Op int

const (
	// OpClose は外部キーボードのハンドルを集合から外して解放する
	OpClose Op = iota
	// OpAttach は新しく開いたハンドルを外部キーボードの集合に登録する
	OpAttach
	// OpGrab は内蔵キーボードを専有する
	OpGrab
	// OpUngrab は内蔵キーボードの専有を解除する
	OpUngrab
)

func (o Op) String() string {
	switch o {
	case OpClose:
		return "close"
	case OpAttach:
		return "attach"
	case OpGrab:
		return "grab"
	case OpUngrab:
		return "ungrab"
	default:
		return "unknown"
	}
}

// Effect は状態遷移に伴って発行する操作
type Effect struct {
	Op      Op
	Sysname string
}

// State はキーボード集合のsysname
// どちらもソート済みで重複を含まない
type State struct {
	Platform []string
	External []string
}

// Initial は起動直後に発行する操作を返す
// 外部キーボードが接続済みなら内蔵キーボードをすべて専有する
func Initial(st State) []Effect {
	if len(st.External) == 0 {
		return nil
	}
	return all(OpGrab, st.Platform)
}

// Transition はイベントを適用した新しい状態と発行する操作を返す
// 専有・解除は差分ではなく内蔵キーボード全体に対して発行する
func Transition(st State, ev types.HotplugEvent) (State, []Effect) {
	switch ev.Action {
	case types.ActionAdd:
		var effects []Effect
		i, found := slices.BinarySearch(st.External, ev.Sysname)
		next := State{Platform: st.Platform, External: st.External}
		if found {
			// 同じsysnameの再接続は古いハンドルを捨てて新しく登録し直す
			effects = append(effects, Effect{Op: OpClose, Sysname: ev.Sysname})
		} else {
			next.External = slices.Insert(slices.Clone(st.External), i, ev.Sysname)
		}
		effects = append(effects, Effect{Op: OpAttach, Sysname: ev.Sysname})
		effects = append(effects, all(OpGrab, next.Platform)...)
		return next, effects

	case types.ActionRemove:
		i, found := slices.BinarySearch(st.External, ev.Sysname)
		if !found {
			return st, nil
		}
		next := State{
			Platform: st.Platform,
			External: slices.Delete(slices.Clone(st.External), i, i+1),
		}
		effects := []Effect{{Op: OpClose, Sysname: ev.Sysname}}
		if len(next.External) == 0 {
			effects = append(effects, all(OpUngrab, next.Platform)...)
		}
		return next, effects

	default:
		return st, nil
	}
}

func all(op Op, sysnames []string) []Effect {
	effects := make([]Effect, 0, len(sysnames))
	for _, s := range sysnames {
		effects = append(effects, Effect{Op: op, Sysname: s})
	}
	return effects
}
