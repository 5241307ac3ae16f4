package controller

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yingmanwumen/no-internal-kbd/internal/device"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// ErrSourceClosed はhotplugイベントのチャネルが閉じられたことを表す
var ErrSourceClosed = errors.New("hotplugイベントソースが停止しました")

// Controller は外部キーボードの有無に合わせて内蔵キーボードを専有・解除する
//
// platform と external は Run を実行するゴルーチンからのみ変更される。
// 他のゴルーチンからは Snapshot で公開済みの状態だけを参照できる。
type Controller struct {
	platform map[string]*device.Device
	external map[string]*device.Device
	opener   device.DeviceOpener
	snapshot atomic.Pointer[Snapshot]
	now      func() time.Time
}

// New は新しい Controller を作成する
func New(opener device.DeviceOpener) *Controller {
	c := &Controller{
		platform: make(map[string]*device.Device),
		external: make(map[string]*device.Device),
		opener:   opener,
		now:      time.Now,
	}
	c.snapshot.Store(&Snapshot{})
	return c
}

// Initialize は列挙済みのデバイスをキーボード集合に振り分け、初期状態の専有を行う
// キーボード以外のデバイスはここで解放する
func (c *Controller) Initialize(devices []*device.Device) {
	for _, d := range devices {
		fields := log.Fields{"sysname": d.Sysname(), "name": d.Name()}
		switch {
		case !d.IsKeyboard():
			closeDevice(d)
		case d.IsPlatform():
			log.WithFields(fields).Info("内蔵キーボードを検出しました")
			c.replace(c.platform, d)
		default:
			log.WithFields(fields).Info("外部キーボードを検出しました")
			c.replace(c.external, d)
		}
	}

	c.apply(Initial(c.State()), nil)
	c.publish()
}

// State は現在のキーボード集合を返す
func (c *Controller) State() State {
	return State{
		Platform: slices.Sorted(maps.Keys(c.platform)),
		External: slices.Sorted(maps.Keys(c.external)),
	}
}

// HandleEvent は1つのhotplugイベントを処理する
func (c *Controller) HandleEvent(ev types.HotplugEvent) {
	entry := log.WithFields(log.Fields{"sysname": ev.Sysname, "action": ev.Action.String()})

	var attached *device.Device
	if ev.Action == types.ActionAdd {
		d, err := c.opener.Open(ev.Sysname)
		if err != nil {
			entry.Warnf("追加されたデバイスを開けませんでした: %v", err)
			return
		}
		entry.WithField("name", d.Name()).Info("外部キーボードが接続されました")
		attached = d
	}

	next, effects := Transition(c.State(), ev)
	failed := c.apply(effects, attached)

	if ev.Action == types.ActionAdd && len(next.External) == 1 && failed == 0 {
		entry.Info("外部キーボードが接続されたため内蔵キーボードを無効にしました")
	}
	if ev.Action == types.ActionRemove && len(effects) > 0 {
		entry.Info("外部キーボードが切断されました")
		if len(next.External) == 0 && failed == 0 {
			entry.Info("外部キーボードがなくなったため内蔵キーボードを有効にしました")
		}
	}
}

// Run はhotplugイベントを処理し続ける
// 起床ごとにキュー済みのイベントをすべて処理してから状態を公開する
func (c *Controller) Run(ctx context.Context, events <-chan types.HotplugEvent) error {
	log.Info("hotplugイベントの監視を開始します")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrSourceClosed
			}
			c.HandleEvent(ev)
			open := c.drain(events)
			c.publish()
			if !open {
				return ErrSourceClosed
			}
		}
	}
}

// drain はブロックせずに取り出せるイベントをすべて処理する
// チャネルが閉じられていれば false を返す
func (c *Controller) drain(events <-chan types.HotplugEvent) bool {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.HandleEvent(ev)
		default:
			return true
		}
	}
}

// Close はすべてのデバイスを解放する
func (c *Controller) Close() {
	for _, set := range []map[string]*device.Device{c.external, c.platform} {
		for name, d := range set {
			closeDevice(d)
			delete(set, name)
		}
	}
	c.publish()
}

// Snapshot は最後に公開された状態を返す
// 任意のゴルーチンから呼び出せる
func (c *Controller) Snapshot() Snapshot {
	return *c.snapshot.Load()
}

// apply は操作を順に実行し、専有・解除に失敗した数を返す
// 1台の専有・解除に失敗しても残りのキーボードの処理は続ける
func (c *Controller) apply(effects []Effect, attached *device.Device) int {
	failed := 0
	for _, e := range effects {
		switch e.Op {
		case OpClose:
			if d, ok := c.external[e.Sysname]; ok {
				delete(c.external, e.Sysname)
				closeDevice(d)
			}
		case OpAttach:
			if attached != nil {
				c.external[e.Sysname] = attached
			}
		case OpGrab:
			if d, ok := c.platform[e.Sysname]; ok {
				if err := d.Grab(); err != nil {
					log.WithField("sysname", e.Sysname).Warnf("内蔵キーボードの無効化に失敗しました: %v", err)
					failed++
				}
			}
		case OpUngrab:
			if d, ok := c.platform[e.Sysname]; ok {
				if err := d.Ungrab(); err != nil {
					log.WithField("sysname", e.Sysname).Warnf("内蔵キーボードの有効化に失敗しました: %v", err)
					failed++
				}
			}
		}
	}
	return failed
}

// replace は同じsysnameの古いデバイスを解放してから登録する
func (c *Controller) replace(set map[string]*device.Device, d *device.Device) {
	if old, ok := set[d.Sysname()]; ok && old != d {
		closeDevice(old)
	}
	set[d.Sysname()] = d
}

func (c *Controller) publish() {
	s := &Snapshot{
		Platform:  keyboards(c.platform),
		External:  keyboards(c.external),
		UpdatedAt: c.now(),
	}
	c.snapshot.Store(s)
}

func keyboards(set map[string]*device.Device) []Keyboard {
	out := make([]Keyboard, 0, len(set))
	for _, name := range slices.Sorted(maps.Keys(set)) {
		d := set[name]
		out = append(out, Keyboard{Sysname: name, Name: d.Name(), Grabbed: d.Grabbed()})
	}
	return out
}

// closeDevice は切断済みのデバイスでも失敗しうるため、エラーはログに残すだけにする
func closeDevice(d *device.Device) {
	if err := d.Close(); err != nil {
		log.WithField("sysname", d.Sysname()).Debugf("デバイスの解放に失敗しました: %v", err)
	}
}
