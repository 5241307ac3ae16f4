package uevent

import (
	"context"
	"fmt"

	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
	"github.com/yingmanwumen/no-internal-kbd/internal/device"
	"github.com/yingmanwumen/no-internal-kbd/internal/monitor"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// deviceInfo は *udev.Device のうちメタデータの取得に使う部分
type deviceInfo interface {
	PropertyValue(key string) string
	Syspath() string
	Devnode() string
}

// ueventInfo は *udev.Device のうちhotplugイベントの変換に使う部分
type ueventInfo interface {
	Action() string
	Sysname() string
	PropertyValue(key string) string
}

// lookupFunc はsysnameからudevデバイスを引く
// 見つからなければ nil を返す
type lookupFunc func(sysname string) (deviceInfo, error)

// Inspector はudevデータベースとsysfsからデバイス情報を取得する
type Inspector struct {
	lookup      lookupFunc
	sysClassDir string
}

// Inspect は device.Inspector を実装する
func (i *Inspector) Inspect(sysname string) (types.Metadata, error) {
	d, err := i.lookup(sysname)
	if err != nil {
		return types.Metadata{}, err
	}
	if d == nil {
		return types.Metadata{}, fmt.Errorf("udevデバイスが見つかりません: %w", device.ErrNotFound)
	}

	name, err := device.ReadName(i.sysClassDir, sysname)
	if err != nil {
		return types.Metadata{}, err
	}
	return metadataFrom(sysname, name, d), nil
}

func metadataFrom(sysname, name string, d deviceInfo) types.Metadata {
	props := make(map[string]string)
	if v := d.PropertyValue(consts.PropKeyboard); v != "" {
		props[consts.PropKeyboard] = v
	}
	return types.Metadata{
		Sysname:    sysname,
		Name:       name,
		Syspath:    d.Syspath(),
		Devnode:    d.Devnode(),
		Properties: props,
	}
}

func eventFrom(d ueventInfo) (types.HotplugEvent, bool) {
	keyboard := d.PropertyValue(consts.PropKeyboard) != ""
	return monitor.Filter(d.Action(), d.Sysname(), keyboard)
}

// forward はudevのデバイス通知をキーボードのhotplugイベントに変換して転送する
// in が閉じられるか ctx が終了すると出力チャネルを閉じる
func forward[D ueventInfo](ctx context.Context, in <-chan D) <-chan types.HotplugEvent {
	out := make(chan types.HotplugEvent, monitor.QueueSize)
	go func() {
		defer close(out)
		for {
			var d D
			var ok bool
			select {
			case d, ok = <-in:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
			ev, ok := eventFrom(d)
			if !ok {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Source はudevのnetlinkモニターからキーボードのhotplugイベントを受け取る
type Source struct {
	Netlink string
}

// NewSource は新しい Source を作成する
func NewSource(netlink string) *Source {
	if netlink == "" {
		netlink = consts.NetlinkUdev
	}
	return &Source{Netlink: netlink}
}
