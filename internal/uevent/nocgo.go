//go:build !cgo

package uevent

import (
	"context"
	"errors"

	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// ErrUnavailable はcgoなしでビルドされたためlibudevを使えないことを表す
var ErrUnavailable = errors.New("cgoが無効なためudevを利用できません")

// NewInspector は常に ErrUnavailable を返す Inspector を作成する
func NewInspector(sysClassDir string) *Inspector {
	return &Inspector{
		lookup: func(string) (deviceInfo, error) {
			return nil, ErrUnavailable
		},
		sysClassDir: sysClassDir,
	}
}

// Events は ErrUnavailable を返す
// inotify方式の監視はcgoなしでも使える
func (s *Source) Events(context.Context) (<-chan types.HotplugEvent, error) {
	return nil, ErrUnavailable
}
