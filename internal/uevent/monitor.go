//go:build cgo

package uevent

import (
	"context"
	"fmt"

	udev "github.com/jochenvg/go-udev"
	log "github.com/sirupsen/logrus"
	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// Events は monitor.Source を実装する
func (s *Source) Events(ctx context.Context) (<-chan types.HotplugEvent, error) {
	u := udev.Udev{}
	m := u.NewMonitorFromNetlink(s.Netlink)
	if m == nil {
		return nil, fmt.Errorf("udevモニターの作成に失敗しました")
	}
	if err := m.FilterAddMatchSubsystem(consts.SubsystemInput); err != nil {
		return nil, fmt.Errorf("udevモニターのフィルター設定に失敗しました: %w", err)
	}

	devices, err := m.DeviceChan(ctx)
	if err != nil {
		return nil, fmt.Errorf("udevモニターの開始に失敗しました: %w", err)
	}
	log.WithField("netlink", s.Netlink).Info("udevモニターを開始しました")

	return forward(ctx, devices), nil
}
