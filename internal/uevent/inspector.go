//go:build cgo

package uevent

import (
	udev "github.com/jochenvg/go-udev"
	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
)

// NewInspector はlibudevを使う Inspector を作成する
func NewInspector(sysClassDir string) *Inspector {
	u := &udev.Udev{}
	return &Inspector{
		lookup: func(sysname string) (deviceInfo, error) {
			d := u.NewDeviceFromSubsystemSysname(consts.SubsystemInput, sysname)
			if d == nil {
				return nil, nil
			}
			return d, nil
		},
		sysClassDir: sysClassDir,
	}
}
