package device

import (
	"strings"

	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// IsKeyboard はudevがキーボードとして認識しているデバイスかを判定する
func IsKeyboard(m types.Metadata) bool {
	_, ok := m.Property(consts.PropKeyboard)
	return ok
}

// IsPlatform は内蔵バスに接続されたデバイスかを判定する
// syspathの部分一致による推定なので、ドック経由のUSBキーボードなどを誤判定することがある
func IsPlatform(m types.Metadata) bool {
	return strings.Contains(m.Syspath, consts.PlatformMarker)
}

// IsEventNode はevdevのイベントノード名かを判定する
func IsEventNode(sysname string) bool {
	return strings.Contains(sysname, consts.EventNodeMarker)
}
