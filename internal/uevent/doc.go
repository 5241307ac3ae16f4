// Package uevent はlibudev（github.com/jochenvg/go-udev）を使ったデバイス情報の取得と
// netlink経由のhotplug監視を提供する。
//
// libudevを呼び出す部分はcgoが必要。cgoなしでビルドした場合は ErrUnavailable を返す。
package uevent
