package device

import (
	"errors"
	"strings"

	evdev "github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"
)

// evdevDevice は *evdev.InputDevice のうち排他制御に使う操作
type evdevDevice interface {
	Grab() error
	Ungrab() error
	Close() error
}

// evdevHandle はgo-evdevのエラーからerrnoを復元する Handle
// go-evdevはioctlの失敗を errors.New(errno.Error()) で返すため、そのままでは種別を判定できない
type evdevHandle struct {
	dev evdevDevice
}

// EvdevOpen はevdevデバイスノードを開く
// Grab / Ungrab は EVIOCGRAB を発行する
func EvdevOpen(devnode string) (Handle, error) {
	d, err := evdev.Open(devnode)
	if err != nil {
		return nil, restoreErrno(err)
	}
	return &evdevHandle{dev: d}, nil
}

func (h *evdevHandle) Grab() error { return restoreErrno(h.dev.Grab()) }

func (h *evdevHandle) Ungrab() error { return restoreErrno(h.dev.Ungrab()) }

func (h *evdevHandle) Close() error { return restoreErrno(h.dev.Close()) }

// 文字列から復元するerrno
var knownErrnos = []unix.Errno{
	unix.EPERM,
	unix.EACCES,
	unix.ENOENT,
	unix.ENODEV,
	unix.ENXIO,
	unix.EBUSY,
	unix.EINVAL,
	unix.EIO,
	unix.ENOTTY,
	unix.EBADF,
	unix.EAGAIN,
	unix.EINTR,
}

// errnoError は元のエラーメッセージを保ったまま unix.Errno でも判定できるエラー
type errnoError struct {
	err   error
	errno unix.Errno
}

func (e *errnoError) Error() string { return e.err.Error() }

func (e *errnoError) Unwrap() []error { return []error{e.err, e.errno} }

// restoreErrno はエラーメッセージの末尾がerrnoの文字列と一致すれば unix.Errno を付与する
func restoreErrno(err error) error {
	if err == nil {
		return nil
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return err
	}
	msg := err.Error()
	for _, e := range knownErrnos {
		if strings.HasSuffix(msg, e.Error()) {
			return &errnoError{err: err, errno: e}
		}
	}
	return err
}
