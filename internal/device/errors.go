package device

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// デバイス操作のエラー種別
var (
	ErrPermissionDenied = errors.New("権限がありません")
	ErrNotFound         = errors.New("デバイスが見つかりません")
	ErrIO               = errors.New("入出力エラー")
)

// Error はデバイス操作の失敗を表す
// Kind は ErrPermissionDenied, ErrNotFound, ErrIO のいずれか
type Error struct {
	Op      string
	Sysname string
	Kind    error
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op + " " + e.Sysname + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// wrapError はOSエラーを種別付きの *Error に変換する
func wrapError(op, sysname string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Op: op, Sysname: sysname, Kind: Classify(err), Err: err}
}

// Classify はエラーを ErrPermissionDenied, ErrNotFound, ErrIO のいずれかに分類する
func Classify(err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, unix.EACCES),
		errors.Is(err, unix.EPERM):
		return ErrPermissionDenied
	case errors.Is(err, ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, unix.ENOENT),
		errors.Is(err, unix.ENODEV),
		errors.Is(err, unix.ENXIO):
		return ErrNotFound
	default:
		return ErrIO
	}
}
