package device

import (
	"path/filepath"

	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// Handle はデバイスの排他制御を行うOS側の操作
// 実機では EVIOCGRAB を発行するevdevデバイスが実装する
type Handle interface {
	Grab() error
	Ungrab() error
	Close() error
}

// Inspector はsysnameからデバイス情報を取得する
type Inspector interface {
	Inspect(sysname string) (types.Metadata, error)
}

// OpenFunc はデバイスノードを開いて Handle を返す
type OpenFunc func(devnode string) (Handle, error)

// Device は1つの入力デバイスを表す
// 排他状態の変更はコントローラーからのみ行われる前提で、ロックは持たない
type Device struct {
	meta    types.Metadata
	handle  Handle
	grabbed bool
}

// New はデバイス情報と Handle から Device を作成する
func New(meta types.Metadata, h Handle) *Device {
	return &Device{meta: meta, handle: h}
}

func (d *Device) Sysname() string { return d.meta.Sysname }

func (d *Device) Name() string { return d.meta.Name }

// Metadata はデバイス情報のスナップショットを返す
func (d *Device) Metadata() types.Metadata { return d.meta }

func (d *Device) IsKeyboard() bool { return IsKeyboard(d.meta) }

func (d *Device) IsPlatform() bool { return IsPlatform(d.meta) }

// Grabbed は入力を専有しているかを返す
func (d *Device) Grabbed() bool { return d.grabbed }

// Grab はデバイスの入力を専有する
// 既に専有している場合は何もしない
func (d *Device) Grab() error {
	if d.grabbed {
		return nil
	}
	if err := d.handle.Grab(); err != nil {
		return wrapError("grab", d.meta.Sysname, err)
	}
	d.grabbed = true
	return nil
}

// Ungrab はデバイスの専有を解除する
// 専有していない場合は何もしない
func (d *Device) Ungrab() error {
	if !d.grabbed {
		return nil
	}
	if err := d.handle.Ungrab(); err != nil {
		return wrapError("ungrab", d.meta.Sysname, err)
	}
	d.grabbed = false
	return nil
}

// Close はデバイスを解放する
// 切断済みのデバイスでも呼ばれるため、専有解除は試みない（OSが解除する）
func (d *Device) Close() error {
	d.grabbed = false
	if err := d.handle.Close(); err != nil {
		return wrapError("close", d.meta.Sysname, err)
	}
	return nil
}

// Opener はsysnameからデバイスを開く
type Opener struct {
	Inspector Inspector
	OpenNode  OpenFunc
	DevDir    string
}

// NewOpener はevdevでデバイスノードを開く Opener を作成する
func NewOpener(inspector Inspector, devDir string) *Opener {
	return &Opener{
		Inspector: inspector,
		OpenNode:  EvdevOpen,
		DevDir:    devDir,
	}
}

// Open はデバイス情報を取得し、デバイスノードを開く
func (o *Opener) Open(sysname string) (*Device, error) {
	meta, err := o.Inspector.Inspect(sysname)
	if err != nil {
		return nil, wrapError("inspect", sysname, err)
	}
	if meta.Sysname == "" {
		meta.Sysname = sysname
	}
	if meta.Devnode == "" {
		meta.Devnode = filepath.Join(o.DevDir, sysname)
	}

	h, err := o.OpenNode(meta.Devnode)
	if err != nil {
		return nil, wrapError("open", sysname, err)
	}
	return New(meta, h), nil
}
