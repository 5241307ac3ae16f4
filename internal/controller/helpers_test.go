package controller

import (
	"slices"
	"strings"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/yingmanwumen/no-internal-kbd/internal/device"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
	"golang.org/x/sys/unix"
)

// fakeHandle はOSの排他制御を模倣する
// 実機の EVIOCGRAB と同様に二重のgrabは EBUSY を返す
type fakeHandle struct {
	grabbed    bool
	closed     bool
	failGrab   error
	failUngrab error
	grabs      int
}

func (h *fakeHandle) Grab() error {
	if h.failGrab != nil {
		return h.failGrab
	}
	if h.grabbed {
		return unix.EBUSY
	}
	h.grabbed = true
	h.grabs++
	return nil
}

func (h *fakeHandle) Ungrab() error {
	if h.failUngrab != nil {
		return h.failUngrab
	}
	if !h.grabbed {
		return unix.EINVAL
	}
	h.grabbed = false
	return nil
}

func (h *fakeHandle) Close() error {
	h.closed = true
	h.grabbed = false
	return nil
}

func keyboardMeta(sysname string, platform bool) types.Metadata {
	syspath := "/sys/devices/pci0000:00/0000:00:14.0/usb1/1-1/input/" + sysname
	if platform {
		syspath = "/sys/devices/platform/i8042/serio0/input/" + sysname
	}
	return types.Metadata{
		Sysname:    sysname,
		Name:       "keyboard " + sysname,
		Syspath:    syspath,
		Properties: map[string]string{"ID_INPUT_KEYBOARD": "1"},
	}
}

type fakeOpener struct {
	handles map[string]*fakeHandle
	fail    map[string]error
	opened  []string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{handles: make(map[string]*fakeHandle), fail: make(map[string]error)}
}

func (o *fakeOpener) Open(sysname string) (*device.Device, error) {
	if err := o.fail[sysname]; err != nil {
		return nil, err
	}
	h := &fakeHandle{}
	o.handles[sysname] = h
	o.opened = append(o.opened, sysname)
	return device.New(keyboardMeta(sysname, false), h), nil
}

type fixture struct {
	ctrl     *Controller
	opener   *fakeOpener
	platform map[string]*fakeHandle
	initial  map[string]*fakeHandle
}

// newFixture は内蔵キーボードと起動時に接続済みの外部キーボードで初期化したコントローラーを返す
func newFixture(platform []string, external []string, extra ...*device.Device) *fixture {
	f := &fixture{
		opener:   newFakeOpener(),
		platform: make(map[string]*fakeHandle),
		initial:  make(map[string]*fakeHandle),
	}
	var devices []*device.Device
	for _, name := range platform {
		h := &fakeHandle{}
		f.platform[name] = h
		devices = append(devices, device.New(keyboardMeta(name, true), h))
	}
	for _, name := range external {
		h := &fakeHandle{}
		f.initial[name] = h
		devices = append(devices, device.New(keyboardMeta(name, false), h))
	}
	devices = append(devices, extra...)
	f.ctrl = New(f.opener)
	f.ctrl.Initialize(devices)
	return f
}

func (f *fixture) add(sysname string) {
	f.ctrl.HandleEvent(types.HotplugEvent{Action: types.ActionAdd, Sysname: sysname})
}

func (f *fixture) remove(sysname string) {
	f.ctrl.HandleEvent(types.HotplugEvent{Action: types.ActionRemove, Sysname: sysname})
}

// platformGrabbed は内蔵キーボードがすべてOS上で専有されているかを返す
func (f *fixture) platformGrabbed() bool {
	for _, h := range f.platform {
		if !h.grabbed {
			return false
		}
	}
	return true
}

// platformReleased は内蔵キーボードがすべてOS上で解放されているかを返す
func (f *fixture) platformReleased() bool {
	for _, h := range f.platform {
		if h.grabbed {
			return false
		}
	}
	return true
}

// invariantHolds は内蔵キーボードの専有状態が外部キーボードの有無と一致するかを返す
func (f *fixture) invariantHolds() bool {
	if len(f.ctrl.State().External) > 0 {
		return f.platformGrabbed()
	}
	return f.platformReleased()
}

// newState はsysnameの一覧からソート済みで重複のない State を作成する
func newState(platform, external []string) State {
	return State{Platform: normalize(platform), External: normalize(external)}
}

func normalize(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}

// messages はフックに記録されたログメッセージを返す
func messages(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		out = append(out, e.Message)
	}
	return out
}

func hasPrefix(msgs []string, prefix string) bool {
	return slices.ContainsFunc(msgs, func(m string) bool { return strings.HasPrefix(m, prefix) })
}

var _ device.DeviceOpener = (*fakeOpener)(nil)
