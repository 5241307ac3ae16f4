package device

import (
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

type fakeHandle struct {
	grabErr   error
	ungrabErr error
	closeErr  error
	grabs     int
	ungrabs   int
	closed    bool
}

func (h *fakeHandle) Grab() error {
	if h.grabErr != nil {
		return h.grabErr
	}
	h.grabs++
	return nil
}

func (h *fakeHandle) Ungrab() error {
	if h.ungrabErr != nil {
		return h.ungrabErr
	}
	h.ungrabs++
	return nil
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return h.closeErr
}

type fakeInspector map[string]types.Metadata

func (f fakeInspector) Inspect(sysname string) (types.Metadata, error) {
	m, ok := f[sysname]
	if !ok {
		return types.Metadata{}, ErrNotFound
	}
	return m, nil
}

func usbKeyboardMeta(sysname string) types.Metadata {
	return types.Metadata{
		Sysname:    sysname,
		Properties: map[string]string{"ID_INPUT_KEYBOARD": "1"},
	}
}
