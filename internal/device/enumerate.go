package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
)

// DeviceOpener はsysnameから Device を開く
type DeviceOpener interface {
	Open(sysname string) (*Device, error)
}

// ListIdentifiers は入力デバイスディレクトリ内のイベントノード名を返す
func ListIdentifiers(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("入力デバイスディレクトリの読み込みに失敗しました: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsEventNode(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Enumerate はすべての入力デバイスを開く
// 開けなかったデバイスは読み飛ばす
func Enumerate(dir string, opener DeviceOpener) ([]*Device, error) {
	names, err := ListIdentifiers(dir)
	if err != nil {
		return nil, err
	}
	devices := make([]*Device, 0, len(names))
	for _, name := range names {
		d, err := opener.Open(name)
		if err != nil {
			log.WithField("sysname", name).Debugf("デバイスを開けないためスキップします: %v", err)
			continue
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// ReadName はsysfsからデバイス名を読み込む
func ReadName(sysClassDir, sysname string) (string, error) {
	b, err := os.ReadFile(filepath.Join(sysClassDir, sysname, consts.NameFile))
	if err != nil {
		return "", wrapError("read name", sysname, err)
	}
	return strings.TrimSpace(string(b)), nil
}
