package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
	"github.com/yingmanwumen/no-internal-kbd/internal/device"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
)

// InotifySource は /dev/input のファイル作成・削除からhotplugイベントを生成する
// udevのnetlinkが使えない環境向け
type InotifySource struct {
	Dir       string
	Inspector device.Inspector
	// Settle はノード作成後、udevがプロパティを設定するまで待つ時間
	Settle time.Duration
}

// NewInotifySource は新しい InotifySource を作成する
func NewInotifySource(dir string, inspector device.Inspector, settle time.Duration) *InotifySource {
	return &InotifySource{Dir: dir, Inspector: inspector, Settle: settle}
}

// Events は Source を実装する
func (s *InotifySource) Events(ctx context.Context) (<-chan types.HotplugEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ファイル監視の作成に失敗しました: %w", err)
	}
	if err := watcher.Add(s.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("ディレクトリの監視に失敗しました: %s: %w", s.Dir, err)
	}
	log.WithField("dir", s.Dir).Info("ディレクトリ監視を開始しました")

	out := make(chan types.HotplugEvent, QueueSize)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case fe, ok := <-watcher.Events:
				if !ok {
					log.Warn("イベントチャネルが閉じられました")
					return
				}
				ev, ok := s.convert(ctx, fe)
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					log.Warn("エラーチャネルが閉じられました")
					return
				}
				log.Warnf("ファイルシステム監視エラー: %v", err)
			}
		}
	}()
	return out, nil
}

// convert はfsnotifyのイベントをhotplugイベントに変換する
// 削除されたノードは情報を取得できないため、キーボードかどうかに関わらず remove として通す
func (s *InotifySource) convert(ctx context.Context, fe fsnotify.Event) (types.HotplugEvent, bool) {
	sysname := filepath.Base(fe.Name)
	switch {
	case fe.Has(fsnotify.Create):
		if !device.IsEventNode(sysname) {
			return types.HotplugEvent{}, false
		}
		if s.Settle > 0 {
			select {
			case <-time.After(s.Settle):
			case <-ctx.Done():
				return types.HotplugEvent{}, false
			}
		}
		meta, err := s.Inspector.Inspect(sysname)
		if err != nil {
			log.WithField("sysname", sysname).Debugf("デバイス情報を取得できません: %v", err)
			return types.HotplugEvent{}, false
		}
		return Filter(consts.ActionAdd, sysname, device.IsKeyboard(meta))
	case fe.Has(fsnotify.Remove):
		return Filter(consts.ActionRemove, sysname, true)
	default:
		return types.HotplugEvent{}, false
	}
}
