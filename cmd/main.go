package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/yingmanwumen/no-internal-kbd/internal/api"
	"github.com/yingmanwumen/no-internal-kbd/internal/config"
	"github.com/yingmanwumen/no-internal-kbd/internal/controller"
	"github.com/yingmanwumen/no-internal-kbd/internal/device"
	"github.com/yingmanwumen/no-internal-kbd/internal/monitor"
	"github.com/yingmanwumen/no-internal-kbd/internal/types"
	"github.com/yingmanwumen/no-internal-kbd/internal/uevent"
)

func main() {
	// コマンドライン引数の解析
	configPath := flag.String("config", config.DefaultConfigPath, "設定ファイルのパス")
	logLevel := flag.String("loglevel", "", "ログレベル (panic, fatal, error, warn, info, debug, trace)")
	useApi := flag.Bool("api", false, "状態取得APIサーバーを起動します")
	port := flag.Int("port", 0, "APIサーバーのポート番号")
	printConfig := flag.Bool("print-config", false, "有効な設定を出力して終了します")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// コマンドライン引数で設定を上書き
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *useApi {
		cfg.API.Enabled = true
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	setupLogging(cfg.Log.Level)

	// ルート権限チェック
	if unix.Geteuid() != 0 {
		log.Fatal("このプログラムはルート権限で実行する必要があります")
	}

	if err := run(cfg); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inspector := uevent.NewInspector(cfg.Paths.SysClassInput)
	opener := device.NewOpener(inspector, cfg.Paths.DevInput)

	var source monitor.Source
	switch cfg.Monitor.Backend {
	case config.BackendInotify:
		source = monitor.NewInotifySource(cfg.Paths.DevInput, inspector, cfg.Monitor.Settle)
	default:
		source = uevent.NewSource(cfg.Monitor.Netlink)
	}

	events, devices, err := subscribeAndEnumerate(ctx, source, cfg.Paths.DevInput, opener)
	if err != nil {
		return err
	}

	ctrl := controller.New(opener)
	ctrl.Initialize(devices)
	defer ctrl.Close()

	if cfg.API.Enabled {
		server := api.NewServer(ctrl, cfg.API.Port)
		go func() {
			if err := server.Start(); err != nil {
				log.Errorf("%v", err)
			}
		}()
		defer stopServer(server, 5*time.Second)
	}

	err = ctrl.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		log.Info("シャットダウンします...")
		return nil
	}
	return err
}

// subscribeAndEnumerate はhotplug監視を開始してから入力デバイスを列挙する
// 列挙中に接続されたデバイスはイベントとして後から届く
func subscribeAndEnumerate(ctx context.Context, source monitor.Source, dir string, opener device.DeviceOpener) (<-chan types.HotplugEvent, []*device.Device, error) {
	events, err := source.Events(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("hotplug監視の開始に失敗しました: %w", err)
	}

	devices, err := device.Enumerate(dir, opener)
	if err != nil {
		return nil, nil, fmt.Errorf("入力デバイスの列挙に失敗しました: %w", err)
	}
	log.Infof("%d 個の入力デバイスを検出しました", len(devices))
	return events, devices, nil
}

type stopper interface {
	Stop(ctx context.Context) error
}

// stopServer はAPIサーバーを停止する
// 停止に失敗してもシャットダウンは続ける
func stopServer(server stopper, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Warnf("APIサーバーの停止に失敗しました: %v", err)
	}
}
