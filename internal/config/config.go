package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"github.com/yingmanwumen/no-internal-kbd/internal/consts"
)

// DefaultConfigPath は設定ファイルの既定のパス
// ファイルがなくても既定値で動作する
const DefaultConfigPath = "/etc/no-internal-kbd/config.toml"

// hotplug監視の方式
const (
	BackendUdev    = "udev"
	BackendInotify = "inotify"
)

// Config はアプリケーション全体の設定を表す構造体
type Config struct {
	Log     LogConfig     `toml:"log"`
	Paths   PathsConfig   `toml:"paths"`
	Monitor MonitorConfig `toml:"monitor"`
	API     APIConfig     `toml:"api"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level string `toml:"level"`
}

// PathsConfig は入力デバイスを探すパスの設定
type PathsConfig struct {
	DevInput      string `toml:"dev_input"`
	SysClassInput string `toml:"sys_class_input"`
}

// MonitorConfig はhotplug監視の設定
type MonitorConfig struct {
	Backend string        `toml:"backend"` // "udev" または "inotify"
	Netlink string        `toml:"netlink"`
	Settle  time.Duration `toml:"settle"` // inotify使用時にudevの処理を待つ時間
}

// APIConfig は状態取得APIの設定
type APIConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Paths: PathsConfig{
			DevInput:      consts.DevInputDir,
			SysClassInput: consts.SysClassInputDir,
		},
		Monitor: MonitorConfig{
			Backend: BackendUdev,
			Netlink: consts.NetlinkUdev,
			Settle:  500 * time.Millisecond,
		},
		API: APIConfig{
			Enabled: false,
			Port:    8080,
		},
	}
}

// LoadConfig は設定ファイルから設定を読み込む
// ファイルが存在しない場合はデフォルト設定を返す
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate は設定値を検証する
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("不正なログレベルです: %q", c.Log.Level)
	}
	switch c.Monitor.Backend {
	case BackendUdev, BackendInotify:
	default:
		return fmt.Errorf("不正な監視方式です: %q", c.Monitor.Backend)
	}
	if c.Monitor.Settle < 0 {
		return fmt.Errorf("settle は0以上で指定してください: %v", c.Monitor.Settle)
	}
	if c.Paths.DevInput == "" || c.Paths.SysClassInput == "" {
		return errors.New("入力デバイスのパスが空です")
	}
	if c.API.Enabled && (c.API.Port <= 0 || c.API.Port > 65535) {
		return fmt.Errorf("不正なポート番号です: %d", c.API.Port)
	}
	return nil
}

// Encode は設定をTOML形式で書き出す
func Encode(w io.Writer, config *Config) error {
	return toml.NewEncoder(w).Encode(config)
}
