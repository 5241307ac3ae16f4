package consts

// 入力デバイス関連のパス
const (
	DevInputDir      = "/dev/input"       // デバイスノードのディレクトリ
	SysClassInputDir = "/sys/class/input" // sysfsの入力クラスディレクトリ
	NameFile         = "device/name"      // sysfs上のデバイス名ファイル（sysname からの相対パス）
)

// udev関連の定数
const (
	SubsystemInput  = "input"             // 監視対象のサブシステム
	PropKeyboard    = "ID_INPUT_KEYBOARD" // キーボードであることを示すプロパティ
	NetlinkUdev     = "udev"              // udevが処理済みのイベントを受け取るnetlinkグループ
	EventNodeMarker = "event"             // evdevノード名に含まれる文字列
	PlatformMarker  = "platform"          // 内蔵バス上のデバイスのsyspathに含まれる文字列
)

// hotplugイベントのアクション文字列
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)
