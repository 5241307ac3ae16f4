package types

// Metadata はOSから取得した入力デバイス情報のスナップショット
type Metadata struct {
	Sysname    string            // デバイス識別子（例: event3）
	Name       string            // 表示用のデバイス名
	Syspath    string            // sysfs上のパス
	Devnode    string            // デバイスノードのパス（例: /dev/input/event3）
	Properties map[string]string // udevプロパティ
}

// Property はudevプロパティの値と存在有無を返す
func (m Metadata) Property(key string) (string, bool) {
	v, ok := m.Properties[key]
	return v, ok
}
