package controller

import "time"

// Keyboard は状態取得用のキーボード情報
type Keyboard struct {
	Sysname string `json:"sysname"`
	Name    string `json:"name"`
	Grabbed bool   `json:"grabbed"`
}

// Snapshot はある時点のキーボード集合
type Snapshot struct {
	Platform  []Keyboard `json:"platform"`
	External  []Keyboard `json:"external"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// InternalDisabled は内蔵キーボードがすべて専有されているかを返す
func (s Snapshot) InternalDisabled() bool {
	if len(s.Platform) == 0 {
		return false
	}
	for _, k := range s.Platform {
		if !k.Grabbed {
			return false
		}
	}
	return true
}
