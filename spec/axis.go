package spec

import (
	"strings"

	"github.com/zintix-labs/bodylab/errs"
)

// Gender 選擇參考資料表與形變目標名稱。
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender 不分大小寫解析性別；未知值原樣保留，由估算器走線性備援。
func ParseGender(s string) Gender {
	return Gender(strings.ToLower(strings.TrimSpace(s)))
}

// Known 回報 g 是否有對應的參考資料表。
func (g Gender) Known() bool {
	return g == Male || g == Female
}

// Axis 是驅動形變的量測軸。
type Axis string

const (
	Height Axis = "height"
	Weight Axis = "weight"
	Chest  Axis = "chest"
	Waist  Axis = "waist"
	Hips   Axis = "hips"
)

// ShapeKey 是參考表中量測軸的欄位名稱（height→boy, weight→kilo）。
type ShapeKey string

const (
	KeyBoy   ShapeKey = "boy"
	KeyKilo  ShapeKey = "kilo"
	KeyChest ShapeKey = "chest"
	KeyWaist ShapeKey = "waist"
	KeyHips  ShapeKey = "hips"
)

// Axes 依固定順序列出所有量測軸。
var Axes = []Axis{Height, Weight, Chest, Waist, Hips}

// AdjustableAxes 是有滑桿區間的量測軸；身高體重本身決定 baseline，不在此列。
var AdjustableAxes = []Axis{Chest, Waist, Hips}

func ParseAxis(s string) (Axis, error) {
	a := Axis(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Height, Weight, Chest, Waist, Hips:
		return a, nil
	}
	switch ShapeKey(a) {
	case KeyBoy:
		return Height, nil
	case KeyKilo:
		return Weight, nil
	}
	return "", errs.With(errs.ErrUnknownAxis, s)
}

func (a Axis) ShapeKey() ShapeKey {
	switch a {
	case Height:
		return KeyBoy
	case Weight:
		return KeyKilo
	default:
		return ShapeKey(a)
	}
}

// Known 回報 a 是否為正式軸名（不含 boy、kilo 別名）。
func (a Axis) Known() bool {
	switch a {
	case Height, Weight, Chest, Waist, Hips:
		return true
	}
	return false
}

// Adjustable 回報 a 是否為可由使用者拖曳調整的軸。
func (a Axis) Adjustable() bool {
	return a == Chest || a == Waist || a == Hips
}
