//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前需要把 data/ 复制到此目录。
package mobile

import "embed"

//go:embed data/action_setting.yaml data/damage_table.yaml data/relations.yaml
//go:embed data/effects.yaml data/sounds.yaml
//go:embed data/units data/levels data/scripts data/sounds
var dataFS embed.FS
