package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/platformer/pkg/app"
	"github.com/decker502/platformer/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	level   = flag.String("level", "", "关卡文件路径（如 data/levels/duel.yaml）")
	mute    = flag.Bool("mute", false, "关闭声音")
	dataDir = flag.String("data", "", "从磁盘目录读取 data/（用于调试配置和脚本），为空时使用嵌入资源")
)

func main() {
	flag.Parse()

	if *dataDir != "" {
		if err := embedded.InitFromDir(*dataDir); err != nil {
			log.Fatalf("资源目录无效: %v", err)
		}
	} else {
		embedded.Init(dataFS)
	}

	game, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Level:   *level,
		Mute:    *mute,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Platformer Action Sandbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
