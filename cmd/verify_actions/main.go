// verify_actions 无头运行一个关卡，打印动作和伤害统计
//
// 用法:
//
//	go run ./cmd/verify_actions --level data/levels/duel.yaml --seconds 30
//	go run ./cmd/verify_actions --level data/levels/arena.yaml --ai-player --verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/decker502/platformer/pkg/app"
	"github.com/decker502/platformer/pkg/embedded"
	"github.com/decker502/platformer/pkg/systems"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	levelFile = flag.String("level", "data/levels/duel.yaml", "关卡文件路径")
	seconds   = flag.Float64("seconds", 30, "最长模拟时间（秒）")
	dataDir   = flag.String("data", ".", "包含 data/ 的目录")
	aiPlayer  = flag.Bool("ai-player", false, "玩家单位也由 AI 控制")
	precise   = flag.Bool("precise", true, "使用精确命中点")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := embedded.InitFromDir(*dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "资源目录无效: %v\n", err)
		os.Exit(1)
	}

	sandbox, err := app.NewSandbox(app.SandboxOptions{
		LevelFile: *levelFile,
		Keys:      systems.NoKeys{},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "沙盒创建失败: %v\n", err)
		os.Exit(1)
	}
	sandbox.SetPreciseHit(*precise)
	if p := sandbox.Player(); p != nil && *aiPlayer {
		p.AIEnabled = true
	}

	fmt.Printf("=== verify_actions: %s ===\n", sandbox.Level().ID)
	for _, u := range sandbox.Units() {
		fmt.Printf("  %-8s group=%d hp=%.0f at (%.0f, %.0f)\n", u.Name(), u.Group(), u.HP(), u.Position().X, u.Position().Y)
	}

	maxFrames := int(*seconds / app.FixedDeltaTime)
	for sandbox.Frame() < maxFrames && len(sandbox.AliveGroups()) > 1 {
		sandbox.Step(app.FixedDeltaTime)
	}

	printSummary(sandbox)
}

func printSummary(sandbox *app.Sandbox) {
	fmt.Printf("\n模拟结束: %d 帧 (%.2fs)\n", sandbox.Frame(), sandbox.Elapsed())

	totals := make(map[string]float64)
	hits := make(map[string]int)
	for _, d := range sandbox.Damages() {
		key := fmt.Sprintf("%s -> %s", d.Attacker, d.Target)
		totals[key] += d.Damage
		hits[key]++
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("伤害统计:")
	if len(keys) == 0 {
		fmt.Println("  (无)")
	}
	for _, k := range keys {
		fmt.Printf("  %-20s %3d 次 %7.1f\n", k, hits[k], totals[k])
	}

	fmt.Printf("未命中子弹: %d\n", sandbox.MissedBullets())

	fmt.Println("存活单位:")
	for _, u := range sandbox.Units() {
		action := "-"
		if current := u.CurrentAction(); current != nil {
			action = current.Name()
		}
		fmt.Printf("  %-8s group=%d hp=%.0f action=%s\n", u.Name(), u.Group(), u.HP(), action)
	}

	groups := sandbox.AliveGroups()
	switch len(groups) {
	case 0:
		fmt.Println("结果: 全部倒下")
	case 1:
		fmt.Printf("结果: 阵营 %d 获胜\n", groups[0])
	default:
		fmt.Printf("结果: 超时，存活阵营 %v\n", groups)
	}
}
