package config

import (
	"fmt"
	"path"
	"strings"
)

// SoundTable 音效资源表
//
// 配置文件位置: data/sounds.yaml
//
//	baseDir: data/sounds
//	sounds:
//	  SND_SWORD: sword.wav
//
// 单位定义中的 sndAttack / sndDeath 引用这里的资源ID。
type SoundTable struct {
	BaseDir string            `yaml:"baseDir"`
	Sounds  map[string]string `yaml:"sounds"`
}

// 支持的音频格式
var supportedSoundExts = map[string]bool{".wav": true, ".ogg": true, ".mp3": true}

// LoadSoundTable 加载音效资源表
func LoadSoundTable(file string) (*SoundTable, error) {
	var table SoundTable
	if err := decodeYAML(file, "sound table", &table); err != nil {
		return nil, err
	}
	if table.Sounds == nil {
		table.Sounds = make(map[string]string)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sound table: %w", err)
	}
	return &table, nil
}

// Validate 检查所有音效文件扩展名
func (t *SoundTable) Validate() error {
	for id, file := range t.Sounds {
		ext := strings.ToLower(path.Ext(file))
		if !supportedSoundExts[ext] {
			return fmt.Errorf("sound '%s' has unsupported format '%s' (supported: .wav, .ogg, .mp3)", id, ext)
		}
	}
	return nil
}

// Path 返回音效文件路径，资源ID未配置时返回 false
func (t *SoundTable) Path(soundID string) (string, bool) {
	file, ok := t.Sounds[soundID]
	if !ok {
		return "", false
	}
	if t.BaseDir == "" {
		return file, true
	}
	return path.Join(t.BaseDir, file), true
}
