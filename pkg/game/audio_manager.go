package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/decker502/platformer/pkg/config"
)

// AudioManager 音频管理器
// 职责：
//   - 按资源ID播放动作音效（攻击、死亡）
//   - 应用 SettingsManager 中的音效开关和音量
//   - 缓存已解码的播放器
//
// 实现 action.Audio 接口。audioContext 为 nil 时（无头模式）不播放任何声音。
type AudioManager struct {
	audioContext    *audio.Context           // 音频上下文，可为 nil
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	sounds          *config.SoundTable       // 音效资源表
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源ID -> 播放器）
	missing         map[string]bool          // 加载失败的资源ID，不再重试
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - audioContext: 音频上下文，可为 nil（无头模式）
//   - sounds: 音效资源表，可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(audioContext *audio.Context, sounds *config.SoundTable, sm *SettingsManager) *AudioManager {
	if sounds == nil {
		sounds = &config.SoundTable{Sounds: map[string]string{}}
	}
	return &AudioManager{
		audioContext:    audioContext,
		settingsManager: sm,
		sounds:          sounds,
		soundPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
	}
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 参数：
//   - soundID: 音效资源ID（如 "SND_SWORD"）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.audioContext == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(clampVolume(volume))
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// PreloadSounds 预加载音效
// 在沙盒初始化时调用，避免首次播放时的延迟
//
// 参数：
//   - soundIDs: 要预加载的音效资源ID列表
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	if am.audioContext == nil {
		return
	}
	loaded := 0
	for _, soundID := range soundIDs {
		if am.getSoundPlayer(soundID) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(soundIDs))
}

// getSoundPlayer 获取或加载音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.missing[soundID] {
		return nil
	}

	filePath, exists := am.sounds.Path(soundID)
	if !exists {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		am.missing[soundID] = true
		return nil
	}

	player, err := am.LoadSoundEffect(filePath)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
		am.missing[soundID] = true
		return nil
	}
	am.soundPlayers[soundID] = player
	return player
}

// LoadSoundEffect 加载音效文件并创建不循环的播放器
//
// 支持的格式：.wav、.ogg、.mp3
func (am *AudioManager) LoadSoundEffect(filePath string) (*audio.Player, error) {
	if am.audioContext == nil {
		return nil, fmt.Errorf("audio context is not available")
	}

	audioData, err := config.ReadDataFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", filePath, err)
	}

	stream, err := decodeSound(audioData, path.Ext(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound effect %s: %w", filePath, err)
	}

	player, err := am.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", filePath, err)
	}
	return player, nil
}

// decodeSound 按扩展名解码音频数据
func decodeSound(data []byte, ext string) (io.ReadSeeker, error) {
	reader := bytes.NewReader(data)
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.DecodeWithoutResampling(reader)
	case ".ogg":
		return vorbis.DecodeWithoutResampling(reader)
	case ".mp3":
		return mp3.DecodeWithoutResampling(reader)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3)", ext)
	}
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}
