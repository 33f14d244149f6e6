package game

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/decker502/platformer/pkg/config"
)

// pcmWAV 生成 16 位单声道 PCM WAV 数据
func pcmWAV(samples int) []byte {
	var buf bytes.Buffer
	dataSize := uint32(samples * 2)
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // 单声道
	binary.Write(&buf, binary.LittleEndian, uint32(44100)) // 采样率
	binary.Write(&buf, binary.LittleEndian, uint32(44100*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

// TestDecodeSound 测试按扩展名解码
func TestDecodeSound(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		ext     string
		wantErr bool
	}{
		{"wav", pcmWAV(100), ".wav", false},
		{"upper case ext", pcmWAV(100), ".WAV", false},
		{"broken wav", []byte("not a wav"), ".wav", true},
		{"unsupported", pcmWAV(100), ".flac", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, err := decodeSound(tt.data, tt.ext)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeSound() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && stream == nil {
				t.Error("decodeSound() returned nil stream")
			}
		})
	}
}

// TestPlaySoundHeadless 无音频上下文时不播放
func TestPlaySoundHeadless(t *testing.T) {
	sounds := &config.SoundTable{Sounds: map[string]string{"SND_SWORD": "sword.wav"}}
	am := NewAudioManager(nil, sounds, nil)

	if am.PlaySound("SND_SWORD") {
		t.Error("PlaySound() should return false without an audio context")
	}
	if _, err := am.LoadSoundEffect("sword.wav"); err == nil {
		t.Error("LoadSoundEffect() should fail without an audio context")
	}
}

// TestSoundVolumeFollowsSettings 音量读取设置管理器
func TestSoundVolumeFollowsSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, nil, sm)

	am.SetSoundVolume(0.25)
	if got := am.GetSoundVolume(); got != 0.25 {
		t.Errorf("GetSoundVolume() = %v, want 0.25", got)
	}
	am.SetSoundVolume(2)
	if got := sm.GetSettings().SoundVolume; got != 1.0 {
		t.Errorf("settings volume = %v, want 1.0", got)
	}

	if got := NewAudioManager(nil, nil, nil).GetSoundVolume(); got != 0.8 {
		t.Errorf("default volume = %v, want 0.8", got)
	}
}
