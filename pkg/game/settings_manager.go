package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HostSettings 宿主窗口设置
// 与特效参数（FrostConfig）分开保存，只影响窗口和调试显示
type HostSettings struct {
	WindowWidth  int  `yaml:"windowWidth"`  // 窗口宽度（逻辑像素）
	WindowHeight int  `yaml:"windowHeight"` // 窗口高度（逻辑像素）
	Fullscreen   bool `yaml:"fullscreen"`   // 启动时是否全屏
	ShowStats    bool `yaml:"showStats"`    // 是否显示调试统计
	StartFrozen  bool `yaml:"startFrozen"`  // 启动时直接进入冻结模式
}

// 窗口尺寸限制
const (
	minWindowSize = 64
	maxWindowSize = 8192
)

// DefaultSettings 返回默认设置
func DefaultSettings() *HostSettings {
	return &HostSettings{
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// SettingsManager 持有宿主设置，并通过 gdata 持久化
//
// storage 为 nil 时只在内存中保存（例如存储目录不可写）。
type SettingsManager struct {
	storage  *gdata.Manager
	settings *HostSettings
}

// gdata 中的存储位置
const (
	settingsObject   = "settings"
	settingsProperty = "host"
)

// NewSettingsManager 创建设置管理器并立即加载
//
// 加载失败不是致命错误，记录日志后使用默认设置。
func NewSettingsManager(storage *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{storage: storage, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 重新读取已保存的设置
//
// 没有存储或从未保存过时使用默认设置；读取失败时同样回退到默认设置并返回错误。
// 缺失或越界的窗口尺寸会被修正。
func (sm *SettingsManager) Load() error {
	loaded, err := sm.readStored()
	if err != nil || loaded == nil {
		sm.settings = DefaultSettings()
		return err
	}

	defaults := DefaultSettings()
	loaded.WindowWidth = clampWindowSize(loaded.WindowWidth, defaults.WindowWidth)
	loaded.WindowHeight = clampWindowSize(loaded.WindowHeight, defaults.WindowHeight)
	sm.settings = loaded
	log.Printf("[SettingsManager] loaded %dx%d fullscreen=%v", loaded.WindowWidth, loaded.WindowHeight, loaded.Fullscreen)
	return nil
}

// readStored 返回 nil, nil 表示没有已保存的设置
func (sm *SettingsManager) readStored() (*HostSettings, error) {
	if sm.storage == nil || !sm.storage.ObjectPropExists(settingsObject, settingsProperty) {
		return nil, nil
	}

	raw, err := sm.storage.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return nil, fmt.Errorf("read host settings: %w", err)
	}

	hs := DefaultSettings()
	if err := yaml.Unmarshal(raw, hs); err != nil {
		return nil, fmt.Errorf("decode host settings: %w", err)
	}
	return hs, nil
}

// Save 写回 gdata，没有存储时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.storage == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("encode host settings: %w", err)
	}
	if err := sm.storage.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("write host settings: %w", err)
	}
	return nil
}

// GetSettings 返回当前设置（可直接读取，修改请用 Set*）
func (sm *SettingsManager) GetSettings() *HostSettings {
	return sm.settings
}

// SetWindowSize 设置窗口尺寸，非法值回退到默认尺寸
//
// Set* 只修改内存中的设置，持久化需要调用 Save。
func (sm *SettingsManager) SetWindowSize(width, height int) {
	sm.settings.WindowWidth = clampWindowSize(width, DefaultSettings().WindowWidth)
	sm.settings.WindowHeight = clampWindowSize(height, DefaultSettings().WindowHeight)
}

// SetFullscreen 启动时是否全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowStats 设置调试统计显示
func (sm *SettingsManager) SetShowStats(enabled bool) {
	sm.settings.ShowStats = enabled
}

// SetStartFrozen 设置启动时是否进入冻结模式
func (sm *SettingsManager) SetStartFrozen(enabled bool) {
	sm.settings.StartFrozen = enabled
}

// clampWindowSize 把窗口尺寸限制在合法范围内，<= 0 使用 fallback
func clampWindowSize(size, fallback int) int {
	if size <= 0 {
		return fallback
	}
	if size < minWindowSize {
		return minWindowSize
	}
	if size > maxWindowSize {
		return maxWindowSize
	}
	return size
}
