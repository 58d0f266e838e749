package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时 HOME 下打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	storage, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return storage
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.WindowWidth != 1280 || settings.WindowHeight != 720 {
		t.Errorf("window size: got %dx%d, want 1280x720", settings.WindowWidth, settings.WindowHeight)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.ShowStats {
		t.Error("ShowStats: got true, want false")
	}
	if settings.StartFrozen {
		t.Error("StartFrozen: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 没有存储时退化为仅内存设置
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if settings.WindowWidth != 1280 {
		t.Errorf("Degraded mode WindowWidth: got %v, want 1280", settings.WindowWidth)
	}

	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	sm.SetShowStats(true)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().ShowStats {
		t.Error("After Load() in degraded mode settings should reset to defaults")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	storage := openTestStorage(t, "test_icefx_settings")

	sm1 := NewSettingsManager(storage)
	sm1.SetWindowSize(1920, 1080)
	sm1.SetFullscreen(true)
	sm1.SetShowStats(true)
	sm1.SetStartFrozen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(storage)
	settings := sm2.GetSettings()

	if settings.WindowWidth != 1920 || settings.WindowHeight != 1080 {
		t.Errorf("Loaded window size: got %dx%d, want 1920x1080", settings.WindowWidth, settings.WindowHeight)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if !settings.ShowStats {
		t.Error("Loaded ShowStats: got false, want true")
	}
	if !settings.StartFrozen {
		t.Error("Loaded StartFrozen: got false, want true")
	}
}

// TestSettingsLoadCorrupted 测试存储内容损坏时回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	storage := openTestStorage(t, "test_icefx_settings_corrupted")

	if err := storage.SaveObjectProp(settingsObject, settingsProperty, []byte("windowWidth: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(storage)
	if sm.GetSettings().WindowWidth != 1280 {
		t.Errorf("WindowWidth after corrupted load: got %d, want 1280", sm.GetSettings().WindowWidth)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
}

// TestSettingsLoadClampsWindow 测试加载时修正越界的窗口尺寸
func TestSettingsLoadClampsWindow(t *testing.T) {
	storage := openTestStorage(t, "test_icefx_settings_clamp")

	data := []byte("windowWidth: 20\nwindowHeight: 100000\nshowStats: true\n")
	if err := storage.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	settings := NewSettingsManager(storage).GetSettings()
	if settings.WindowWidth != minWindowSize {
		t.Errorf("WindowWidth: got %d, want %d", settings.WindowWidth, minWindowSize)
	}
	if settings.WindowHeight != maxWindowSize {
		t.Errorf("WindowHeight: got %d, want %d", settings.WindowHeight, maxWindowSize)
	}
	if !settings.ShowStats {
		t.Error("ShowStats: got false, want true")
	}
}

// TestClampWindowSize 测试 clampWindowSize 辅助函数
func TestClampWindowSize(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{800, 800},
		{0, 1280},
		{-5, 1280},
		{10, minWindowSize},
		{minWindowSize, minWindowSize},
		{maxWindowSize + 1, maxWindowSize},
	}

	for _, tt := range tests {
		if result := clampWindowSize(tt.input, 1280); result != tt.expected {
			t.Errorf("clampWindowSize(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}

// TestGetSettings 测试 GetSettings() 返回同一实例
func TestGetSettings(t *testing.T) {
	sm := NewSettingsManager(nil)

	settings1 := sm.GetSettings()
	settings2 := sm.GetSettings()
	if settings1 != settings2 {
		t.Error("GetSettings() should return the same instance")
	}

	sm.SetWindowSize(0, 0)
	if settings1.WindowWidth != 1280 || settings1.WindowHeight != 720 {
		t.Errorf("SetWindowSize(0, 0) should fall back to defaults, got %dx%d", settings1.WindowWidth, settings1.WindowHeight)
	}
}
