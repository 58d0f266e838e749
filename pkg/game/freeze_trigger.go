package game

// TriggerKey 宿主无关的按键编码
type TriggerKey int

const (
	KeyOther TriggerKey = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyA
	KeyB
	KeyQuestion // '?' 或 '/'
)

// konamiSequence ↑↑↓↓←→←→BA
var konamiSequence = []TriggerKey{KeyUp, KeyUp, KeyDown, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA}

// DefaultClickWindow 连击判定窗口（帧数，约 1 秒）
const DefaultClickWindow = 60

// FreezeTrigger 识别冻结模式的隐藏开关
//
//   - '?' / '/' 键立即触发
//   - 按顺序输入 Konami 序列触发；不匹配的键使进度回退
//   - 在 ClickWindow 帧内连续点击 3 次触发
type FreezeTrigger struct {
	ClickWindow uint64

	konami     int
	clicks     int
	firstClick uint64
}

// NewFreezeTrigger 创建开关识别器
func NewFreezeTrigger() *FreezeTrigger {
	return &FreezeTrigger{ClickWindow: DefaultClickWindow}
}

// Key 输入一个按键，返回是否触发
func (t *FreezeTrigger) Key(k TriggerKey) bool {
	if k == KeyQuestion {
		return true
	}

	if k == konamiSequence[t.konami] {
		t.konami++
		if t.konami == len(konamiSequence) {
			t.konami = 0
			return true
		}
		return false
	}

	// ↑↑↑ 仍然保留 ↑↑ 前缀，其它情况下当前键可能是新序列的开头
	switch {
	case k == KeyUp && t.konami == 2:
	case k == konamiSequence[0]:
		t.konami = 1
	default:
		t.konami = 0
	}
	return false
}

// Click 记录一次点击（frame 为宿主当前帧号），返回是否触发
func (t *FreezeTrigger) Click(frame uint64) bool {
	if t.clicks > 0 && frame-t.firstClick > t.ClickWindow {
		t.clicks = 0
	}
	if t.clicks == 0 {
		t.firstClick = frame
	}

	t.clicks++
	if t.clicks >= 3 {
		t.clicks = 0
		return true
	}
	return false
}
