package components

// FrameContext carries the per-frame external inputs handed to every animated
// layer by the AnimationScheduler.
//
// All kinematics are expressed per displayed frame, not per wall-clock unit.
type FrameContext struct {
	// Frame 调度器已经执行的帧序号（从 1 开始）
	Frame uint64

	// ScrollVelocity 最近一次滚动信号的位移差（有符号）
	ScrollVelocity float64
}
