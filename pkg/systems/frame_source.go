package systems

// FrameHandle 帧请求句柄，0 保留为无效句柄
type FrameHandle uint64

// FrameSource is the host's frame-pacing primitive (the display refresh
// callback). Hosts deliver each pending callback at most once, on the next
// displayed frame.
type FrameSource interface {
	// RequestFrame 注册一个在下一帧执行的回调
	RequestFrame(callback func()) FrameHandle
	// CancelFrame 取消尚未执行的回调；未知或已执行的句柄忽略
	CancelFrame(handle FrameHandle)
}

// FrameQueue 基于显式 Tick 的帧源实现
//
// 桌面端在 ebiten 的 Update 中调用 Tick，终端端在定时器中调用，
// 测试中直接手动调用，从而与真实的帧节奏解耦。
//
// 单线程使用，不加锁。
type FrameQueue struct {
	next      FrameHandle
	order     []FrameHandle
	callbacks map[FrameHandle]func()
}

// NewFrameQueue 创建空的帧队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		callbacks: make(map[FrameHandle]func()),
	}
}

// RequestFrame 注册回调并返回句柄
func (q *FrameQueue) RequestFrame(callback func()) FrameHandle {
	q.next++
	h := q.next
	q.callbacks[h] = callback
	q.order = append(q.order, h)
	return h
}

// CancelFrame 取消回调
func (q *FrameQueue) CancelFrame(handle FrameHandle) {
	delete(q.callbacks, handle)
}

// Tick 执行本帧开始时已注册的所有回调，返回执行数量
//
// 回调执行期间新注册的请求留到下一次 Tick。
// 同一批次中被提前取消的回调不会执行。
func (q *FrameQueue) Tick() int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, h := range batch {
		cb, ok := q.callbacks[h]
		if !ok {
			continue
		}
		delete(q.callbacks, h)
		cb()
		ran++
	}
	return ran
}

// Pending 返回尚未执行的回调数量
func (q *FrameQueue) Pending() int {
	return len(q.callbacks)
}
