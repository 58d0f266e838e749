package systems

import (
	"errors"
	"image"
	"log"
)

var (
	// ErrNoSurface 粒子场没有绑定绘制表面
	ErrNoSurface = errors.New("drawing surface unavailable")
	// ErrEmptySurface 绘制表面尺寸为零，特效不启动
	ErrEmptySurface = errors.New("drawing surface has zero size")
)

// SurfaceManager owns one software drawing surface and its current size.
//
// Resize takes effect immediately, so the wrap logic of the next frame's
// update already sees the new dimensions.
type SurfaceManager struct {
	name      string
	img       *image.RGBA
	destroyed bool
}

// NewSurfaceManager 创建指定尺寸的表面，负数尺寸按 0 处理
func NewSurfaceManager(name string, width, height int) *SurfaceManager {
	s := &SurfaceManager{name: name}
	s.Resize(width, height)
	return s
}

// Name 返回表面名称（用于日志）
func (s *SurfaceManager) Name() string {
	return s.name
}

// Resize 调整表面尺寸
//
// 尺寸变化时重新分配像素缓冲（内容清空，等同于 canvas 重设宽高）。
// 已销毁的表面忽略调整。返回尺寸是否发生变化。
func (s *SurfaceManager) Resize(width, height int) bool {
	if s.destroyed {
		return false
	}
	width = max(width, 0)
	height = max(height, 0)

	if s.img != nil && s.img.Bounds().Dx() == width && s.img.Bounds().Dy() == height {
		return false
	}

	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	log.Printf("[SurfaceManager] %s resized to %dx%d", s.name, width, height)
	return true
}

// Width 当前宽度
func (s *SurfaceManager) Width() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dx()
}

// Height 当前高度
func (s *SurfaceManager) Height() int {
	if s.img == nil {
		return 0
	}
	return s.img.Bounds().Dy()
}

// Empty 表面是否不可绘制（零尺寸或已销毁）
func (s *SurfaceManager) Empty() bool {
	return s.destroyed || s.Width() == 0 || s.Height() == 0
}

// Image 返回像素缓冲，已销毁时返回 nil
func (s *SurfaceManager) Image() *image.RGBA {
	if s.destroyed {
		return nil
	}
	return s.img
}

// Clear 清空为全透明
func (s *SurfaceManager) Clear() {
	if s.img != nil {
		clear(s.img.Pix)
	}
}

// Destroy 释放像素缓冲，之后表面不可再用
func (s *SurfaceManager) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.img = nil
	log.Printf("[SurfaceManager] %s destroyed", s.name)
}

// Destroyed 是否已销毁
func (s *SurfaceManager) Destroyed() bool {
	return s.destroyed
}
