package utils

import (
	"image"
	"image/color"
	"testing"
)

// TestHSVA 测试 HSV 到 RGBA 的转换
func TestHSVA(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		a       float64
		want    color.NRGBA
	}{
		{"白色", 0, 0, 1, 1, color.NRGBA{255, 255, 255, 255}},
		{"红色", 0, 1, 1, 0.5, color.NRGBA{255, 0, 0, 128}},
		{"色相取模", 360 + 120, 1, 1, 1, color.NRGBA{0, 255, 0, 255}},
		{"负色相", -120, 1, 1, 1, color.NRGBA{0, 0, 255, 255}},
		{"透明度截断", 0, 0, 0, 2, color.NRGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HSVA(tt.h, tt.s, tt.v, tt.a)
			if err != nil {
				t.Fatalf("HSVA() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HSVA(%v, %v, %v, %v) = %v, 期望 %v", tt.h, tt.s, tt.v, tt.a, got, tt.want)
			}
		})
	}
}

// TestHSVAIceBlue 霜花填充色接近 rgb(200, 240, 255)
func TestHSVAIceBlue(t *testing.T) {
	c, err := HSVA(195, 0.216, 1, 0.3)
	if err != nil {
		t.Fatalf("HSVA() error: %v", err)
	}
	near := func(got uint8, want int) bool {
		d := int(got) - want
		return d >= -3 && d <= 3
	}
	if !near(c.R, 200) || !near(c.G, 240) || !near(c.B, 255) || !near(c.A, 77) {
		t.Errorf("ice blue = %v, want ~{200 240 255 77}", c)
	}
}

// TestScaleAlpha 测试整体透明度缩放
func TestScaleAlpha(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 200}
	if got := ScaleAlpha(c, 0.5); got.A != 100 || got.R != 10 {
		t.Errorf("ScaleAlpha(0.5) = %v", got)
	}
	if got := ScaleAlpha(c, 0); got.A != 0 {
		t.Errorf("ScaleAlpha(0) alpha = %d, want 0", got.A)
	}
	if got := ScaleAlpha(c, 5); got.A != 255 {
		t.Errorf("ScaleAlpha(5) alpha = %d, want 255", got.A)
	}
}

// TestCompositeOver 测试软件表面合成
func TestCompositeOver(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	CompositeOver(dst, src, 1)
	if c := dst.RGBAAt(1, 1); c.A != 255 {
		t.Errorf("full alpha composite = %v, want opaque", c)
	}

	dst = image.NewRGBA(image.Rect(0, 0, 4, 4))
	CompositeOver(dst, src, 0.5)
	if c := dst.RGBAAt(1, 1); c.A < 126 || c.A > 129 {
		t.Errorf("half alpha composite alpha = %d, want ~128", c.A)
	}
	if c := dst.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("transparent source pixel changed dst: %v", c)
	}

	dst = image.NewRGBA(image.Rect(0, 0, 4, 4))
	CompositeOver(dst, src, 0)
	CompositeOver(dst, nil, 1)
	CompositeOver(nil, src, 1)
	if c := dst.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("zero alpha composite = %v, want untouched", c)
	}
}
