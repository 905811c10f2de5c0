package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImageService_ResizeImage(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxSize    int
		wantW      int
		wantH      int
	}{
		{"wide image scales to max width", 80, 40, 20, 20, 10},
		{"tall image scales to max height", 40, 80, 20, 10, 20},
		{"small image keeps its size", 16, 12, 100, 16, 12},
	}

	svc := NewImageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodePNG(t, tt.srcW, tt.srcH)

			out, err := svc.ResizeImage(context.Background(), data, tt.maxSize, tt.maxSize)
			if err != nil {
				t.Fatalf("ResizeImage failed: %v", err)
			}

			// Always JPEG, whatever went in
			img, err := jpeg.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output is not JPEG: %v", err)
			}
			bounds := img.Bounds()
			if bounds.Dx() != tt.wantW || bounds.Dy() != tt.wantH {
				t.Errorf("resized to %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestImageService_ResizeImage_NotAnImage(t *testing.T) {
	svc := NewImageService()
	if _, err := svc.ResizeImage(context.Background(), []byte("not image data"), 100, 100); err == nil {
		t.Error("expected an error for undecodable input")
	}
}
