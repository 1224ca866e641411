package gesture

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale resizes img to size with bilinear filtering. Images that already
// have the requested size are returned unchanged.
func Downscale(img image.Image, size image.Point) image.Image {
	b := img.Bounds()
	if b.Dx() == size.X && b.Dy() == size.Y {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
