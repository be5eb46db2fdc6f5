package session

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	// decoders for images imported from disk
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension bounds the width and height of stored profile images.
const DefaultMaxDimension = 512

const defaultImageSize = 128

var (
	avatarBackground = color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}
	avatarForeground = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

// DefaultProfileImage draws the generic avatar shown when no profile image is
// stored: a grey head and shoulders on a light background. The result is
// deterministic.
func DefaultProfileImage() image.Image {
	const n = defaultImageSize
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: avatarBackground}, image.Point{}, draw.Src)

	headX, headY, headR := n/2, n*3/8, n/5
	bodyX, bodyY, bodyR := n/2, n+n/8, n/2

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if inCircle(x, y, headX, headY, headR) || inCircle(x, y, bodyX, bodyY, bodyR) {
				img.SetRGBA(x, y, avatarForeground)
			}
		}
	}
	return img
}

func inCircle(x, y, cx, cy, r int) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// EncodeImage renders img as PNG.
func EncodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes any registered format (PNG, JPEG, GIF, BMP, WebP).
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// LoadImageFile reads and decodes the image at path.
func LoadImageFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return DecodeImage(data)
}

// SaveImageFile writes img to path as PNG.
func SaveImageFile(path string, img image.Image) error {
	data, err := EncodeImage(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write image %s: %w", path, err)
	}
	return nil
}

// FitWithin returns img unchanged when both sides are within limit, otherwise a
// copy scaled down to fit while keeping the aspect ratio. limit <= 0 disables
// scaling.
func FitWithin(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return img
	}

	nw, nh := limit, limit
	if w > h {
		nh = h * limit / w
	} else {
		nw = w * limit / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
