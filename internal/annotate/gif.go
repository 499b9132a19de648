package annotate

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"gocv.io/x/gocv"
	xdraw "golang.org/x/image/draw"
)

// WriteGIF encodes frames as an animated GIF at path. Frames wider than
// maxWidth are downscaled proportionally before quantization to keep file
// sizes reasonable. fps sets the frame delay; the GIF loops forever.
func WriteGIF(frames []gocv.Mat, path string, maxWidth int, fps float64) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if fps <= 0 {
		fps = 30
	}
	// GIF delays are in hundredths of a second.
	delay := int(100 / fps)
	if delay < 2 {
		delay = 2
	}

	anim := &gif.GIF{LoopCount: 0}
	for i := range frames {
		img, err := frames[i].ToImage()
		if err != nil {
			return fmt.Errorf("converting frame %d: %w", i, err)
		}

		img = downscale(img, maxWidth)

		paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// downscale resizes img to at most maxWidth pixels wide, preserving the
// aspect ratio. Images already narrow enough are returned unchanged.
func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	scale := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
