package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"golang.org/x/image/draw"
)

const (
	svgMediaType = "image/svg+xml"

	// resizeJPEGQuality applies when only maxWidth asks for a JPEG re-encode.
	resizeJPEGQuality = 90
)

// Optimizer transforms image bytes for the file extension ext.
type Optimizer interface {
	Optimize(ext string, data []byte) ([]byte, error)
}

// ImageOptions controls lossy and resizing steps. The zero value keeps
// every transform lossless.
type ImageOptions struct {
	JPEGQuality int // 0 keeps JPEG bytes; 1-100 re-encodes
	MaxWidth    int // 0 never downscales
}

// String renders the options for cache keys.
func (o ImageOptions) String() string {
	return fmt.Sprintf("jpegQuality=%d,maxWidth=%d", o.JPEGQuality, o.MaxWidth)
}

// ImageOptimizer re-encodes images by extension. Safe for concurrent use.
type ImageOptimizer struct {
	opts ImageOptions
	m    *minify.M
}

// NewImageOptimizer creates an ImageOptimizer with the given options.
func NewImageOptimizer(opts ImageOptions) *ImageOptimizer {
	m := minify.New()
	m.Add(svgMediaType, &svg.Minifier{})
	return &ImageOptimizer{opts: opts, m: m}
}

// Options returns the optimizer settings.
func (o *ImageOptimizer) Options() ImageOptions {
	return o.opts
}

// Optimize returns the optimized bytes for an image with extension ext.
// Unknown extensions are returned unchanged. Unless the image was downscaled,
// the original bytes win when re-encoding does not shrink them.
func (o *ImageOptimizer) Optimize(ext string, data []byte) ([]byte, error) {
	var (
		out     []byte
		resized bool
		err     error
	)

	switch strings.ToLower(ext) {
	case ".png":
		out, resized, err = o.optimizePNG(data)
	case ".gif":
		out, err = optimizeGIF(data)
	case ".jpg", ".jpeg":
		out, resized, err = o.optimizeJPEG(data)
	case ".svg":
		out, err = o.m.Bytes(svgMediaType, data)
		if err != nil {
			err = fmt.Errorf("%w: svg: %v", ErrImageDecode, err)
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	if !resized && len(out) >= len(data) {
		return data, nil
	}
	return out, nil
}

func (o *ImageOptimizer) optimizePNG(data []byte) ([]byte, bool, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("%w: png: %v", ErrImageDecode, err)
	}
	img, resized := o.downscale(img)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, false, fmt.Errorf("%w: png: %v", ErrImageEncode, err)
	}
	return buf.Bytes(), resized, nil
}

// optimizeGIF re-encodes every frame with its own palette. Animated GIFs are
// never resized.
func optimizeGIF(data []byte) ([]byte, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: gif: %v", ErrImageDecode, err)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("%w: gif: %v", ErrImageEncode, err)
	}
	return buf.Bytes(), nil
}

func (o *ImageOptimizer) optimizeJPEG(data []byte) ([]byte, bool, error) {
	if o.opts.JPEGQuality == 0 && o.opts.MaxWidth == 0 {
		return data, false, nil
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("%w: jpeg: %v", ErrImageDecode, err)
	}
	img, resized := o.downscale(img)

	quality := o.opts.JPEGQuality
	if quality == 0 {
		if !resized {
			return data, false, nil
		}
		quality = resizeJPEGQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, false, fmt.Errorf("%w: jpeg: %v", ErrImageEncode, err)
	}
	return buf.Bytes(), resized, nil
}

// downscale shrinks img to MaxWidth keeping the aspect ratio.
func (o *ImageOptimizer) downscale(img image.Image) (image.Image, bool) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if o.opts.MaxWidth <= 0 || w <= o.opts.MaxWidth {
		return img, false
	}

	newH := max(h*o.opts.MaxWidth/w, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, o.opts.MaxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst, true
}

// Compile-time interface check.
var _ Optimizer = (*ImageOptimizer)(nil)
