package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

type ImageLoader struct{}

// DecodeImage converts any decoded image into tightly packed RGBA8 pixels.
func DecodeImage(img image.Image, flipY bool) *metadata.ImageResourceData {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	w, h := bounds.Dx(), bounds.Dy()
	pixels := rgba.Pix
	if flipY {
		stride := w * 4
		flipped := make([]uint8, len(pixels))
		for y := 0; y < h; y++ {
			copy(flipped[y*stride:(y+1)*stride], pixels[(h-1-y)*stride:(h-y)*stride])
		}
		pixels = flipped
	}

	return &metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(w),
		Height:       uint32(h),
		Pixels:       pixels,
	}
}

func (il *ImageLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	var flip bool
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + format,
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(info.Size()),
		Data:     DecodeImage(img, flip),
	}, nil
}

func (il *ImageLoader) Unload(res *metadata.Resource) error {
	if res == nil {
		return nil
	}
	res.Data = nil
	return nil
}
