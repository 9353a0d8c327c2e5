package blogkit

import "fmt"

// ImageSize is one of the fixed raster sizes generated per post.
type ImageSize struct {
	Width  int
	Height int
}

// The three sizes every post gets: OpenGraph card, featured banner, thumbnail.
var ImageSizes = []ImageSize{
	{Width: 1200, Height: 630},
	{Width: 1200, Height: 400},
	{Width: 800, Height: 384},
}

// ImageFilename is the canonical filename for a generated image. The
// structured-data generator and the image generator both call this, so the
// URLs emitted in JSON-LD always match the files written to disk.
func ImageFilename(width, height int, text string) string {
	return fmt.Sprintf("%dx%d-%s.png", width, height, Slugify(text))
}
