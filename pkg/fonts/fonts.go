// Package fonts provides TrueType faces for raster text rendering.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so PNG output never depends on fonts installed on the host. The
// family covers Latin and Greek, which the chart labels need for θ and °.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family matching the embedded faces.
const FontFamily = "Go, 'Helvetica Neue', Arial, sans-serif"

var (
	regular, bold *truetype.Font
	parseOnce     sync.Once
	parseErr      error
	faceMu        sync.Mutex
	faceCache     = map[faceKey]font.Face{}
)

type faceKey struct {
	size float64
	bold bool
}

func parse() {
	regular, parseErr = truetype.Parse(goregular.TTF)
	if parseErr != nil {
		parseErr = fmt.Errorf("parse goregular: %w", parseErr)
		return
	}
	bold, parseErr = truetype.Parse(gobold.TTF)
	if parseErr != nil {
		parseErr = fmt.Errorf("parse gobold: %w", parseErr)
	}
}

// Face returns a face of the given pixel size. Faces are cached by size and
// weight and are safe to share between sequential renders.
func Face(size float64, isBold bool) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}

	key := faceKey{size: size, bold: isBold}
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[key]; ok {
		return f, nil
	}

	ttf := regular
	if isBold {
		ttf = bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[key] = f
	return f, nil
}
