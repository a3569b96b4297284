package material

import "image"

// DefaultTextureSize is the tile edge length used by Generate.
const DefaultTextureSize = 256

// Canonical generator parameters, matching the stock texture set.
const (
	defaultGridLineWidth = 2
	defaultNoiseSeed     = 42
	defaultCheckerTile   = 32
)

// Generate produces the procedural tile for the texture type, or nil for
// TextureNone. Non-positive sizes use DefaultTextureSize.
func (t TextureType) Generate(size int) *image.NRGBA {
	if size <= 0 {
		size = DefaultTextureSize
	}
	switch t {
	case TextureGrid:
		return GridTexture(size, defaultGridLineWidth)
	case TextureNoise:
		return NoiseTexture(size, defaultNoiseSeed)
	case TextureChecker:
		return CheckerTexture(size, defaultCheckerTile)
	default:
		return nil
	}
}

// GridTexture draws bright grid lines over a grey field. The tile divides
// into 8 cells per side.
func GridTexture(size, lineWidth int) *image.NRGBA {
	cell := size / 8
	if cell < 1 {
		cell = 1
	}
	return fillGrey(size, func(x, y int) uint8 {
		if x%cell < lineWidth || y%cell < lineWidth {
			return 255
		}
		return 180
	})
}

// NoiseTexture fills the tile with seeded hash noise, blended toward mid
// grey so it tints rather than overwhelms the base color.
func NoiseTexture(size int, seed uint32) *image.NRGBA {
	return fillGrey(size, func(x, y int) uint8 {
		hash := (uint32(x)*374761393 ^ uint32(y)*668265263 ^ seed*1013904223) * 1664525
		val := int(hash>>24) & 0xFF
		return uint8(128 + (val-128)/2)
	})
}

// CheckerTexture alternates light and dark tiles of the given size.
func CheckerTexture(size, tileSize int) *image.NRGBA {
	if tileSize < 1 {
		tileSize = 1
	}
	return fillGrey(size, func(x, y int) uint8 {
		if (x/tileSize+y/tileSize)%2 == 0 {
			return 220
		}
		return 160
	})
}

// fillGrey builds an opaque greyscale RGBA tile from a per-pixel value
// function.
func fillGrey(size int, value func(x, y int) uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		row := y * img.Stride
		for x := 0; x < size; x++ {
			v := value(x, y)
			o := row + x*4
			img.Pix[o+0] = v
			img.Pix[o+1] = v
			img.Pix[o+2] = v
			img.Pix[o+3] = 255
		}
	}
	return img
}
