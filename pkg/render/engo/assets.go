// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// ShipSpriteSize is the edge length of the generated ship texture in pixels
const ShipSpriteSize = 32

// AssetManager handles loading and managing game assets
type AssetManager struct {
	shipSprite common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// LoadAssets builds the ship texture. It needs a live GL context.
func (am *AssetManager) LoadAssets() error {
	am.shipSprite = common.NewTextureSingle(common.NewImageObject(ShipImage(ShipSpriteSize)))
	return nil
}

// ShipSprite returns the ship texture, or nil before LoadAssets
func (am *AssetManager) ShipSprite() common.Drawable {
	return am.shipSprite
}

// ShipImage draws a size x size triangle whose tip points down the image,
// which is the ship's forward direction on screen at heading zero.
func ShipImage(size int) *image.NRGBA {
	img := createBaseImage(size, size)
	hull := color.NRGBA{200, 230, 255, 255}
	nose := color.NRGBA{255, 120, 80, 255}

	center := float32(size-1) / 2
	for y := 0; y < size; y++ {
		// Half-width shrinks linearly from the full edge at the top to zero
		// at the tip.
		half := center * float32(size-1-y) / float32(size-1)
		for x := 0; x < size; x++ {
			dx := float32(x) - center
			if dx < 0 {
				dx = -dx
			}
			if dx > half+0.5 {
				continue
			}
			if y >= size*3/4 {
				img.SetNRGBA(x, y, nose)
			} else {
				img.SetNRGBA(x, y, hull)
			}
		}
	}
	return img
}

// createBaseImage creates a transparent image with the specified dimensions.
func createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}
