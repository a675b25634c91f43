// Package compose builds timed, transformed clips from still images and
// sequences them into a single timeline.
package compose

import "math"

// Geometry describes the resize-to-cover plus center-crop transform that maps
// a source image onto the target frame. Every frame produced through it has
// exactly Width x Height pixels regardless of the source aspect ratio.
type Geometry struct {
	// Source dimensions after uniform cover scaling.
	ScaledWidth  int
	ScaledHeight int
	// Top-left corner of the centered crop within the scaled image.
	CropX int
	CropY int
	// Target frame dimensions.
	Width  int
	Height int
}

// Cover computes cover-scale geometry: the image is scaled uniformly by
// max(tgtW/srcW, tgtH/srcH) so it fully covers the target rectangle, then
// cropped symmetrically around its center to exactly tgtW x tgtH.
func Cover(srcW, srcH, tgtW, tgtH int) Geometry {
	scale := math.Max(float64(tgtW)/float64(srcW), float64(tgtH)/float64(srcH))

	// The epsilon keeps float noise from bumping an exact fit up a pixel.
	scaledW := int(math.Ceil(float64(srcW)*scale - 1e-9))
	scaledH := int(math.Ceil(float64(srcH)*scale - 1e-9))
	if scaledW < tgtW {
		scaledW = tgtW
	}
	if scaledH < tgtH {
		scaledH = tgtH
	}

	return Geometry{
		ScaledWidth:  scaledW,
		ScaledHeight: scaledH,
		CropX:        (scaledW - tgtW) / 2,
		CropY:        (scaledH - tgtH) / 2,
		Width:        tgtW,
		Height:       tgtH,
	}
}
