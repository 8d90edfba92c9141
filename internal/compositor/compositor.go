// Package compositor implements the pixel compositor (C1): straight-alpha
// over-compositing of one row-slice of source pixels onto a destination
// background. It is the hot inner loop of the frame pipeline, so it works
// directly on row-major byte slices and avoids per-pixel allocation.
package compositor

// BlendOpaqueRows alpha-blends h rows of straight-alpha RGBA src pixels over
// an opaque RGB destination, in place. src and dst must each contain at
// least h*width*{4,3} bytes starting at offset 0; both are assumed already
// sliced to the rows being blended.
//
// out = src_rgb*a + dst_rgb*(1-a), per channel, with a = src_alpha/255.
func BlendOpaqueRows(dst []byte, src []byte, width, h int) {
	for row := 0; row < h; row++ {
		srcRow := src[row*width*4 : (row+1)*width*4]
		dstRow := dst[row*width*3 : (row+1)*width*3]
		for x := 0; x < width; x++ {
			so := x * 4
			do := x * 3
			a := uint32(srcRow[so+3])
			if a == 255 {
				dstRow[do] = srcRow[so]
				dstRow[do+1] = srcRow[so+1]
				dstRow[do+2] = srcRow[so+2]
				continue
			}
			if a == 0 {
				continue
			}
			inv := 255 - a
			dstRow[do] = blendByte(srcRow[so], dstRow[do], a, inv)
			dstRow[do+1] = blendByte(srcRow[so+1], dstRow[do+1], a, inv)
			dstRow[do+2] = blendByte(srcRow[so+2], dstRow[do+2], a, inv)
		}
	}
}

func blendByte(src, dst byte, a, inv uint32) byte {
	return byte((uint32(src)*a + uint32(dst)*inv + 127) / 255)
}

// CopyTransparentRows copies h rows of straight-alpha RGBA src pixels
// directly into dst, unblended. Used on the transparent output path where
// the destination frame is itself RGBA and windowed content is composited
// by the encoder/consumer downstream, not by this package.
func CopyTransparentRows(dst []byte, src []byte, width, h int) {
	n := h * width * 4
	copy(dst[:n], src[:n])
}

// FillOpaque fills h rows of an RGB destination with a solid color.
func FillOpaque(dst []byte, width, h int, rgb [3]byte) {
	stride := width * 3
	for row := 0; row < h; row++ {
		r := dst[row*stride : (row+1)*stride]
		for x := 0; x < width; x++ {
			o := x * 3
			r[o] = rgb[0]
			r[o+1] = rgb[1]
			r[o+2] = rgb[2]
		}
	}
}

// FillTransparent fills h rows of an RGBA destination with a solid RGBA color.
func FillTransparent(dst []byte, width, h int, rgba [4]byte) {
	stride := width * 4
	for row := 0; row < h; row++ {
		r := dst[row*stride : (row+1)*stride]
		for x := 0; x < width; x++ {
			o := x * 4
			r[o] = rgba[0]
			r[o+1] = rgba[1]
			r[o+2] = rgba[2]
			r[o+3] = rgba[3]
		}
	}
}
