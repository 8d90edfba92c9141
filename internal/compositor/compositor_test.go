package compositor

import "testing"

func TestBlendOpaqueRowsAlphaZeroLeavesDestUnchanged(t *testing.T) {
	dst := []byte{10, 20, 30}
	src := []byte{255, 0, 0, 0} // alpha 0
	orig := append([]byte(nil), dst...)

	BlendOpaqueRows(dst, src, 1, 1)

	for i := range dst {
		if dst[i] != orig[i] {
			t.Fatalf("byte %d changed with alpha=0: got %d, want unchanged %d", i, dst[i], orig[i])
		}
	}
}

func TestBlendOpaqueRowsAlphaFullCopiesSource(t *testing.T) {
	dst := []byte{10, 20, 30}
	src := []byte{1, 2, 3, 255} // alpha 255

	BlendOpaqueRows(dst, src, 1, 1)

	want := []byte{1, 2, 3}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (exact copy at alpha=255)", i, dst[i], want[i])
		}
	}
}

func TestBlendOpaqueRowsPartialAlpha(t *testing.T) {
	dst := []byte{0, 0, 0}
	src := []byte{255, 255, 255, 128}

	BlendOpaqueRows(dst, src, 1, 1)

	// (255*128 + 0*127 + 127) / 255 = 128, matching the documented rounding.
	want := byte((uint32(255)*128 + uint32(0)*127 + 127) / 255)
	for i := range dst {
		if dst[i] != want {
			t.Fatalf("byte %d = %d, want %d", i, dst[i], want)
		}
	}
}

func TestBlendOpaqueRowsMultipleRows(t *testing.T) {
	width, h := 2, 3
	dst := make([]byte, width*h*3)
	src := make([]byte, width*h*4)
	for row := 0; row < h; row++ {
		for x := 0; x < width; x++ {
			so := (row*width + x) * 4
			src[so] = byte(row*10 + x)
			src[so+1] = byte(row*10 + x)
			src[so+2] = byte(row*10 + x)
			src[so+3] = 255
		}
	}

	BlendOpaqueRows(dst, src, width, h)

	for row := 0; row < h; row++ {
		for x := 0; x < width; x++ {
			do := (row*width + x) * 3
			want := byte(row*10 + x)
			if dst[do] != want {
				t.Fatalf("row %d x %d byte 0 = %d, want %d", row, x, dst[do], want)
			}
		}
	}
}

func TestCopyTransparentRowsCopiesExactBytes(t *testing.T) {
	dst := make([]byte, 8)
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	CopyTransparentRows(dst, src, 2, 1)

	for i, b := range src {
		if dst[i] != b {
			t.Fatalf("byte %d = %d, want %d", i, dst[i], b)
		}
	}
}

func TestFillOpaqueFillsAllRows(t *testing.T) {
	dst := make([]byte, 2*3*3)
	FillOpaque(dst, 2, 3, [3]byte{1, 2, 3})
	for i := 0; i < len(dst); i += 3 {
		if dst[i] != 1 || dst[i+1] != 2 || dst[i+2] != 3 {
			t.Fatalf("pixel at offset %d not filled correctly: %v", i, dst[i:i+3])
		}
	}
}

func TestFillTransparentFillsAllRows(t *testing.T) {
	dst := make([]byte, 2*3*4)
	FillTransparent(dst, 2, 3, [4]byte{1, 2, 3, 4})
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 1 || dst[i+1] != 2 || dst[i+2] != 3 || dst[i+3] != 4 {
			t.Fatalf("pixel at offset %d not filled correctly: %v", i, dst[i:i+4])
		}
	}
}
