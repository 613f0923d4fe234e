package headlessterm

import (
	"image/color"
)

// Sixel decoder bounds (spec.md §4.8): images are clamped to a maximum
// width/height so a hostile or malformed stream can't force an unbounded
// allocation.
const (
	sixelMaxWidth  = 4096
	sixelMaxHeight = 4096
	sixelBandRows  = 6 // a sixel band covers 6 vertical pixels
)

// SixelImage represents a decoded Sixel image.
type SixelImage struct {
	Width       uint32
	Height      uint32
	Data        []byte // RGBA pixel data
	Transparent bool   // Whether background is transparent
}

// sixelParser decodes a DCS sixel stream into a scanline buffer: one []byte
// of packed RGBA per band (6 rows), grown a band at a time as the stream
// advances, rather than a sparse per-pixel map. This mirrors how real sixel
// decoders (e.g. libsixel) lay out the image: a raster attribute ("Ph;Pv)
// sets the expected bounds up front when present, '$' returns to column 0,
// '-' moves to the next band, and a band's storage is allocated when the
// first sixel is drawn into it.
type sixelParser struct {
	palette    [256]color.RGBA
	colorIndex int

	x, bandY int // x = column in current band; bandY = index of current band (row/6)

	declaredW, declaredH int // from raster attributes, 0 if unset
	maxX, maxBandY       int // high-water marks, used when no raster attrs given

	bands       [][]byte // bands[i] is a sixelBandRows*rowCap RGBA scanline group, row-major within the band
	rowCap      int       // current allocated width (in pixels) per band
	transparent bool
}

// ParseSixel parses Sixel data and returns an RGBA image.
// params contains the DCS parameters (P1;P2;P3).
// data contains the raw Sixel bytes after 'q'.
func ParseSixel(params []int64, data []byte) (*SixelImage, error) {
	p := &sixelParser{
		colorIndex: 0,
	}

	p.initDefaultPalette()

	// P1: pixel aspect ratio numerator (ignored)
	// P2: background select (0=device default, 1=no change, 2=set to color 0)
	// P3: horizontal grid size (ignored)
	if len(params) >= 2 && params[1] == 1 {
		p.transparent = true
	}

	p.parse(data)

	return p.toImage(), nil
}

// initDefaultPalette sets up the default VGA 16-color palette.
func (p *sixelParser) initDefaultPalette() {
	vgaColors := []color.RGBA{
		{0, 0, 0, 255},       // 0: Black
		{0, 0, 205, 255},     // 1: Blue
		{205, 0, 0, 255},     // 2: Red
		{205, 0, 205, 255},   // 3: Magenta
		{0, 205, 0, 255},     // 4: Green
		{0, 205, 205, 255},   // 5: Cyan
		{205, 205, 0, 255},   // 6: Yellow
		{205, 205, 205, 255}, // 7: White
		{0, 0, 0, 255},       // 8: Black (repeat for HLS)
		{0, 0, 255, 255},     // 9: Bright Blue
		{255, 0, 0, 255},     // 10: Bright Red
		{255, 0, 255, 255},   // 11: Bright Magenta
		{0, 255, 0, 255},     // 12: Bright Green
		{0, 255, 255, 255},   // 13: Bright Cyan
		{255, 255, 0, 255},   // 14: Bright Yellow
		{255, 255, 255, 255}, // 15: Bright White
	}

	copy(p.palette[:], vgaColors)

	for i := 16; i < 256; i++ {
		gray := uint8((i - 16) * 255 / 239)
		p.palette[i] = color.RGBA{gray, gray, gray, 255}
	}
}

// parse processes the sixel byte stream.
func (p *sixelParser) parse(data []byte) {
	i := 0
	for i < len(data) {
		b := data[i]
		i++

		switch {
		case b == '$':
			// Carriage return - go to beginning of current sixel band.
			p.x = 0

		case b == '-':
			// New line - advance to the next band and go to beginning.
			p.x = 0
			p.bandY++

		case b == '!':
			// Repeat introducer: !<count><sixel>
			count, newI := p.parseNumber(data, i)
			i = newI
			if i < len(data) {
				sixel := data[i]
				i++
				if sixel >= '?' && sixel <= '~' {
					p.drawSixel(sixel, int(count))
				}
			}

		case b == '#':
			// Color introducer: #<index> or #<index>;<type>;<v1>;<v2>;<v3>
			colorNum, newI := p.parseNumber(data, i)
			i = newI

			if i < len(data) && data[i] == ';' {
				i++ // skip ';'
				colorType, newI := p.parseNumber(data, i)
				i = newI

				if i < len(data) && data[i] == ';' {
					i++ // skip ';'
					v1, newI := p.parseNumber(data, i)
					i = newI

					if i < len(data) && data[i] == ';' {
						i++ // skip ';'
						v2, newI := p.parseNumber(data, i)
						i = newI

						if i < len(data) && data[i] == ';' {
							i++ // skip ';'
							v3, newI := p.parseNumber(data, i)
							i = newI

							if colorNum >= 0 && colorNum < 256 {
								if colorType == 1 {
									p.palette[colorNum] = hlsToRGB(int(v1), int(v2), int(v3))
								} else {
									r := uint8(v1 * 255 / 100)
									g := uint8(v2 * 255 / 100)
									b := uint8(v3 * 255 / 100)
									p.palette[colorNum] = color.RGBA{r, g, b, 255}
								}
							}
						}
					}
				}
			}

			if colorNum >= 0 && colorNum < 256 {
				p.colorIndex = int(colorNum)
			}

		case b >= '?' && b <= '~':
			p.drawSixel(b, 1)

		case b == '"':
			// Raster attributes: "<Pan>;<Pad>;<Ph>;<Pv>. Pan/Pad (aspect
			// ratio) are parsed and discarded; Ph/Pv bound the image ahead
			// of the first sixel byte, per spec.md §4.8's raster-bounds
			// requirement, clamped to the decoder's max dimensions.
			_, newI := p.parseNumber(data, i)
			i = newI
			if i < len(data) && data[i] == ';' {
				i++
				_, newI := p.parseNumber(data, i)
				i = newI
				if i < len(data) && data[i] == ';' {
					i++
					ph, newI := p.parseNumber(data, i)
					i = newI
					if i < len(data) && data[i] == ';' {
						i++
						pv, newI := p.parseNumber(data, i)
						i = newI
						p.declaredW = clampDim(int(ph))
						p.declaredH = clampDim(int(pv))
					}
				}
			}
		}
	}
}

func clampDim(v int) int {
	if v < 0 {
		return 0
	}
	if v > sixelMaxWidth {
		return sixelMaxWidth
	}
	return v
}

// parseNumber parses a decimal number from data starting at index i.
func (p *sixelParser) parseNumber(data []byte, i int) (int64, int) {
	var n int64
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int64(data[i]-'0')
		i++
	}
	return n, i
}

// ensureBand grows p.bands to cover bandIdx, allocating a fresh
// sixelBandRows-high scanline group sized to the current rowCap.
func (p *sixelParser) ensureBand(bandIdx int) {
	if bandIdx >= sixelMaxHeight/sixelBandRows {
		return
	}
	for len(p.bands) <= bandIdx {
		p.bands = append(p.bands, nil)
	}
	if p.bands[bandIdx] == nil {
		cap := p.rowCap
		if cap == 0 {
			cap = 1
		}
		p.bands[bandIdx] = make([]byte, sixelBandRows*cap*4)
	}
}

// ensureWidth grows every allocated band's row capacity to at least w,
// copying existing pixel data into the wider layout.
func (p *sixelParser) ensureWidth(w int) {
	if w <= p.rowCap {
		return
	}
	if w > sixelMaxWidth {
		w = sixelMaxWidth
	}
	for i, band := range p.bands {
		if band == nil {
			continue
		}
		grown := make([]byte, sixelBandRows*w*4)
		for row := 0; row < sixelBandRows; row++ {
			copy(grown[row*w*4:row*w*4+p.rowCap*4], band[row*p.rowCap*4:(row+1)*p.rowCap*4])
		}
		p.bands[i] = grown
	}
	p.rowCap = w
}

// drawSixel draws a sixel character at the current position.
// A sixel represents 6 vertical pixels encoded in 6 bits.
func (p *sixelParser) drawSixel(b byte, count int) {
	if count <= 0 {
		count = 1
	}
	if p.x >= sixelMaxWidth {
		return
	}

	bits := b - '?'
	c := p.palette[p.colorIndex]

	endX := p.x + count
	if endX > sixelMaxWidth {
		endX = sixelMaxWidth
	}
	if endX > p.rowCap {
		p.ensureWidth(endX)
	}
	p.ensureBand(p.bandY)
	if p.bandY >= len(p.bands) {
		return
	}

	band := p.bands[p.bandY]
	for col := p.x; col < endX; col++ {
		for bit := 0; bit < sixelBandRows; bit++ {
			if bits&(1<<bit) == 0 {
				continue
			}
			off := (bit*p.rowCap + col) * 4
			band[off+0] = c.R
			band[off+1] = c.G
			band[off+2] = c.B
			band[off+3] = c.A
		}
	}

	if endX-1 > p.maxX {
		p.maxX = endX - 1
	}
	if p.bandY > p.maxBandY {
		p.maxBandY = p.bandY
	}

	p.x = endX
}

// toImage flattens the band buffer into a single RGBA image, honoring
// declared raster bounds when present and falling back to the observed
// high-water mark otherwise.
func (p *sixelParser) toImage() *SixelImage {
	width := p.declaredW
	if width == 0 {
		width = p.maxX + 1
	}
	height := p.declaredH
	if height == 0 {
		height = (p.maxBandY + 1) * sixelBandRows
	}
	if width <= 0 || height <= 0 || len(p.bands) == 0 {
		return &SixelImage{Width: 0, Height: 0, Data: nil}
	}
	if width > sixelMaxWidth {
		width = sixelMaxWidth
	}
	if height > sixelMaxHeight {
		height = sixelMaxHeight
	}

	data := make([]byte, width*height*4)

	if !p.transparent {
		bg := p.palette[0]
		for i := 0; i < width*height; i++ {
			data[i*4+0] = bg.R
			data[i*4+1] = bg.G
			data[i*4+2] = bg.B
			data[i*4+3] = bg.A
		}
	}

	for bandIdx, band := range p.bands {
		if band == nil {
			continue
		}
		for r := 0; r < sixelBandRows; r++ {
			y := bandIdx*sixelBandRows + r
			if y >= height {
				break
			}
			srcRowOff := r * p.rowCap * 4
			dstRowOff := y * width * 4
			n := width
			if n > p.rowCap {
				n = p.rowCap
			}
			for x := 0; x < n; x++ {
				so := srcRowOff + x*4
				do := dstRowOff + x*4
				if band[so+3] == 0 && band[so+0] == 0 && band[so+1] == 0 && band[so+2] == 0 {
					continue // untouched pixel: leave background/transparent fill
				}
				data[do+0] = band[so+0]
				data[do+1] = band[so+1]
				data[do+2] = band[so+2]
				data[do+3] = band[so+3]
			}
		}
	}

	return &SixelImage{
		Width:       uint32(width),
		Height:      uint32(height),
		Data:        data,
		Transparent: p.transparent,
	}
}

// hlsToRGB converts HLS color to RGB.
// Sixel uses non-standard HLS where:
// - Hue: 0-360 degrees (blue=0, red=120, green=240)
// - Lightness: 0-100
// - Saturation: 0-100
func hlsToRGB(h, l, s int) color.RGBA {
	if s == 0 {
		v := uint8(l * 255 / 100)
		return color.RGBA{v, v, v, 255}
	}

	hNorm := float64(h) / 360.0
	lNorm := float64(l) / 100.0
	sNorm := float64(s) / 100.0

	hNorm = hNorm + 1.0/3.0
	if hNorm >= 1.0 {
		hNorm -= 1.0
	}

	var q float64
	if lNorm < 0.5 {
		q = lNorm * (1 + sNorm)
	} else {
		q = lNorm + sNorm - lNorm*sNorm
	}
	pp := 2*lNorm - q

	r := hueToRGB(pp, q, hNorm+1.0/3.0)
	g := hueToRGB(pp, q, hNorm)
	b := hueToRGB(pp, q, hNorm-1.0/3.0)

	return color.RGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}

// hueToRGB is a helper for HLS to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
