package cgbi

// swapRedBlue exchanges the red and blue byte of every 4-byte pixel across
// height scanlines, leaving each row's leading filter-type byte untouched.
// The transform is its own inverse, so it serves both conversion directions.
func swapRedBlue(raw []byte, width, height int) error {
	// uint64 arithmetic: 4*width overflows int on 32-bit platforms and
	// height*rowLen can overflow anywhere, silently passing the check.
	rowLen := 1 + 4*uint64(width)
	if width < 0 || height <= 0 || uint64(len(raw))/uint64(height) < rowLen {
		return UnexpectedError("amount of image data")
	}
	i := 0
	for y := 0; y < height; y++ {
		i++ // filter-type byte
		for x := 0; x < width; x++ {
			raw[i], raw[i+2] = raw[i+2], raw[i]
			i += 4
		}
	}
	return nil
}
