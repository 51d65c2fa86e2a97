package core

// Display is the character-addressed status display.
// Errors inside the display driver never propagate to the control loop.
type Display interface {
	// Clear blanks the display
	Clear()

	// WriteText draws text starting at the given character row and column
	WriteText(row, col int, text string)
}

// FlushingDisplay is a Display that buffers drawing until Flush, such as a
// frame-buffered OLED.
type FlushingDisplay interface {
	Display
	Flush()
}

// flushDisplay pushes buffered drawing to the panel when d buffers
func flushDisplay(d Display) {
	if f, ok := d.(FlushingDisplay); ok {
		f.Flush()
	}
}
