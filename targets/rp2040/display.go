//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Text grid of the 128x32 panel with the 8pt proggy font
const (
	displayWidth  = 128
	displayHeight = 32
	displayAddr   = 0x3C

	glyphWidth = 6
	lineHeight = 10
	baseline   = 8
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// oledDisplay implements core.FlushingDisplay on an SSD1306 over I2C.
// Drawing goes to the frame buffer; Flush sends it to the panel.
type oledDisplay struct {
	dev  *ssd1306.Device
	font *tinyfont.Font
}

func newOLEDDisplay(bus *machine.I2C) *oledDisplay {
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:    displayWidth,
		Height:   displayHeight,
		Address:  displayAddr,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()
	return &oledDisplay{dev: dev, font: &proggy.TinySZ8pt7b}
}

func (d *oledDisplay) Clear() {
	d.dev.ClearBuffer()
}

func (d *oledDisplay) WriteText(row, col int, text string) {
	x := int16(col * glyphWidth)
	y := int16(row*lineHeight + baseline)
	tinyfont.WriteLine(d.dev, d.font, x, y, text, white)
}

func (d *oledDisplay) Flush() {
	_ = d.dev.Display()
}
