//go:build gui

package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"fyne.io/fyne/v2"
)

// trayIcon renders the 22px tray coin: gold core, amber ring, dark rim.
func trayIcon() fyne.Resource {
	const size = 22
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center + 0.5
			dy := float64(y) - center + 0.5
			dist := math.Sqrt(dx*dx + dy*dy)

			switch {
			case dist < 5:
				img.Set(x, y, color.RGBA{250, 210, 80, 255})
			case dist < 8:
				t := (dist - 5) / 3
				img.Set(x, y, color.RGBA{uint8(240 - t*60), uint8(170 - t*60), 30, 255})
			case dist < 10:
				img.Set(x, y, color.RGBA{70, 45, 10, 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return fyne.NewStaticResource("tray.png", buf.Bytes())
}
