// Package gui shows a run side by side: the input frame, the cleaned mask,
// and the labelled output.
package gui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"otsu-labeler/internal/pipeline"
	"otsu-labeler/internal/raster"
)

const (
	AppID = "com.imageprocessing.otsu-labeler"

	ImageAreaWidth  = 400
	ImageAreaHeight = 300
)

type Preview struct {
	window fyne.Window
	status *widget.Label
	panes  [3]*canvas.Image
}

func NewPreview(a fyne.App, title string) *Preview {
	p := &Preview{
		window: a.NewWindow(title),
		status: widget.NewLabel(""),
	}

	titles := [3]string{"**Input**", "**Cleaned mask**", "**Labels**"}
	cells := make([]fyne.CanvasObject, len(titles))
	for i, t := range titles {
		img := canvas.NewImageFromImage(nil)
		img.FillMode = canvas.ImageFillContain
		// Pixel scaling keeps label boundaries sharp.
		img.ScaleMode = canvas.ImageScalePixels
		img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
		p.panes[i] = img

		cells[i] = container.NewBorder(widget.NewRichTextFromMarkdown(t), nil, nil, nil, img)
	}

	p.window.SetContent(container.NewBorder(nil, p.status, nil, nil, container.NewGridWithColumns(len(cells), cells...)))
	p.window.Resize(fyne.NewSize(3*ImageAreaWidth, ImageAreaHeight+80))
	return p
}

func (p *Preview) SetResult(input *raster.Raster, res *pipeline.Result) {
	images := [3]image.Image{input.ToGray(), res.Mask.ToGray(), res.Output.ToGray()}
	for i, img := range images {
		p.panes[i].Image = img
		p.panes[i].Refresh()
	}
	p.status.SetText(fmt.Sprintf("threshold %d, %d components, %d foreground pixels",
		res.Threshold, res.ComponentCount(), res.Mask.Count(raster.Foreground)))
}

// Show opens the preview and blocks until the window is closed.
func Show(title string, input *raster.Raster, res *pipeline.Result) {
	a := app.NewWithID(AppID)
	p := NewPreview(a, title)
	p.SetResult(input, res)
	p.window.ShowAndRun()
}
