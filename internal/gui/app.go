// Main application window: three image panes, operation controls and a histogram
package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
	"image-processing-engine/internal/io"
)

// Application represents the main application
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    logrus.FieldLogger
	debugMode bool

	// Core components
	imageData *core.ImageData
	loader    *io.ImageLoader

	// GUI components
	panes       *ImagePanes
	toolbar     *Toolbar
	controls    *ControlPanel
	histogram   *HistogramPanel
	menuHandler *MenuHandler
	statusLabel *widget.Label
}

func NewApplication(app fyne.App, logger logrus.FieldLogger, loader *io.ImageLoader, params algorithms.Params, debugMode bool) *Application {
	window := app.NewWindow("Image Processing Lab")
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	a := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		debugMode: debugMode,
		imageData: core.NewImageData(),
		loader:    loader,
	}

	a.panes = NewImagePanes()
	a.toolbar = NewToolbar(window, loader, logger)
	a.controls = NewControlPanel(params)
	a.histogram = NewHistogramPanel()
	a.menuHandler = NewMenuHandler(window, a.toolbar)
	a.statusLabel = widget.NewLabel("Load an image to begin")

	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) setupLayout() {
	right := container.NewVSplit(
		container.NewScroll(a.controls.GetContainer()),
		widget.NewCard("Histogram", "", a.histogram.GetContainer()),
	)
	right.SetOffset(0.65)

	center := container.NewBorder(a.toolbar.GetContainer(), a.statusLabel, nil, nil, a.panes.GetContainer())

	main := container.NewHSplit(center, right)
	main.SetOffset(0.72)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(main)
}

func (a *Application) setupCallbacks() {
	a.toolbar.SetCallbacks(ToolbarCallbacks{
		OnPrimaryLoaded: func(buf *core.PixelBuffer, path string) {
			if err := a.imageData.SetOriginal(buf, path); err != nil {
				a.showError("Failed to Set Image", err)
				return
			}
			a.panes.SetPrimary(buf)
			a.panes.SetResult(nil)
			a.histogram.Clear()
			a.updateStatusMessage(fmt.Sprintf("Loaded image 1: %s (%dx%d)", path, buf.Width, buf.Height))
		},
		OnSecondaryLoaded: func(buf *core.PixelBuffer, path string) {
			if err := a.imageData.SetSecondary(buf); err != nil {
				a.showError("Failed to Set Image", err)
				return
			}
			a.panes.SetSecondary(buf)
			a.updateStatusMessage(fmt.Sprintf("Loaded image 2: %s (%dx%d)", path, buf.Width, buf.Height))
		},
		OnClearSecondary: func() {
			a.imageData.RemoveSecondary()
			a.panes.SetSecondary(nil)
			a.updateStatusMessage("Image 2 cleared")
		},
		OnApply:     a.applySelected,
		OnUseResult: a.useResult,
		Result:      a.imageData.GetProcessed,
		OnSaved: func(path string) {
			a.updateStatusMessage(fmt.Sprintf("Saved: %s", path))
		},
		OnError: a.showError,
	})
}

// applySelected runs the chosen operation off the UI goroutine
func (a *Application) applySelected() {
	name := a.controls.Selected()
	params := a.controls.Params()
	primary, secondary, generation := a.imageData.Snapshot()

	if primary == nil {
		a.showError("Apply", fmt.Errorf("%w: load image 1 first", core.ErrMissingOperand))
		return
	}

	a.updateStatusMessage(fmt.Sprintf("Applying %s...", name))
	go func() {
		result, err := algorithms.Apply(name, primary, secondary, params)
		if err != nil {
			fyne.Do(func() { a.showError("Processing Error", err) })
			return
		}

		if err := a.imageData.SetProcessedIfCurrent(generation, result); err != nil {
			if errors.Is(err, core.ErrStaleResult) {
				a.logger.WithField("operation", name).Debug("Discarding result for replaced inputs")
				fyne.Do(func() { a.updateStatusMessage("Result discarded: image changed") })
				return
			}
			fyne.Do(func() { a.showError("Processing Error", err) })
			return
		}

		a.logger.WithFields(logrus.Fields{
			"operation": name,
			"width":     result.Width,
			"height":    result.Height,
		}).Info("Operation applied")

		fyne.Do(func() {
			a.panes.SetResult(result)
			if showsHistogram(name) {
				if err := a.histogram.Update(result); err != nil {
					a.showError("Histogram", err)
				}
			} else {
				a.histogram.Clear()
			}
			a.updateStatusMessage(fmt.Sprintf("Applied %s", name))
		})
	}()
}

func (a *Application) useResult() {
	if err := a.imageData.PromoteProcessed(); err != nil {
		a.showError("Use Result", err)
		return
	}
	a.panes.SetPrimary(a.imageData.GetOriginal())
	a.panes.SetResult(nil)
	a.updateStatusMessage("Result is now image 1")
}

// showsHistogram lists the operations whose result gets a histogram
func showsHistogram(name string) bool {
	switch name {
	case "grayscale", "equalize", "threshold":
		return true
	}
	return false
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Cleaning up application resources")
		a.imageData.Clear()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) showError(title string, err error) {
	a.logger.WithField("error", err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}
