package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-processing-engine/internal/core"
	"image-processing-engine/internal/io"
)

// ToolbarCallbacks wires toolbar actions to the application
type ToolbarCallbacks struct {
	OnPrimaryLoaded   func(buf *core.PixelBuffer, path string)
	OnSecondaryLoaded func(buf *core.PixelBuffer, path string)
	OnClearSecondary  func()
	OnApply           func()
	OnUseResult       func()
	OnSaved           func(path string)
	OnError           func(title string, err error)

	// Result supplies the image to save
	Result func() *core.PixelBuffer
}

// Toolbar holds the file and processing buttons
type Toolbar struct {
	window fyne.Window
	loader *io.ImageLoader
	logger logrus.FieldLogger

	container *fyne.Container

	openPrimaryBtn   *widget.Button
	openSecondaryBtn *widget.Button
	clearSecondBtn   *widget.Button
	applyBtn         *widget.Button
	useResultBtn     *widget.Button
	saveBtn          *widget.Button

	callbacks ToolbarCallbacks
}

func NewToolbar(window fyne.Window, loader *io.ImageLoader, logger logrus.FieldLogger) *Toolbar {
	tb := &Toolbar{
		window: window,
		loader: loader,
		logger: logger,
	}

	tb.initializeUI()
	return tb
}

func (tb *Toolbar) initializeUI() {
	tb.openPrimaryBtn = widget.NewButtonWithIcon("Image 1", theme.FolderOpenIcon(), tb.OpenPrimary)
	tb.openSecondaryBtn = widget.NewButtonWithIcon("Image 2", theme.FolderOpenIcon(), tb.OpenSecondary)
	tb.clearSecondBtn = widget.NewButtonWithIcon("Clear 2", theme.DeleteIcon(), func() {
		if tb.callbacks.OnClearSecondary != nil {
			tb.callbacks.OnClearSecondary()
		}
	})

	tb.applyBtn = widget.NewButtonWithIcon("Apply", theme.MediaPlayIcon(), func() {
		if tb.callbacks.OnApply != nil {
			tb.callbacks.OnApply()
		}
	})
	tb.applyBtn.Importance = widget.HighImportance

	tb.useResultBtn = widget.NewButtonWithIcon("Use Result", theme.MoveUpIcon(), func() {
		if tb.callbacks.OnUseResult != nil {
			tb.callbacks.OnUseResult()
		}
	})
	tb.saveBtn = widget.NewButtonWithIcon("Save Result", theme.DocumentSaveIcon(), tb.SaveResult)

	tb.container = container.NewHBox(
		tb.openPrimaryBtn,
		tb.openSecondaryBtn,
		tb.clearSecondBtn,
		widget.NewSeparator(),
		tb.applyBtn,
		tb.useResultBtn,
		widget.NewSeparator(),
		tb.saveBtn,
	)
}

func (tb *Toolbar) SetCallbacks(callbacks ToolbarCallbacks) {
	tb.callbacks = callbacks
}

func (tb *Toolbar) GetContainer() *fyne.Container {
	return tb.container
}

// OpenPrimary asks for the first operand
func (tb *Toolbar) OpenPrimary() {
	tb.openImage("Image 1", tb.callbacks.OnPrimaryLoaded)
}

// OpenSecondary asks for the second operand
func (tb *Toolbar) OpenSecondary() {
	tb.openImage("Image 2", tb.callbacks.OnSecondaryLoaded)
}

func (tb *Toolbar) openImage(slot string, onLoaded func(*core.PixelBuffer, string)) {
	tb.logger.WithField("slot", slot).Debug("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			tb.fail("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		buf, err := tb.loader.Load(path)
		if err != nil {
			tb.fail("Failed to Load Image", err)
			return
		}

		if onLoaded != nil {
			onLoaded(buf, path)
		}
	}, tb.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".tif", ".bmp", ".webp"}))
	fileDialog.Show()
}

// SaveResult asks for a destination and writes the current result
func (tb *Toolbar) SaveResult() {
	var result *core.PixelBuffer
	if tb.callbacks.Result != nil {
		result = tb.callbacks.Result()
	}
	if result == nil {
		tb.fail("Save Result", fmt.Errorf("no result to save"))
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			tb.fail("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		// the loader writes by path
		writer.Close()

		if err := tb.loader.Save(result, path); err != nil {
			tb.fail("Failed to Save Image", err)
			return
		}
		if tb.callbacks.OnSaved != nil {
			tb.callbacks.OnSaved(path)
		}
	}, tb.window)

	saveDialog.SetFileName("result.png")
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}))
	saveDialog.Show()
}

func (tb *Toolbar) fail(title string, err error) {
	if tb.callbacks.OnError != nil {
		tb.callbacks.OnError(title, err)
		return
	}
	tb.logger.WithField("error", err).Error(title)
}
