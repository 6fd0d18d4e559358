// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"image-processing-engine/internal/algorithms"
)

// MenuHandler builds the main menu on top of the toolbar actions
type MenuHandler struct {
	window  fyne.Window
	toolbar *Toolbar
}

func NewMenuHandler(window fyne.Window, toolbar *Toolbar) *MenuHandler {
	return &MenuHandler{
		window:  window,
		toolbar: toolbar,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image 1...", mh.toolbar.OpenPrimary),
		fyne.NewMenuItem("Open Image 2...", mh.toolbar.OpenSecondary),
		fyne.NewMenuItem("Save Result...", mh.toolbar.SaveResult),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Operations", mh.showOperations),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func (mh *MenuHandler) showOperations() {
	byCategory := algorithms.GetAlgorithmsByCategory()
	items := container.NewVBox()
	for _, category := range algorithms.CategoryOrder {
		items.Add(widget.NewLabelWithStyle(category, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, name := range byCategory[category] {
			alg, _ := algorithms.Get(name)
			items.Add(widget.NewLabel(name + " - " + alg.GetDescription()))
		}
	}

	scroll := container.NewVScroll(items)
	scroll.SetMinSize(fyne.NewSize(520, 420))
	dialog.ShowCustom("Operations", "Close", scroll, mh.window)
}
