package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-processing-engine/internal/algorithms"
)

// sliderDef is the range and step of one parameter slider
type sliderDef struct {
	name  string
	label string
	min   float64
	max   float64
	dflt  float64
	step  float64
}

// sliderDefsFrom builds slider ranges from registry parameter metadata
func sliderDefsFrom(infos []algorithms.ParameterInfo) []sliderDef {
	defs := make([]sliderDef, 0, len(infos))
	for _, info := range infos {
		d := sliderDef{
			name:  info.Name,
			label: info.Name,
			min:   toFloat(info.Min),
			max:   toFloat(info.Max),
			dflt:  toFloat(info.Default),
			step:  1,
		}
		switch {
		case info.Name == "kernelSize":
			// odd sizes only
			d.step = 2
		case info.Type == "float" && d.max-d.min <= 1:
			d.step = 0.01
		case info.Type == "float":
			d.step = 0.1
		}
		defs = append(defs, d)
	}
	return defs
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// ControlPanel selects the operation and its parameters
type ControlPanel struct {
	container *fyne.Container

	categorySelect *widget.Select
	operationSel   *widget.Select
	description    *widget.Label

	sliders map[string]*widget.Slider
	rows    map[string]*fyne.Container
}

func NewControlPanel(initial algorithms.Params) *ControlPanel {
	cp := &ControlPanel{
		sliders: make(map[string]*widget.Slider),
		rows:    make(map[string]*fyne.Container),
	}
	cp.initializeUI(initial)
	return cp
}

func (cp *ControlPanel) initializeUI(initial algorithms.Params) {
	byCategory := algorithms.GetAlgorithmsByCategory()

	cp.description = widget.NewLabel("")
	cp.description.Wrapping = fyne.TextWrapWord

	cp.operationSel = widget.NewSelect(nil, func(name string) {
		cp.onOperationChanged(name)
	})
	cp.categorySelect = widget.NewSelect(algorithms.CategoryOrder, func(category string) {
		cp.operationSel.Options = byCategory[category]
		cp.operationSel.Refresh()
		if len(byCategory[category]) > 0 {
			cp.operationSel.SetSelected(byCategory[category][0])
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Operation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		cp.categorySelect,
		cp.operationSel,
		cp.description,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Parameters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	start := paramValues(initial)
	for _, def := range sliderDefsFrom(algorithms.Parameters()) {
		def := def
		slider := widget.NewSlider(def.min, def.max)
		slider.Step = def.step
		value := widget.NewLabel("")
		slider.OnChanged = func(v float64) {
			value.SetText(formatValue(def, v))
		}
		v, ok := start[def.name]
		if !ok {
			v = def.dflt
		}
		slider.SetValue(math.Min(math.Max(v, def.min), def.max))

		row := container.NewBorder(nil, nil, widget.NewLabel(def.label), value, slider)
		cp.sliders[def.name] = slider
		cp.rows[def.name] = row
		form.Add(row)
	}

	cp.container = form
	cp.categorySelect.SetSelected(algorithms.CategoryOrder[0])
}

func (cp *ControlPanel) onOperationChanged(name string) {
	alg, ok := algorithms.Get(name)
	if !ok {
		return
	}

	operands := "one image"
	if alg.Operands() == 2 {
		operands = "two images"
	}
	cp.description.SetText(fmt.Sprintf("%s (%s)", alg.GetDescription(), operands))

	used := make(map[string]bool)
	for _, info := range alg.GetParameterInfo() {
		used[info.Name] = true
	}
	// only the parameters the operation reads are shown
	for name, row := range cp.rows {
		if used[name] {
			row.Show()
		} else {
			row.Hide()
		}
	}
}

func (cp *ControlPanel) GetContainer() *fyne.Container {
	return cp.container
}

// Selected returns the chosen operation name
func (cp *ControlPanel) Selected() string {
	return cp.operationSel.Selected
}

// Params reads the slider values
func (cp *ControlPanel) Params() algorithms.Params {
	values := make(map[string]float64, len(cp.sliders))
	for name, slider := range cp.sliders {
		values[name] = slider.Value
	}
	return paramsFromValues(values)
}

func paramValues(p algorithms.Params) map[string]float64 {
	return map[string]float64{
		"constantValue":  float64(p.ConstantValue),
		"blendFactor":    p.BlendFactor,
		"thresholdValue": float64(p.ThresholdValue),
		"kernelSize":     float64(p.KernelSize),
		"orderValue":     float64(p.OrderValue),
		"sigmaValue":     p.SigmaValue,
	}
}

func paramsFromValues(values map[string]float64) algorithms.Params {
	p := algorithms.DefaultParams()
	for name, v := range values {
		switch name {
		case "constantValue":
			p.ConstantValue = int(math.Round(v))
		case "blendFactor":
			p.BlendFactor = v
		case "thresholdValue":
			p.ThresholdValue = int(math.Round(v))
		case "kernelSize":
			// slider steps from 1 by 2, force odd anyway
			k := int(math.Round(v))
			if k%2 == 0 {
				k++
			}
			p.KernelSize = k
		case "orderValue":
			p.OrderValue = int(math.Round(v))
		case "sigmaValue":
			p.SigmaValue = v
		}
	}
	return p
}

func formatValue(def sliderDef, v float64) string {
	if def.step < 1 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%d", int(math.Round(v)))
}
