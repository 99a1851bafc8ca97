// Package ui is the desktop operator panel: live position readout, target
// control and auxiliary pin switches for one joint.
package ui

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/vinestation/jointdrive"
)

const (
	nudgeStep = 0.1 // radians per nudge while a +/- button is held

	refreshInterval = 100 * time.Millisecond
	staleAfter      = 2 * time.Second
)

// JointUI is the operator panel. It implements io.Writer so the controller's
// telemetry stream can be fed straight into it.
type JointUI struct {
	mu         sync.Mutex
	lineBuf    []byte
	position   float64
	lastSample time.Time
}

func NewJointUI() *JointUI {
	return &JointUI{}
}

// Write consumes the telemetry stream. Lines that are not position samples
// (boot and fault reports) are ignored here; the CLI side still prints them.
func (ui *JointUI) Write(p []byte) (int, error) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	for _, b := range p {
		if b != '\n' {
			ui.lineBuf = append(ui.lineBuf, b)
			continue
		}
		if pos, err := jointdrive.ParseTelemetry(string(ui.lineBuf)); err == nil {
			ui.position = pos
			ui.lastSample = time.Now()
		}
		ui.lineBuf = ui.lineBuf[:0]
	}
	return len(p), nil
}

func (ui *JointUI) snapshot() (float64, time.Time) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.position, ui.lastSample
}

// scaleLimit grows slider bounds so the value stays comfortably inside them
func scaleLimit(v float64) float64 {
	limit := 10.0
	if need := math.Ceil(math.Abs(v)) + 2; need > limit {
		limit = need
	}
	return limit
}

// Run builds the window and blocks until the context is canceled or the
// window closes. Commands go out through w as plain protocol lines. The
// application must be created with an ID so the settings window can persist
// its preferences.
func (ui *JointUI) Run(ctx context.Context, application fyne.App, w io.Writer) {
	window := application.NewWindow("Joint Controller")

	cmd := &commandWriter{writer: w}

	statusLabel := widget.NewLabel(statusSearching.String())

	// current position: read-only value plus a mirror slider
	posValue := widget.NewLabel("-")
	posSlider := widget.NewSlider(-10, 10)
	posSlider.Step = 0.01
	posSlider.Disable()

	// target controls share one value; ignoreSlider suppresses the send
	// callback during programmatic updates
	var ignoreSlider bool

	targetEntry := widget.NewEntry()
	targetEntry.SetText("0.0000")

	targetSlider := widget.NewSlider(-10, 10)
	targetSlider.Step = 0.01
	targetSlider.OnChanged = func(v float64) {
		targetEntry.SetText(strconv.FormatFloat(v, 'f', jointdrive.TelemetryPrecision, 64))
	}
	targetSlider.OnChangeEnded = func(v float64) {
		if ignoreSlider {
			return
		}
		cmd.SetTarget(v)
	}

	setTarget := func(v float64) {
		limit := scaleLimit(v)
		if targetSlider.Max < limit {
			targetSlider.Min = -limit
			targetSlider.Max = limit
			targetSlider.Refresh()
		}

		ignoreSlider = true
		targetSlider.SetValue(v)
		ignoreSlider = false

		cmd.SetTarget(v)
	}

	targetEntry.OnSubmitted = func(s string) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Println("invalid target:", s)
			return
		}
		setTarget(v)
	}

	minusButton := newHoldButton("-", func() {
		setTarget(targetSlider.Value - nudgeStep)
	})
	plusButton := newHoldButton("+", func() {
		setTarget(targetSlider.Value + nudgeStep)
	})

	auxChecks := container.NewHBox()
	for _, pin := range jointdrive.AuxPins {
		check := widget.NewCheck(fmt.Sprintf("Pin %d", pin), func(on bool) {
			cmd.SetAuxPin(pin, on)
		})
		auxChecks.Add(check)
	}

	settingsButton := widget.NewButton("Settings", func() {
		cw := NewConfigWindow(application)
		cw.OnSubmit = func() {
			statusLabel.SetText("settings saved, restart to apply")
		}
		cw.Show()
	})

	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			pos, last := ui.snapshot()
			fyne.Do(func() {
				switch {
				case last.IsZero():
					statusLabel.SetText(statusSearching.String())
				case time.Since(last) > staleAfter:
					statusLabel.SetText(statusStale.String())
				default:
					statusLabel.SetText(statusStreaming.String())
				}
				if last.IsZero() {
					return
				}

				posValue.SetText(jointdrive.FormatTelemetry(pos))
				if limit := scaleLimit(pos); posSlider.Max < limit {
					posSlider.Min = -limit
					posSlider.Max = limit
					posSlider.Refresh()
				}
				posSlider.SetValue(pos)
			})
		}
	}()

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	content := container.NewVBox(
		statusLabel,
		widget.NewCard("Current Position", "", container.NewVBox(posValue, posSlider)),
		widget.NewCard("Target Position", "", container.NewVBox(
			targetEntry,
			container.NewGridWithColumns(2, minusButton, plusButton),
			targetSlider,
		)),
		widget.NewCard("Auxiliary Outputs", "", auxChecks),
		settingsButton,
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 480))
	window.ShowAndRun()
}
