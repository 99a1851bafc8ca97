package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/vinestation/jointdrive/controller"
)

const (
	prefSerialPort = "serialPort"
	prefBaudRate   = "baudRate"
)

// ApplyPreferences fills cfg's unset fields from the settings saved by the
// settings window. Values already set through the environment or flags win
// over saved preferences.
func ApplyPreferences(prefs fyne.Preferences, cfg *controller.Config) {
	if cfg.SerialPort == "" {
		cfg.SerialPort = prefs.String(prefSerialPort)
	}
	if cfg.BaudRate == "" {
		cfg.BaudRate = prefs.String(prefBaudRate)
	}
}

// ConfigWindow edits the serial settings and persists them in the app
// preferences. ApplyPreferences picks them up on the next launch.
type ConfigWindow struct {
	app      fyne.App
	OnSubmit func()
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{app: app}
}

// loadPreferences fills cfg with the persisted values
func (cw *ConfigWindow) loadPreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	cfg.SerialPort = prefs.StringWithFallback(prefSerialPort, "")
	cfg.BaudRate = prefs.StringWithFallback(prefBaudRate, "921600")
}

func (cw *ConfigWindow) savePreferences(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	prefs.SetString(prefSerialPort, cfg.SerialPort)
	prefs.SetString(prefBaudRate, cfg.BaudRate)
}

func (cw *ConfigWindow) Show() {
	window := cw.app.NewWindow("Joint Controller - Settings")
	window.Resize(fyne.NewSize(400, 180))
	window.Show()

	var cfg controller.Config
	cw.loadPreferences(&cfg)

	serialPorts, err := controller.GetSerialPorts()
	if err != nil && !errors.Is(err, controller.ErrNoUSBSerial) {
		showError(window, fmt.Errorf("error getting serial ports: %w", err))
		return
	}
	serialPorts = append(serialPorts, controller.SerialPortNone)

	serialEntry := widget.NewSelect(serialPorts, nil)
	if cfg.SerialPort == "" {
		cfg.SerialPort = serialPorts[0]
	}
	serialEntry.Bind(binding.BindString(&cfg.SerialPort))

	baudRateEntry := widget.NewEntry()
	baudRateEntry.Bind(binding.BindString(&cfg.BaudRate))

	form := container.NewVBox(
		widget.NewCard("Serial", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Port:"),
				serialEntry,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Baud Rate:"),
				baudRateEntry,
			),
		)),
		container.NewHBox(
			widget.NewButton("Cancel", func() {
				window.Close()
			}),
			widget.NewButton("Save", func() {
				cw.savePreferences(&cfg)
				if cw.OnSubmit != nil {
					cw.OnSubmit()
				}
				window.Close()
			}),
		),
	)

	window.SetContent(form)
}

func showError(window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		window.Close()
	})
	d.Show()
}
