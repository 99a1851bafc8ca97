package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/vinestation/jointdrive/controller"
)

func TestApplyPreferences(t *testing.T) {
	application := test.NewApp()
	prefs := application.Preferences()
	prefs.SetString(prefSerialPort, "/dev/ttyACM1")
	prefs.SetString(prefBaudRate, "115200")

	t.Run("FillsUnsetFields", func(t *testing.T) {
		var cfg controller.Config
		ApplyPreferences(prefs, &cfg)

		if cfg.SerialPort != "/dev/ttyACM1" {
			t.Errorf("expected=%q, got=%q", "/dev/ttyACM1", cfg.SerialPort)
		}
		if cfg.BaudRate != "115200" {
			t.Errorf("expected=%q, got=%q", "115200", cfg.BaudRate)
		}
	})

	t.Run("EnvironmentWins", func(t *testing.T) {
		cfg := controller.Config{SerialPort: "/dev/ttyUSB0", BaudRate: "921600"}
		ApplyPreferences(prefs, &cfg)

		if cfg.SerialPort != "/dev/ttyUSB0" {
			t.Errorf("expected=%q, got=%q", "/dev/ttyUSB0", cfg.SerialPort)
		}
		if cfg.BaudRate != "921600" {
			t.Errorf("expected=%q, got=%q", "921600", cfg.BaudRate)
		}
	})
}

func TestApplyPreferencesNothingSaved(t *testing.T) {
	application := test.NewApp()

	var cfg controller.Config
	ApplyPreferences(application.Preferences(), &cfg)

	// empty fields keep their meaning: discover a port, default baud
	if cfg.SerialPort != "" || cfg.BaudRate != "" {
		t.Errorf("expected empty config, got=%+v", cfg)
	}
}

// settings saved through the window come back at the next launch
func TestSavedSettingsRoundTrip(t *testing.T) {
	application := test.NewApp()

	cw := NewConfigWindow(application)
	cw.savePreferences(&controller.Config{SerialPort: "/dev/ttyACM0", BaudRate: "921600"})

	var cfg controller.Config
	ApplyPreferences(application.Preferences(), &cfg)

	if cfg.SerialPort != "/dev/ttyACM0" {
		t.Errorf("expected=%q, got=%q", "/dev/ttyACM0", cfg.SerialPort)
	}
	if cfg.BaudRate != "921600" {
		t.Errorf("expected=%q, got=%q", "921600", cfg.BaudRate)
	}
}
