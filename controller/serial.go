package controller

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialPortNone disables the serial connection, for running the UI without
// a board attached
const SerialPortNone = "none"

// ErrNoUSBSerial means port discovery found no attached USB serial device
var ErrNoUSBSerial = errors.New("no USB serial ports found")

// GetSerialPorts lists the attached USB serial devices
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var result []string
	for _, p := range ports {
		if p.IsUSB {
			result = append(result, p.Name)
		}
	}
	if len(result) == 0 {
		return nil, ErrNoUSBSerial
	}
	return result, nil
}

func openPort(cfg Config) (serial.Port, error) {
	name := cfg.SerialPort
	if name == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, err
		}
		name = ports[0]
	}

	baud, err := cfg.baudRate()
	if err != nil {
		return nil, fmt.Errorf("invalid baud rate %q: %w", cfg.BaudRate, err)
	}

	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", name, err)
	}
	return port, nil
}
