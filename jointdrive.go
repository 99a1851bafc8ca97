package jointdrive

import (
	"errors"
	"strconv"
	"strings"
)

// Serial settings shared by the firmware and the host tooling.
const (
	BaudRate = 921600

	// GPIOSentinel prefixes auxiliary pin commands, e.g. "P8:1"
	GPIOSentinel  = 'P'
	GPIOSeparator = ':'

	// TelemetryPrecision is the number of decimal places in position telemetry
	TelemetryPrecision = 4
)

// AuxPins are the auxiliary output pins that the host is allowed to switch
var AuxPins = []int{8, 9, 10}

// AuxPinAllowed reports whether pin is one of the switchable auxiliary outputs
func AuxPinAllowed(pin int) bool {
	for _, p := range AuxPins {
		if p == pin {
			return true
		}
	}
	return false
}

// CommandKind classifies a line received on the serial channel
type CommandKind int

const (
	// CommandNone is an empty or malformed line. It has no effect
	CommandNone CommandKind = iota
	// CommandGPIO sets an auxiliary digital output
	CommandGPIO
	// CommandTarget sets a new target position in radians
	CommandTarget
)

// Command is one parsed line of the wire protocol
type Command struct {
	Kind CommandKind

	// GPIO fields
	Pin  int
	High bool

	// Target position in radians
	Target float64
}

// ParseLine classifies a single line from the serial channel.
//
// Lines starting with the GPIO sentinel set an auxiliary pin: "P<pin>:<0|1>".
// A GPIO line with no separator is dropped. Any other non-empty line is a
// target position in radians; a line that fails to parse as a float sets the
// target to zero, so hosts must only send valid floats.
func ParseLine(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CommandNone}
	}

	if line[0] == GPIOSentinel {
		sep := strings.IndexByte(line, GPIOSeparator)
		if sep == -1 {
			return Command{Kind: CommandNone}
		}

		pin, _ := strconv.Atoi(line[1:sep])
		state, _ := strconv.Atoi(line[sep+1:])
		return Command{Kind: CommandGPIO, Pin: pin, High: state != 0}
	}

	target, err := strconv.ParseFloat(line, 64)
	if err != nil {
		target = 0
	}
	return Command{Kind: CommandTarget, Target: target}
}

// FormatGPIO builds a GPIO command line without the terminator
func FormatGPIO(pin int, high bool) string {
	state := "0"
	if high {
		state = "1"
	}
	return string(GPIOSentinel) + strconv.Itoa(pin) + string(GPIOSeparator) + state
}

// FormatTarget builds a target position command line without the terminator
func FormatTarget(radians float64) string {
	return strconv.FormatFloat(radians, 'f', TelemetryPrecision, 64)
}

// FormatTelemetry renders a position sample the way the firmware reports it
func FormatTelemetry(radians float64) string {
	return strconv.FormatFloat(radians, 'f', TelemetryPrecision, 64)
}

// ParseTelemetry reads a position sample from one telemetry line
func ParseTelemetry(line string) (float64, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, errors.New("empty telemetry line")
	}
	return strconv.ParseFloat(line, 64)
}
