package ui

import (
	"fmt"
	"io"

	"github.com/vinestation/jointdrive"
)

// commandWriter turns UI actions into protocol lines for the device
type commandWriter struct {
	writer io.Writer
}

func (c *commandWriter) SetTarget(radians float64) {
	fmt.Fprintln(c.writer, jointdrive.FormatTarget(radians))
}

func (c *commandWriter) SetAuxPin(pin int, high bool) {
	fmt.Fprintln(c.writer, jointdrive.FormatGPIO(pin, high))
}
