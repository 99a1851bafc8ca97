// Package controller talks to the joint firmware over its USB serial port:
// command lines go down, position telemetry comes back.
package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/vinestation/jointdrive"
)

// Controller owns the serial connection to the firmware. Telemetry read by
// Run keeps Position up to date; command writers are safe to call from other
// goroutines.
type Controller struct {
	port io.ReadWriteCloser

	writeMu sync.Mutex

	mu           sync.Mutex
	position     float64
	havePosition bool
	target       float64
	haveTarget   bool
}

// New opens the configured serial port
func New(cfg Config) (*Controller, error) {
	port, err := openPort(cfg)
	if err != nil {
		return nil, err
	}
	return &Controller{port: port}, nil
}

// NewFromEnv opens the port described by the environment, discovering one if
// none is configured
func NewFromEnv() (*Controller, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func (c *Controller) Close() error {
	return c.port.Close()
}

// Run pumps the connection until ctx is canceled or the port fails: lines
// from in are forwarded to the device, telemetry lines from the device are
// parsed and copied to out. Closing the port is what unblocks the reads.
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	go func() {
		<-ctx.Done()
		c.port.Close()
	}()

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if err := c.writeLine(scanner.Text()); err != nil {
				return
			}
		}
	}()

	scanner := bufio.NewScanner(c.port)
	for scanner.Scan() {
		line := scanner.Text()

		pos, err := jointdrive.ParseTelemetry(line)
		if err != nil {
			// boot and fault messages share the channel; pass them along
			fmt.Fprintln(out, line)
			continue
		}

		c.mu.Lock()
		c.position = pos
		c.havePosition = true
		if !c.haveTarget {
			// adopt the joint's resting position until the first command
			c.target = pos
			c.haveTarget = true
		}
		c.mu.Unlock()

		fmt.Fprintln(out, line)
	}

	if ctx.Err() != nil {
		return nil
	}
	return scanner.Err()
}

// Position returns the latest reported joint angle in radians
func (c *Controller) Position() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position, c.havePosition
}

// Target returns the last commanded target
func (c *Controller) Target() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target, c.haveTarget
}

// SetTarget commands a new absolute target position in radians
func (c *Controller) SetTarget(radians float64) error {
	c.mu.Lock()
	c.target = radians
	c.haveTarget = true
	c.mu.Unlock()

	return c.writeLine(jointdrive.FormatTarget(radians))
}

// Nudge moves the target by delta radians relative to the last commanded
// target. It is rejected until a baseline exists, either from SetTarget or
// from the first telemetry sample, so the joint never gets nudged relative
// to an arbitrary zero.
func (c *Controller) Nudge(delta float64) error {
	c.mu.Lock()
	if !c.haveTarget {
		c.mu.Unlock()
		return errors.New("no target baseline yet")
	}
	target := c.target + delta
	c.mu.Unlock()

	return c.SetTarget(target)
}

// SetAuxPin switches one of the firmware's auxiliary outputs
func (c *Controller) SetAuxPin(pin int, high bool) error {
	if !jointdrive.AuxPinAllowed(pin) {
		return fmt.Errorf("pin %d is not a switchable auxiliary output", pin)
	}
	return c.writeLine(jointdrive.FormatGPIO(pin, high))
}

func (c *Controller) writeLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_, err := c.port.Write([]byte(line + "\n"))
	if err != nil {
		return fmt.Errorf("error writing to device: %w", err)
	}
	return nil
}
