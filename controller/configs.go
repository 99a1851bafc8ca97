package controller

import (
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/vinestation/jointdrive"
)

// Config for the host-side controller. The environment is the primary
// source; the UI fills unset fields from its saved preferences before
// connecting. Empty fields mean "discover a port" and "firmware default
// baud".
type Config struct {
	SerialPort string `env:"JOINT_SERIAL_PORT"`
	BaudRate   string `env:"JOINT_BAUD_RATE"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) baudRate() (int, error) {
	if c.BaudRate == "" {
		return jointdrive.BaudRate, nil
	}
	return strconv.Atoi(c.BaudRate)
}
