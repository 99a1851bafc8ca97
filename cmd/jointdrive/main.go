package main

import (
	"context"
	"flag"
	"io"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/vinestation/jointdrive/controller"
	"github.com/vinestation/jointdrive/ui"
)

func main() {
	var serialPort, baudRate string
	flag.StringVar(&serialPort, "port", "", "Serial port of the joint controller. Default is the first USB serial device")
	flag.StringVar(&baudRate, "baud", "", "Serial baud rate")
	flag.Parse()

	if serialPort != "" {
		os.Setenv("JOINT_SERIAL_PORT", serialPort)
	}
	if baudRate != "" {
		os.Setenv("JOINT_BAUD_RATE", baudRate)
	}

	if os.Getenv("ENABLE_UI") == "true" {
		runUI()
		return
	}

	runCLI()
}

func runUI() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := app.NewWithID("com.vinestation.jointdrive")

	// environment and flags win; saved settings fill in the rest
	cfg, err := controller.LoadConfig()
	if err != nil {
		panic(err)
	}
	ui.ApplyPreferences(application.Preferences(), &cfg)

	c, err := controller.New(cfg)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	r, w := io.Pipe()

	// read from Stdin also
	go func() {
		defer w.Close()
		io.Copy(w, os.Stdin)
	}()

	jointUI := ui.NewJointUI()

	go func() {
		err = c.Run(ctx, r, io.MultiWriter(os.Stdout, jointUI))
		if err != nil {
			panic(err)
		}
	}()

	jointUI.Run(ctx, application, w)
	cancel()
}

func runCLI() {
	c, err := controller.NewFromEnv()
	if err != nil {
		panic(err)
	}
	defer c.Close()

	err = c.Run(context.Background(), os.Stdin, os.Stdout)
	if err != nil {
		panic(err)
	}
}
