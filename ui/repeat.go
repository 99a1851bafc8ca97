package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const repeatInterval = 100 * time.Millisecond

// holdButton fires once on press and then repeats while held, for nudging the
// target without hammering the button.
type holdButton struct {
	widget.Button

	onHeld func()
	stop   chan struct{}
}

func newHoldButton(label string, onHeld func()) *holdButton {
	b := &holdButton{onHeld: onHeld}
	b.Text = label
	b.ExtendBaseWidget(b)
	return b
}

func (b *holdButton) MouseDown(e *desktop.MouseEvent) {
	b.Button.MouseDown(e)

	b.onHeld()
	b.stop = make(chan struct{})
	go func(stop chan struct{}) {
		ticker := time.NewTicker(repeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fyne.Do(b.onHeld)
			}
		}
	}(b.stop)
}

func (b *holdButton) MouseUp(e *desktop.MouseEvent) {
	b.Button.MouseUp(e)

	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}
