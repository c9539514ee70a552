package fan

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

type gpioPin struct {
	pin gpio.PinIO
}

// OpenPin resolves a GPIO line by name, for example "GPIO6".
func OpenPin(name string) (Pin, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %s not found", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("initialize gpio pin %s: %w", name, err)
	}
	return &gpioPin{pin: pin}, nil
}

func (g *gpioPin) Out(high bool) error {
	return g.pin.Out(gpio.Level(high))
}
