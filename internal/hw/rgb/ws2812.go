package rgb

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Strip pushes a full frame of LED colors to the hardware.
type Strip interface {
	Render(colors []Color) error
	Close() error
}

// WS2812 drives a WS2812 chain over SPI MOSI. Each WS2812 data bit is
// stretched into three SPI bits at 2.4 MHz: 100 for a zero, 110 for a one.
// The trailing zero bytes hold the line low past the 50us latch window.
type WS2812 struct {
	port spi.PortCloser
	conn spi.Conn
}

const (
	ws2812Frequency = 2400 * physic.KiloHertz
	latchBytes      = 18
)

// OpenWS2812 opens the named SPI port, or the first registered port when
// name is empty.
func OpenWS2812(name string) (*WS2812, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", name, err)
	}
	conn, err := port.Connect(ws2812Frequency, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("configure spi port %q: %w", name, err)
	}
	return &WS2812{port: port, conn: conn}, nil
}

func (w *WS2812) Render(colors []Color) error {
	if err := w.conn.Tx(encodeFrame(colors), nil); err != nil {
		return fmt.Errorf("write led frame: %w", err)
	}
	return nil
}

func (w *WS2812) Close() error {
	return w.port.Close()
}

// encodeFrame expands GRB color bytes into the SPI bit pattern.
func encodeFrame(colors []Color) []byte {
	buf := make([]byte, 0, len(colors)*9+latchBytes)
	for _, c := range colors {
		for _, channel := range [3]uint8{c.G, c.R, c.B} {
			buf = append(buf, encodeByte(channel)...)
		}
	}
	return append(buf, make([]byte, latchBytes)...)
}

// encodeByte turns one channel byte into 24 SPI bits, packed MSB-first
// into three bytes.
func encodeByte(b uint8) []byte {
	var bits uint32
	for i := 7; i >= 0; i-- {
		bits <<= 3
		if b&(1<<i) != 0 {
			bits |= 0b110
		} else {
			bits |= 0b100
		}
	}
	return []byte{byte(bits >> 16), byte(bits >> 8), byte(bits)}
}
