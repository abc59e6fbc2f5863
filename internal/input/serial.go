package input

import (
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaud matches the badge's USB serial console.
const DefaultBaud = 115200

// OpenSerial opens port at baud, 8N1.
func OpenSerial(port string, baud int) (serial.Port, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", port, err)
	}
	return p, nil
}
