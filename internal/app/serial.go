package app

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"
)

// openSerial opens the UART to the access panel, 8N1.
func openSerial(port string, baud int) (io.ReadWriteCloser, error) {
	serialOpts := serial.OpenOptions{
		PortName:              port,
		BaudRate:              uint(baud),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}
	rw, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", port, err)
	}
	return rw, nil
}
