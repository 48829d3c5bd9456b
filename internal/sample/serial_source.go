package sample

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"
)

type serialSource struct {
	port   io.ReadCloser
	reader *bufio.Reader
}

// NewSerialSource opens a serial port and reads orientation-log lines from
// it. Devices that interleave status chatter with samples are tolerated:
// anything that does not parse is skipped with a diagnostic.
func NewSerialSource(portName string, baudRate uint) (Source, error) {
	opts := serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	log.Printf("serial source opened on %s at %d baud", portName, baudRate)

	return &serialSource{port: port, reader: bufio.NewReader(port)}, nil
}

// Next blocks until a well-formed sample line arrives.
func (s *serialSource) Next() (Sample, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return Sample{}, fmt.Errorf("serial read: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sm, err := ParseLine(line)
		if err != nil {
			log.Printf("serial: skipping malformed line: %v", err)
			continue
		}
		return sm, nil
	}
}

// Close releases the serial port.
func (s *serialSource) Close() error {
	return s.port.Close()
}
