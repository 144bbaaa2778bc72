package avrdmx

import (
	"errors"
	"fmt"
)

// EncodingError reports an encoding the driver cannot transmit with.
type EncodingError struct {
	Encoding string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %q is not supported", e.Encoding)
}

// Failure reasons carried by the device's error codes.
var (
	ErrNullCode          = errors.New("device reported a null error")
	ErrHandshakePrompt   = errors.New("incorrect handshake first prompt")
	ErrHandshakePrompt2  = errors.New("incorrect handshake second prompt")
	ErrReadTimeoutHeader = errors.New("device read timed out before completion of the packet header")
	ErrTooMuchData       = errors.New("device received more data than the declared packet length")
	ErrReadTimeoutBody   = errors.New("device read timed out before the declared packet length arrived")
)

// ProtocolError is a failure of the wire protocol. The driver closes the
// connection before returning one; the caller decides whether to reopen.
type ProtocolError struct {
	Stage string // operation underway when the failure was observed
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// UnknownCodeError is an error marker followed by a code the driver does
// not recognise.
type UnknownCodeError struct {
	Code byte
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown device error code 0x%02x", e.Code)
}

// UnexpectedByteError is a non-error byte received where a specific
// acknowledgement was required.
type UnexpectedByteError struct {
	Byte byte
}

func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("unexpected response byte 0x%02x", e.Byte)
}

// decodeCode maps a device error code to its reason.
func decodeCode(code byte) error {
	switch code {
	case 0x00:
		return ErrNullCode
	case 0x01:
		return ErrHandshakePrompt
	case 0x02:
		return ErrHandshakePrompt2
	case 0x03:
		return ErrReadTimeoutHeader
	case 0x04:
		return ErrTooMuchData
	case 0x05:
		return ErrReadTimeoutBody
	default:
		return &UnknownCodeError{Code: code}
	}
}
