//go:build !linux || tinygo

package internal

import (
	"errors"
	"net/netip"
)

// Bridge is unsupported outside Linux: AF_PACKET raw sockets are a Linux-only
// facility.
type Bridge struct {
}

func NewBridge(name string) (*Bridge, error) {
	return nil, errors.ErrUnsupported
}

func (br *Bridge) Write(frame []byte) (int, error) {
	return -1, errors.ErrUnsupported
}

func (br *Bridge) Read(frame []byte) (int, error) {
	return -1, errors.ErrUnsupported
}

func (br *Bridge) Close() error {
	return errors.ErrUnsupported
}

func (br *Bridge) MTU() (int, error) {
	return -1, errors.ErrUnsupported
}

func (br *Bridge) HardwareAddress6() (hw [6]byte, err error) {
	return hw, errors.ErrUnsupported
}

func (br *Bridge) SetHardwareAddress6(hw [6]byte) error {
	return errors.ErrUnsupported
}

func (br *Bridge) IPMask() (netip.Prefix, error) {
	return netip.Prefix{}, errors.ErrUnsupported
}

func (br *Bridge) Addr() (netip.Addr, error) {
	return netip.Addr{}, errors.ErrUnsupported
}
