// Package privilege checks that the process runs as the superuser.
package privilege

import (
	"errors"

	"golang.org/x/sys/unix"
)

// ErrNotRoot is returned when the effective uid is not 0.
var ErrNotRoot = errors.New("not running as root")

// UIDFunc reports the effective user id of the process.
type UIDFunc func() int

// Gate rejects callers that are not the superuser.
type Gate struct {
	euid UIDFunc
}

// NewGate creates a gate reading the real effective uid
func NewGate() *Gate {
	return &Gate{euid: unix.Geteuid}
}

// NewGateWithUID creates a gate with an injected uid source for tests
func NewGateWithUID(euid UIDFunc) *Gate {
	return &Gate{euid: euid}
}

// Check returns ErrNotRoot unless the effective uid is 0.
func (g *Gate) Check() error {
	if g.euid() != 0 {
		return ErrNotRoot
	}
	return nil
}
