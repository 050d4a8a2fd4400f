package models

import (
	"errors"
	"fmt"
)

// Permission is the notification permission state. It only ever moves
// away from Unrequested, and only once.
type Permission int

const (
	PermissionUnrequested Permission = iota
	PermissionGranted
	PermissionDenied
)

var ErrPermissionTransition = errors.New("invalid permission transition")

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unrequested"
	}
}

// ParsePermission reads the stored form. Unknown values are treated as unrequested.
func ParsePermission(s string) Permission {
	switch s {
	case "granted":
		return PermissionGranted
	case "denied":
		return PermissionDenied
	default:
		return PermissionUnrequested
	}
}

// Transition moves to the next state. Re-entering the current state is allowed.
func (p Permission) Transition(to Permission) (Permission, error) {
	if p == to {
		return p, nil
	}
	if p == PermissionUnrequested && (to == PermissionGranted || to == PermissionDenied) {
		return to, nil
	}
	return p, fmt.Errorf("%w: %s -> %s", ErrPermissionTransition, p, to)
}
