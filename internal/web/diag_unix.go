//go:build linux || darwin || freebsd

package web

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// hostInfo describes the machine serving the clock.
func hostInfo() []string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return []string{fmt.Sprintf("uname: %v", err)}
	}
	return []string{
		"System: " + unix.ByteSliceToString(u.Sysname[:]),
		"Node: " + unix.ByteSliceToString(u.Nodename[:]),
		"Release: " + unix.ByteSliceToString(u.Release[:]),
		"Machine: " + unix.ByteSliceToString(u.Machine[:]),
	}
}
