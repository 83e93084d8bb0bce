//go:build !(linux || darwin || freebsd)

package web

import "runtime"

func hostInfo() []string {
	return []string{"System: " + runtime.GOOS, "Machine: " + runtime.GOARCH}
}
