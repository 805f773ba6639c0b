//go:build !linux

package platform

import "runtime"

// HostInfo returns the generic name, version and architecture of the local
// host. Outside of Linux only the name and architecture are known.
func HostInfo() (name, version, arch string) {
	return runtime.GOOS, "", runtime.GOARCH
}
