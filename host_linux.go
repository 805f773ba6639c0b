//go:build linux

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// HostInfo returns the generic name, version and architecture of the local
// host. On Linux these are the kernel name and release as reported by uname(2).
func HostInfo() (name, version, arch string) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "Linux", "", runtime.GOARCH
	}
	return unix.ByteSliceToString(u.Sysname[:]), unix.ByteSliceToString(u.Release[:]), runtime.GOARCH
}
