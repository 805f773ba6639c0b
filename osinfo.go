// Package platform resolves a human readable operating system platform name
// such as "Ubuntu 9.10 (karmic)" from the release description files found on
// Linux hosts.
package platform

// OSInfo describes the host operating system. Name, Version and Arch are the
// generic values supplied by the caller, PlatformName is derived from the
// release files.
type OSInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Arch         string `json:"arch"`
	PlatformName string `json:"platformName"`
}

// newOSInfo falls back to name when no platform name could be derived.
func newOSInfo(name, version, arch, platformName string) OSInfo {
	if platformName == "" {
		platformName = name
	}
	return OSInfo{
		Name:         name,
		Version:      version,
		Arch:         arch,
		PlatformName: platformName,
	}
}

// String returns the platform name.
func (o OSInfo) String() string {
	return o.PlatformName
}
