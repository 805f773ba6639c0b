package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/k0sproject/platform/kv"
	"github.com/k0sproject/platform/log"
)

// Strategy identifies the parser that produced a platform name.
type Strategy int

const (
	// StrategyFallback means no release file was usable and the generic name was used.
	StrategyFallback Strategy = iota
	// StrategyOSRelease is the os-release NAME / PRETTY_NAME / ID parser.
	StrategyOSRelease
	// StrategyArchLinux is the os-release parser for files carrying lsb style DISTRIB_* keys.
	StrategyArchLinux
	// StrategyLSBRelease is the lsb-release DISTRIB_* parser.
	StrategyLSBRelease
	// StrategyGeneric uses the first line of a free-text release file.
	StrategyGeneric
)

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyOSRelease:
		return "os-release"
	case StrategyArchLinux:
		return "os-release-arch"
	case StrategyLSBRelease:
		return "lsb-release"
	case StrategyGeneric:
		return "generic"
	default:
		return "fallback"
	}
}

// osReleaseFields are the os-release keys used for the platform name.
type osReleaseFields struct {
	PrettyName string `kv:"PRETTY_NAME"`
	Name       string `kv:"NAME"`
	ID         string `kv:"ID"`
}

func (f osReleaseFields) found() bool {
	return f.PrettyName != "" || f.Name != "" || f.ID != ""
}

// PRETTY_NAME is preferred over NAME, ID goes in parentheses.
func (f osReleaseFields) platformName() string {
	desc := f.PrettyName
	if desc == "" {
		desc = f.Name
	}
	return withParenthetical(desc, f.ID)
}

// lsbReleaseFields are the lsb style DISTRIB_* keys.
type lsbReleaseFields struct {
	ID          string `kv:"DISTRIB_ID"`
	Release     string `kv:"DISTRIB_RELEASE"`
	Codename    string `kv:"DISTRIB_CODENAME"`
	Description string `kv:"DISTRIB_DESCRIPTION"`
}

func (f lsbReleaseFields) foundArch() bool {
	return f.Description != "" || f.ID != ""
}

func (f lsbReleaseFields) archPlatformName() string {
	return withParenthetical(f.Description, f.ID)
}

func (f lsbReleaseFields) found() bool {
	return f.Description != "" || f.Codename != "" || f.ID != ""
}

func (f lsbReleaseFields) lsbPlatformName() string {
	if f.Description != "" {
		return withParenthetical(f.Description, f.Codename)
	}
	return withParenthetical(joinNonEmpty(f.ID, f.Release), f.Codename)
}

// withParenthetical returns "desc (extra)", or whichever of the two is non-empty.
func withParenthetical(desc, extra string) string {
	switch {
	case desc != "" && extra != "":
		return desc + " (" + extra + ")"
	case desc != "":
		return desc
	default:
		return extra
	}
}

func joinNonEmpty(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// ReadPlatformName reads a free-text release file such as /etc/redhat-release.
// The first non-empty line is used as the platform name, unless a PRETTY_NAME
// line is found, in which case its value is used. The reader is always read
// until the end. When there are no lines, the platform name is the given name.
//
// A read error is returned as is.
func ReadPlatformName(name, version, arch string, r LineReader) (OSInfo, error) {
	info, _, err := readGeneric(name, version, arch, r)
	return info, err
}

// ReadPlatformNameFromOSRelease reads an os-release file. The platform name is
// "PRETTY_NAME (ID)", with NAME standing in for a missing PRETTY_NAME. If only
// one of the parts is available, it is used alone.
//
// A read error is returned as is.
func ReadPlatformNameFromOSRelease(name, version, arch string, r LineReader) (OSInfo, error) {
	info, _, err := readOSRelease(name, version, arch, r)
	return info, err
}

// ReadPlatformNameFromOSReleaseForArchLinux reads an os-release file that uses
// lsb style keys, as Arch Linux does. The platform name is
// "DISTRIB_DESCRIPTION (DISTRIB_ID)".
//
// A read error is returned as is.
func ReadPlatformNameFromOSReleaseForArchLinux(name, version, arch string, r LineReader) (OSInfo, error) {
	info, _, err := readOSReleaseArch(name, version, arch, r)
	return info, err
}

// ReadPlatformNameFromLSB reads an /etc/lsb-release file. The platform name is
// "DISTRIB_DESCRIPTION (DISTRIB_CODENAME)". Without a description,
// "DISTRIB_ID DISTRIB_RELEASE (DISTRIB_CODENAME)" is built from whatever is
// available.
//
// A read error is returned as is.
func ReadPlatformNameFromLSB(name, version, arch string, r LineReader) (OSInfo, error) {
	info, _, err := readLSBRelease(name, version, arch, r)
	return info, err
}

// The read* functions also report whether the content had anything the
// strategy could use, the Detector moves on to the next strategy when not.

func readGeneric(name, version, arch string, r LineReader) (OSInfo, bool, error) {
	var first, pretty string
	for {
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return OSInfo{}, false, err
		}
		if first == "" && strings.TrimSpace(line) != "" {
			first = line
		}
		if pretty == "" {
			if k, v, ok := kv.Split(strings.TrimSpace(line)); ok && k == "PRETTY_NAME" {
				pretty = kv.Unquote(v)
			}
		}
	}

	platformName := first
	if pretty != "" {
		platformName = pretty
	}
	traceResult(StrategyGeneric, platformName)
	return newOSInfo(name, version, arch, platformName), platformName != "", nil
}

func readOSRelease(name, version, arch string, r LineReader) (OSInfo, bool, error) {
	var f osReleaseFields
	if err := kv.NewDecoder(r).Decode(&f); err != nil {
		return OSInfo{}, false, err
	}
	traceResult(StrategyOSRelease, f.platformName())
	return newOSInfo(name, version, arch, f.platformName()), f.found(), nil
}

func readOSReleaseArch(name, version, arch string, r LineReader) (OSInfo, bool, error) {
	var f lsbReleaseFields
	if err := kv.NewDecoder(r).Decode(&f); err != nil {
		return OSInfo{}, false, err
	}
	traceResult(StrategyArchLinux, f.archPlatformName())
	return newOSInfo(name, version, arch, f.archPlatformName()), f.foundArch(), nil
}

func readLSBRelease(name, version, arch string, r LineReader) (OSInfo, bool, error) {
	var f lsbReleaseFields
	if err := kv.NewDecoder(r).Decode(&f); err != nil {
		return OSInfo{}, false, err
	}
	traceResult(StrategyLSBRelease, f.lsbPlatformName())
	return newOSInfo(name, version, arch, f.lsbPlatformName()), f.found(), nil
}

func traceResult(s Strategy, platformName string) {
	log.Trace(context.Background(), "parsed release file", log.StrategyAttr(s), slog.String("platformName", platformName))
}
