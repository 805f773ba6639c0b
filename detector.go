package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/k0sproject/platform/log"
	"github.com/k0sproject/platform/plumbing"
	"github.com/mitchellh/go-homedir"
)

var errNoReleaseFile = errors.New("no usable release file found")

// request is what the strategy chain is evaluated against.
type request struct {
	name    string
	version string
	arch    string
}

// Detector picks the release files present on a host and resolves the
// platform name using the most specific strategy that yields a result:
//
//  1. os-release with PRETTY_NAME, NAME or ID
//  2. os-release with lsb style DISTRIB_DESCRIPTION or DISTRIB_ID (Arch Linux)
//  3. lsb-release
//  4. the first line of system-release, other *-release and *_version files,
//     issue and finally the kernel version file
//
// If nothing is usable, the generic name is used as the platform name.
type Detector struct {
	log.LoggerInjectable

	options *Options
	fsys    fs.FS
	chain   *plumbing.Provider[request, OSInfo]
}

// NewDetector creates a new Detector. Without WithFS, the release files are
// read from the local file system under the configured root.
func NewDetector(opts ...Option) (*Detector, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	fsys := options.fsys
	if fsys == nil {
		root, err := homedir.Expand(options.Root)
		if err != nil {
			return nil, ErrInvalidPath.Wrapf("expand root %q: %w", options.Root, err)
		}
		fsys = os.DirFS(root)
	}

	d := &Detector{options: options, fsys: fsys}
	d.SetLogger(options.Log())
	d.chain = plumbing.NewProvider[request, OSInfo](
		errNoReleaseFile,
		d.fromOSRelease,
		d.fromOSReleaseArch,
		d.fromLSBRelease,
		d.fromGenericFiles,
	)
	return d, nil
}

// Detect resolves the platform name for a host with the given generic name,
// version and architecture. Only Linux hosts are inspected, for anything else
// the name is returned as the platform name.
//
// Missing release files are skipped. An error is returned when a release file
// exists but can not be read, it can be checked with errors.Is against
// ErrReadReleaseFile and the underlying cause.
func (d *Detector) Detect(name, version, arch string) (OSInfo, error) {
	if !isLinux(name) {
		d.Log().Debug("not a linux host, using generic name", "name", name)
		return newOSInfo(name, version, arch, ""), nil
	}

	info, err := d.chain.Get(request{name: name, version: version, arch: arch})
	if errors.Is(err, errNoReleaseFile) {
		d.Log().Debug("no usable release file, using generic name", log.KeyStrategy, StrategyFallback.String())
		return newOSInfo(name, version, arch, ""), nil
	}
	if err != nil {
		return OSInfo{}, err
	}
	return info, nil
}

func isLinux(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "linux")
}

// readFunc is one of the read* parsers.
type readFunc func(name, version, arch string, r LineReader) (OSInfo, bool, error)

// readFile runs fn over the file at path. A file that does not exist, or is a
// directory, gives plumbing.ErrNoMatch, as does content fn can not use.
func (d *Detector) readFile(path string, s Strategy, req request, fn readFunc) (OSInfo, error) {
	f, err := d.fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return OSInfo{}, plumbing.ErrNoMatch
		}
		return OSInfo{}, ErrReadReleaseFile.Wrapf("open %s: %w", path, err)
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.IsDir() {
		return OSInfo{}, plumbing.ErrNoMatch
	}

	info, ok, err := fn(req.name, req.version, req.arch, NewLineReader(f))
	if err != nil {
		return OSInfo{}, ErrReadReleaseFile.Wrapf("read %s: %w", path, err)
	}
	if !ok {
		d.Log().Debug("release file has nothing usable", log.KeyFile, path, log.KeyStrategy, s.String())
		return OSInfo{}, plumbing.ErrNoMatch
	}
	d.Log().Debug("resolved platform name", log.KeyFile, path, log.KeyStrategy, s.String(), "platformName", info.PlatformName)
	return info, nil
}

// osReleasePath returns the first os-release file that exists.
func (d *Detector) osReleasePath() (string, bool) {
	for _, p := range d.options.OSReleasePaths {
		if st, err := fs.Stat(d.fsys, p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

func (d *Detector) fromOSRelease(req request) (OSInfo, error) {
	path, ok := d.osReleasePath()
	if !ok {
		return OSInfo{}, plumbing.ErrNoMatch
	}
	return d.readFile(path, StrategyOSRelease, req, readOSRelease)
}

func (d *Detector) fromOSReleaseArch(req request) (OSInfo, error) {
	path, ok := d.osReleasePath()
	if !ok {
		return OSInfo{}, plumbing.ErrNoMatch
	}
	return d.readFile(path, StrategyArchLinux, req, readOSReleaseArch)
}

func (d *Detector) fromLSBRelease(req request) (OSInfo, error) {
	if d.options.LSBReleasePath == "" {
		return OSInfo{}, plumbing.ErrNoMatch
	}
	return d.readFile(d.options.LSBReleasePath, StrategyLSBRelease, req, readLSBRelease)
}

func (d *Detector) fromGenericFiles(req request) (OSInfo, error) {
	candidates, err := d.genericCandidates()
	if err != nil {
		return OSInfo{}, err
	}
	for _, path := range candidates {
		info, err := d.readFile(path, StrategyGeneric, req, readGeneric)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, plumbing.ErrNoMatch) {
			return OSInfo{}, err
		}
	}
	return OSInfo{}, plumbing.ErrNoMatch
}

// genericCandidates lists the free-text release files in the order they are tried.
func (d *Detector) genericCandidates() ([]string, error) {
	skip := append([]string{d.options.LSBReleasePath}, d.options.OSReleasePaths...)
	var candidates []string
	add := func(p string) {
		if p == "" || slices.Contains(skip, p) || slices.Contains(candidates, p) {
			return
		}
		candidates = append(candidates, p)
	}

	add(d.options.SystemReleasePath)
	for _, g := range d.options.ReleaseGlobs {
		matches, err := fs.Glob(d.fsys, g)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", g, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	add(d.options.IssuePath)
	add(d.options.ProcVersionPath)
	return candidates, nil
}
