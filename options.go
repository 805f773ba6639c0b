package platform

import (
	"io/fs"
	"path"

	"github.com/creasty/defaults"
	"github.com/k0sproject/platform/log"
)

// Options configures where a Detector looks for release files. Paths are
// relative to Root and use forward slashes, as required by io/fs.
type Options struct {
	log.LoggerInjectable

	// Root is the directory the release file paths are relative to. A leading "~" is expanded.
	Root string `yaml:"root" default:"/"`
	// OSReleasePaths are tried in order, the first existing one is used.
	OSReleasePaths []string `yaml:"osReleasePaths" default:"[\"etc/os-release\",\"usr/lib/os-release\"]"`
	// LSBReleasePath is the lsb-release file.
	LSBReleasePath string `yaml:"lsbReleasePath" default:"etc/lsb-release"`
	// SystemReleasePath is the first generic release file tried.
	SystemReleasePath string `yaml:"systemReleasePath" default:"etc/system-release"`
	// ReleaseGlobs are expanded in order, matches are tried in lexical order.
	ReleaseGlobs []string `yaml:"releaseGlobs" default:"[\"etc/*-release\",\"etc/*_version\"]"`
	// IssuePath is the pre-login banner file.
	IssuePath string `yaml:"issuePath" default:"etc/issue"`
	// ProcVersionPath is the kernel version file, the last resort.
	ProcVersionPath string `yaml:"procVersionPath" default:"proc/version"`

	fsys fs.FS
}

// Option is a functional option for the Detector.
type Option func(*Options)

// WithRoot sets the root directory for the release file paths.
func WithRoot(root string) Option {
	return func(o *Options) {
		o.Root = root
	}
}

// WithFS sets the file system to read the release files from. Root is ignored when set.
func WithFS(fsys fs.FS) Option {
	return func(o *Options) {
		o.fsys = fsys
	}
}

// WithOSReleasePaths replaces the list of os-release file paths.
func WithOSReleasePaths(paths ...string) Option {
	return func(o *Options) {
		o.OSReleasePaths = paths
	}
}

// WithLSBReleasePath replaces the lsb-release file path.
func WithLSBReleasePath(path string) Option {
	return func(o *Options) {
		o.LSBReleasePath = path
	}
}

// WithLogger sets the logger for the detector.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) {
		o.SetLogger(logger)
	}
}

// Apply applies the options.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// NewOptions creates a new Options struct with the supplied options applied over the defaults.
func NewOptions(opts ...Option) (*Options, error) {
	options := &Options{}
	if err := defaults.Set(options); err != nil {
		return nil, ErrInvalidOptions.Wrap(err)
	}
	options.Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// Validate checks that the configured paths are usable with io/fs.
func (o *Options) Validate() error {
	paths := append([]string{o.LSBReleasePath, o.SystemReleasePath, o.IssuePath, o.ProcVersionPath}, o.OSReleasePaths...)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !fs.ValidPath(p) {
			return ErrInvalidPath.Wrapf("%q is not a valid unrooted slash separated path", p)
		}
	}
	for _, g := range o.ReleaseGlobs {
		if !fs.ValidPath(g) {
			return ErrInvalidPath.Wrapf("%q is not a valid unrooted slash separated glob", g)
		}
		if _, err := path.Match(g, ""); err != nil {
			return ErrInvalidPath.Wrapf("glob %q: %w", g, err)
		}
	}
	return nil
}
