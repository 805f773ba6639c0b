// Command platformname prints the operating system platform name of the local host.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/acarl005/stripansi"
	"github.com/alessio/shellescape"
	"github.com/k0sproject/platform"
	"github.com/k0sproject/platform/log"
	"golang.org/x/term"
)

var errUnknownFormat = errors.New("unknown output format")

func main() {
	root := flag.String("root", "/", "directory the release files are looked up from")
	format := flag.String("format", "text", "output format: text, env or json")
	debug := flag.Bool("debug", false, "print debug logging to stderr")
	flag.Parse()

	opts := []platform.Option{platform.WithRoot(*root)}
	if *debug {
		logger := log.NewText(os.Stderr, slog.LevelDebug)
		log.SetTraceLogger(logger)
		opts = append(opts, platform.WithLogger(logger))
	}

	info, err := platform.Resolve(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	plain := !term.IsTerminal(int(os.Stdout.Fd()))
	if err := render(os.Stdout, info, *format, plain); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

// render writes info to w in the given format. When plain is set, ANSI escape
// sequences are removed from the platform name, /etc/issue style files may
// contain them.
func render(w io.Writer, info platform.OSInfo, format string, plain bool) error {
	if plain {
		info.PlatformName = stripansi.Strip(info.PlatformName)
	}

	switch format {
	case "text":
		_, err := fmt.Fprintln(w, info.PlatformName)
		return err
	case "env":
		for _, kv := range [][2]string{
			{"OS_NAME", info.Name},
			{"OS_VERSION", info.Version},
			{"OS_ARCH", info.Arch},
			{"OS_PLATFORM_NAME", info.PlatformName},
		} {
			if _, err := fmt.Fprintf(w, "%s=%s\n", kv[0], shellescape.Quote(kv[1])); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
