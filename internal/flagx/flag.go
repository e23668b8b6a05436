// Package flagx lets several components parse their own flags out of one
// shared os.Args without tripping over each other's definitions.
package flagx

import (
	"flag"
	"strings"
)

// Allowed maps a flag name (with its leading dashes, e.g. "-a") to whether the
// flag consumes a separate value argument. Boolean flags map to false.
type Allowed map[string]bool

// Valued builds an Allowed set where every name takes a value.
func Valued(names ...string) Allowed {
	a := make(Allowed, len(names))
	for _, n := range names {
		a[n] = true
	}
	return a
}

// FilterArgs returns the subset of args that belongs to the allowed flags,
// in their original order.
//
// Supported forms:
//
//	-c conf.json      value as the next argument (only for valued flags)
//	--config=x.json   value joined with '='
//	-v                boolean flag
//
// A valued flag followed by something that looks like another flag is kept
// without a value and the following token is examined on its own.
func FilterArgs(args []string, allowed Allowed) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		takesValue, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFilePath extracts the JSON config path given via -c or -config.
// Everything else in args is ignored. It returns "" when neither is present.
func ConfigFilePath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Valued("-c", "-config", "--config")))

	return path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
