package tldr

import "context"

// Platform identifies one of the top-level page directories in the tldr repository.
type Platform string

// Platform constants. The set is fixed by the repository layout.
const (
	PlatformCommon  Platform = "common"
	PlatformLinux   Platform = "linux"
	PlatformOSX     Platform = "osx"
	PlatformSunOS   Platform = "sunos"
	PlatformWindows Platform = "windows"
)

// Platforms returns every known platform in declaration order.
func Platforms() []Platform {
	return []Platform{
		PlatformCommon,
		PlatformLinux,
		PlatformOSX,
		PlatformSunOS,
		PlatformWindows,
	}
}

// ParsePlatform returns the Platform named by s.
// Returns EINVALID if s is not a known platform.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", Errorf(EINVALID, "unknown platform %q", s)
}

// Page identifies a single tldr page: one command on one platform.
// Page is comparable and safe to use as a map key.
type Page struct {
	Platform Platform `json:"platform"`
	Command  string   `json:"command"`
}

// String returns the page in "<platform>/<command>" form.
func (p Page) String() string {
	return string(p.Platform) + "/" + p.Command
}

// PageIndex is a catalog of the pages available upstream.
type PageIndex interface {
	// Initialize populates the catalog from the remote repository.
	// A failure for one platform leaves the others populated; only a
	// failure to list the platforms themselves is returned.
	Initialize(ctx context.Context) error

	// Resolve returns the page for command. If the command exists on
	// several platforms the common page wins, otherwise the first match
	// in catalog order is returned. Returns false if nothing matches.
	Resolve(command string) (Page, bool)

	// Done is closed once initialization has finished, successfully or not.
	Done() <-chan struct{}
}
