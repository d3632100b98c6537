package toolchain

import (
	"context"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Detection is the result of probing one toolchain.
type Detection struct {
	Toolchain Toolchain
	Present   bool
	// Path is the resolved binary, empty when not present.
	Path string
	// Version is empty when the version query printed nothing version-shaped.
	Version string
}

// Detect reports whether tc's binary is resolvable on the context's search
// path and, if so, queries its version. Presence never depends on the version
// query succeeding.
func Detect(ctx context.Context, ec *ExecContext, tc Toolchain) Detection {
	d := Detection{Toolchain: tc}

	path, err := ec.LookPath(tc.Binary)
	if err != nil {
		return d
	}
	d.Present = true
	d.Path = path

	out, err := ec.Runner.Run(ctx, Command{Path: path, Args: tc.VersionArgs, Env: ec.Environ()})
	if err != nil || out == nil {
		return d
	}
	d.Version = ExtractVersion(out.Stdout)
	if d.Version == "" {
		d.Version = ExtractVersion(out.Stderr)
	}
	return d
}

// DetectActive probes each toolchain in order and returns the first one
// present. ok is false when none is installed; detections holds every probe.
func DetectActive(ctx context.Context, ec *ExecContext, order []Toolchain) (active Detection, detections []Detection, ok bool) {
	for _, tc := range order {
		d := Detect(ctx, ec, tc)
		detections = append(detections, d)
		if d.Present && !ok {
			active, ok = d, true
		}
	}
	return active, detections, ok
}

// ExtractVersion returns the first x.y.z substring of output, or "".
func ExtractVersion(output string) string {
	return versionPattern.FindString(output)
}

// Outdated reports whether the detected version is older than the
// toolchain's minimum. Unknown versions are never reported as outdated.
func (d Detection) Outdated() bool {
	if d.Version == "" || d.Toolchain.MinimumVersion == "" {
		return false
	}
	cmp, err := CompareVersions(d.Version, d.Toolchain.MinimumVersion)
	if err != nil {
		return false
	}
	return cmp < 0
}

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
