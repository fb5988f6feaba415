package badge

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// Versions starting with a non-digit or embedding a date get no "v" prefix.
	noPrefixRe   = regexp.MustCompile(`^[^0-9]|[0-9]{4}-[0-9]{2}-[0-9]{2}`)
	prereleaseRe = regexp.MustCompile(`(?i)alpha|beta|snapshot|dev|pre|rc`)
)

// Version renders a version string.
func Version(version string) Badge {
	return Badge{
		Label:   VersionLabel,
		Message: addV(version),
		Color:   versionColor(version),
	}
}

func addV(version string) string {
	if strings.HasPrefix(version, "v") || noPrefixRe.MatchString(version) {
		return version
	}
	return "v" + version
}

func versionColor(version string) string {
	bare := strings.TrimPrefix(strings.TrimPrefix(version, "v"), "=")
	if strings.HasPrefix(bare, "0") || prereleaseRe.MatchString(bare) {
		return ColorOrange
	}
	if v := "v" + bare; semver.IsValid(v) && semver.Prerelease(v) != "" {
		return ColorOrange
	}
	return ColorBlue
}
