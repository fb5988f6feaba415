package badge

import (
	"strings"

	"github.com/samber/lo"
)

const colorPublicDomain = "7cd958"

var (
	copyleftLicenses = []string{
		"AGPL-1.0", "AGPL-3.0", "CC-BY-SA-4.0", "EPL-1.0", "EPL-2.0", "EUPL-1.1", "EUPL-1.2",
		"GPL-2.0", "GPL-3.0", "LGPL-2.0", "LGPL-2.1", "LGPL-3.0", "LPPL-1.3c", "MPL-2.0",
		"MS-RL", "OFL-1.1", "OSL-3.0",
	}
	permissiveLicenses = []string{
		"AFL-3.0", "Apache-2.0", "Artistic-2.0", "BSD-2-Clause", "BSD-3-Clause", "BSD-3-Clause-Clear",
		"BSL-1.0", "CC-BY-4.0", "ECL-2.0", "ISC", "MIT", "MIT-0", "MS-PL", "NCSA", "PostgreSQL", "Zlib",
	}
	publicDomainLicenses = []string{"CC0-1.0", "Unlicense", "WTFPL"}
)

// License renders a list of license identifiers.
func License(licenses []string) Badge {
	if len(licenses) == 0 {
		return Badge{Label: LicenseLabel, Message: "missing", Color: ColorRed}
	}
	return Badge{
		Label:   LicenseLabel,
		Message: strings.Join(licenses, ", "),
		Color:   licenseColor(licenses),
	}
}

func licenseColor(licenses []string) string {
	switch {
	case lo.SomeBy(licenses, inFamily(copyleftLicenses)):
		return ColorOrange
	case lo.SomeBy(licenses, inFamily(permissiveLicenses)):
		return ColorGreen
	case lo.SomeBy(licenses, inFamily(publicDomainLicenses)):
		return colorPublicDomain
	default:
		return ColorLightgrey
	}
}

// inFamily matches SPDX identifiers, ignoring case and the -only/-or-later suffixes.
func inFamily(family []string) func(string) bool {
	return func(id string) bool {
		id = strings.TrimSuffix(strings.TrimSuffix(id, "-only"), "-or-later")
		id = strings.TrimSuffix(id, "+")
		return lo.ContainsBy(family, func(known string) bool {
			return strings.EqualFold(known, id)
		})
	}
}
