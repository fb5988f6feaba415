package manifest

import (
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// LicenseKind tags the shape a license entry had in the manifest.
type LicenseKind int

const (
	// LicenseKindString is a bare SPDX identifier, e.g. "MIT".
	LicenseKindString LicenseKind = iota
	// LicenseKindObject is an object carrying the identifier and optionally a URL.
	LicenseKindObject
)

// License is one license entry of a manifest.
type License struct {
	Kind       LicenseKind
	Name       string // set for LicenseKindString
	Identifier string // set for LicenseKindObject
	URL        string // optional, LicenseKindObject only
}

// LicenseList is the ordered list of license identifiers of a package.
type LicenseList []string

func (l LicenseList) String() string {
	return strings.Join(l, ", ")
}

// ID returns the plain identifier of the entry.
func (l License) ID() string {
	if l.Kind == LicenseKindObject {
		return l.Identifier
	}
	return l.Name
}

// Normalize flattens license entries into identifiers, keeping manifest order.
func Normalize(licenses []License) LicenseList {
	return lo.Map(licenses, func(l License, _ int) string {
		return l.ID()
	})
}

// parseLicenses reads the license field of a validated manifest.
// A scalar entry is treated as a one-element list.
func parseLicenses(field gjson.Result) []License {
	entries := []gjson.Result{field}
	if field.IsArray() {
		entries = field.Array()
	}
	return lo.Map(entries, func(e gjson.Result, _ int) License {
		if e.IsObject() {
			return License{
				Kind:       LicenseKindObject,
				Identifier: e.Get("identifier").String(),
				URL:        e.Get("url").String(),
			}
		}
		return License{Kind: LicenseKindString, Name: e.String()}
	})
}
