package score

import "strings"

// compatibleLicenses is the fixed set of identifiers considered
// compatible with LGPL-2.1 distribution. Membership is case-insensitive.
var compatibleLicenses = map[string]bool{
	"mit":               true,
	"bsd-2-clause":      true,
	"bsd-3-clause":      true,
	"apache-2.0":        true,
	"isc":               true,
	"zlib":              true,
	"mpl-2.0":           true,
	"epl-2.0":           true,
	"cddl-1.0":          true,
	"lgpl-2.1":          true,
	"lgpl-2.1-or-later": true,
	"gpl-2.0":           true,
}

// Compatible returns 1 when the license identifier is in the
// compatible set, 0 otherwise.
func Compatible(license string) int {
	if compatibleLicenses[strings.ToLower(strings.TrimSpace(license))] {
		return 1
	}
	return 0
}
