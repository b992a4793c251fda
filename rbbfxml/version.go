package rbbfxml

import (
	"fmt"
	"strconv"
	"strings"
)

// FallbackVersion is used when a project does not record the version that
// saved it, or records one that cannot be read.
const FallbackVersion = "2019r1.1"

// ResolveVersion converts a saved-in version token of the form YYYY.RRB
// (year, two-digit release, optional one-digit bugfix) into the displayed
// form YYYYrR[.B]. For example, "2019.011" becomes "2019r1.1" and "2018.04"
// becomes "2018r4".
//
// A token with a year but no release, such as "2020", gets release 1 and no
// bugfix. A token that cannot be read yields FallbackVersion and false.
func ResolveVersion(token string) (string, bool) {
	token = strings.TrimSpace(token)
	year, rest, _ := strings.Cut(token, ".")
	if !digits(year) {
		return FallbackVersion, false
	}
	// Further components are not part of the release.
	rest, _, _ = strings.Cut(rest, ".")
	if rest == "" {
		rest = "1"
	}
	release, bugfix := rest, ""
	if len(rest) > 2 {
		release, bugfix = rest[:2], rest[2:3]
	}
	if !digits(release) || bugfix != "" && !digits(bugfix) {
		return FallbackVersion, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return FallbackVersion, false
	}
	r, _ := strconv.Atoi(release)

	v := fmt.Sprintf("%04dr%d", y, r)
	if bugfix != "" {
		v += "." + bugfix
	}
	return v, true
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
