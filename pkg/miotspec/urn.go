package miotspec

import "strings"

// NormalizeURN strips a trailing ":<digits>" version suffix from a device
// type URN, if present.
//
// urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1:1
// becomes
// urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1
func NormalizeURN(urn string) string {
	i := strings.LastIndex(urn, ":")
	if i < 0 {
		return urn
	}
	if isDigits(urn[i+1:]) {
		return urn[:i]
	}
	return urn
}
