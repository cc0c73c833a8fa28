// Copyright 2020 New Relic Corporation. All rights reserved.
// SPDX-License-Identifier: Apache-2.0
// Package license derives collector hosts and validates license key shape.
package license

import (
	"regexp"
	"strings"
)

const (
	// Length is the only license-key length accepted by the collector.
	Length = 40

	defaultHost = "collector.newrelic.com"
)

var licenseRegex = regexp.MustCompile("^[[:alnum:]]+$")

// IsValid returns true if license is in valid format.
func IsValid(licenseKey string) bool {
	return licenseRegex.MatchString(licenseKey)
}

// Region returns the license's region prefix: the substring before the first
// 'x', or empty if the license contains no 'x'.
func Region(licenseKey string) string {
	if i := strings.IndexByte(licenseKey, 'x'); i >= 0 {
		return licenseKey[:i]
	}
	return ""
}

// PreconnectHost derives the preconnect collector host from an explicit
// override and a license key: the override wins if set, otherwise the host
// is derived from the license's region prefix, falling back to the default
// US collector host.
func PreconnectHost(configuredHost, licenseKey string) string {
	if configuredHost != "" {
		return configuredHost
	}
	if region := Region(licenseKey); region != "" {
		return "collector." + region + ".nr-data.net"
	}
	return defaultHost
}
