// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"encoding/json"
	"fmt"
)

// Platform is the platform a target compiles for.
type Platform int

const (
	// PlatformCommon is also the value of a source set shared by targets of
	// different platforms, and of a source set no compilation uses.
	PlatformCommon Platform = iota
	PlatformJVM
	PlatformJS
	PlatformNative
	PlatformAndroid
)

var platformIDs = map[Platform]string{
	PlatformCommon:  "common",
	PlatformJVM:     "jvm",
	PlatformJS:      "js",
	PlatformNative:  "native",
	PlatformAndroid: "androidJvm",
}

// ParsePlatform maps a plugin platform identifier to a Platform. Unknown
// identifiers report false.
func ParsePlatform(id string) (Platform, bool) {
	for p, s := range platformIDs {
		if s == id {
			return p, true
		}
	}
	return PlatformCommon, false
}

// ID returns the plugin identifier of the platform.
func (p Platform) ID() string {
	if s, ok := platformIDs[p]; ok {
		return s
	}
	return fmt.Sprintf("platform(%d)", int(p))
}

func (p Platform) String() string { return p.ID() }

// MarshalJSON encodes the platform as its identifier.
func (p Platform) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ID())
}

// UnmarshalJSON decodes a platform identifier.
func (p *Platform) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	parsed, ok := ParsePlatform(id)
	if !ok {
		return fmt.Errorf("unknown platform %q", id)
	}
	*p = parsed
	return nil
}
