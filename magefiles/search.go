//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs it for query with debug output, e.g.
//
//	mage search "cancer immunotherapy AND 2023[dp]"
func Search(query string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, query, "--debug")
}
