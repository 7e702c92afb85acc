// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build test

package i18n

import "sync"

// ResetForTests drops the loaded catalogues and the missing-key log, leaving
// the package as it was before Setup. Only built with -tags test; call it
// before any goroutine translates.
func ResetForTests() {
	missingKeyOnce = sync.Map{}
	compiled = sync.Map{}

	localesByTag = nil
	supportedTags = nil
	matcher = nil
}
