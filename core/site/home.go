// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package site

import "github.com/aicoding-caret/caretdocs/core/locale"

// HomeCopy holds the msgids of the landing page.
type HomeCopy struct {
	SiteTitle       string
	SiteDescription string
	HeroTitle       string
	DocsCTA         string
	DocsHref        string
}

// NewHomeCopy returns the landing page copy for l.
func NewHomeCopy(l locale.Locale) HomeCopy {
	return HomeCopy{
		SiteTitle: "{{.Brand}} Docs",
		SiteDescription: "{{.BrandName}} is an AI coding partner named after the text cursor. " +
			"Built on the powerful open-source Cline, we add free credits, dual mode, personas, " +
			"region-specific models, and an improved system prompt/UX, while protecting individual " +
			"workflows, supporting enterprise-grade customization, and evolving toward an AI-native " +
			"coding platform that meets enterprise AI transformation (AX) standards.",
		HeroTitle: "{{.Brand}}, your AI coding partner",
		DocsCTA:   "Go to English Docs",
		DocsHref:  DocsHome(l),
	}
}
