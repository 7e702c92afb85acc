// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package site

import (
	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

// Dropdown is a labelled group of navbar links.
type Dropdown struct {
	Label string
	Links []Link
}

// Navbar is the top navigation of a page.
type Navbar struct {
	Locale   locale.Locale
	Service  Link
	Download Dropdown
	Language Dropdown
	GitHub   Link
}

// NewNavbar builds the navbar for a page at pathname served in l under b.
//
// On a documentation page the language links point at the same page in the
// other locales. Elsewhere they point at each locale's docs entry page.
func NewNavbar(b brand.Brand, l locale.Locale, pathname string) Navbar {
	onDocPage := locale.HasExplicit(pathname) && locale.StripPrefix(pathname) != "/"

	languages := make([]Link, 0, len(locale.All()))
	for _, target := range locale.All() {
		href := DocsHome(target)
		if onDocPage {
			href = locale.SwitchPath(pathname, target)
		}

		languages = append(languages, Link{
			Label:   target.Label(),
			Literal: true,
			Href:    href,
			Active:  target == l,
			Locale:  target,
		})
	}

	return Navbar{
		Locale:  l,
		Service: Link{Label: "Service", Href: b.ServiceURL(l), External: true},
		Download: Dropdown{
			Label: "Download",
			Links: []Link{
				{Label: "VS Code Marketplace", Literal: true, Href: VSCodeMarketplaceURL, External: true},
				{Label: "Open VSX", Literal: true, Href: OpenVSXURL, External: true},
				external("Brochure", BrochureURL(b, l)),
			},
		},
		Language: Dropdown{Label: "Language", Links: languages},
		GitHub:   Link{Label: "GitHub", Literal: true, Href: GitHubURL, External: true},
	}
}
