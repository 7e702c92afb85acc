// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package site

import (
	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

// Section is a titled column of footer links.
type Section struct {
	Title string
	Links []Link
}

// Footer is the bottom navigation of a page.
type Footer struct {
	Sections  []Section
	Copyright string

	// Address holds the company registration lines, shown in Korean only.
	Address []string
}

const (
	contextProduct = "footer product"
	contextCompany = "footer company"
)

var koreanAddress = []string{
	"(주)캐럿티브 | 대표: 김기환 | 사업자등록번호: 459-81-03703 | 통신판매업 신고번호: 2025-화성동탄-3022호",
	"주소: 경기도 성남시 금토로 52 경기 스타트업 브릿지 811호 | 대표번호: 070-8064-2510 | 문의/제휴: support@caretive.ai",
}

// companySite returns the company site root, which only exists in Korean and English.
func companySite(l locale.Locale) string {
	if l == locale.KO {
		return "https://www.caretive.ai/ko"
	}

	return "https://www.caretive.ai/en"
}

// NewFooter builds the footer for l under b.
func NewFooter(b brand.Brand, l locale.Locale) Footer {
	service := b.ServiceURL(marketingLocale(l))
	company := companySite(l)

	contact := external("Contact", service+"/sales")
	productContact := contact
	productContact.Context = contextProduct
	companyContact := contact
	companyContact.Context = contextCompany

	footer := Footer{
		Sections: []Section{
			{
				Title: "Product",
				Links: []Link{
					external("Download (VS Code)", VSCodeMarketplaceURL),
					external("Download (Open VSX)", OpenVSXURL),
					external("{{.BrandName}} Enterprise Brochure", BrochureURL(b, l)),
					external("Features", service+"/#features"),
					external("Pricing", service+"/#pricing"),
					internal("Docs", DocsHome(l)),
					external("Changelog", service+"/changelog"),
					productContact,
				},
			},
			{
				Title: "Community",
				Links: []Link{
					external("Blog", service+"/blog"),
					{Label: "YouTube", Literal: true, Href: YouTubeURL, External: true},
					{Label: "Discord", Literal: true, Href: DiscordURL, External: true},
					{Label: "GitHub", Literal: true, Href: GitHubURL, External: true},
				},
			},
			{
				Title: "Company",
				Links: []Link{
					external("About", CompanyURL),
					external("News", company+"#news"),
					external("Careers", company+"/recruit"),
					companyContact,
				},
			},
			{
				Title: "Legal",
				Links: []Link{
					external("Terms of Service", service+"/terms"),
					external("Privacy Policy", service+"/privacy"),
				},
			},
		},
		Copyright: "© 2025 Caretive INC / {{.BrandName}}. All rights reserved.",
	}

	if l == locale.KO {
		footer.Address = koreanAddress
	}

	return footer
}
