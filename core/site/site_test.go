// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicoding-caret/caretdocs/core/brand"
	"github.com/aicoding-caret/caretdocs/core/locale"
)

func TestOGImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		l    locale.Locale
		want string
	}{
		{locale.EN, "https://docs.careti.ai/og/ogtag-en.webp"},
		{locale.KO, "https://docs.careti.ai/og/ogtag-ko.webp"},
		{locale.JA, "https://docs.careti.ai/og/ogtag-ja.webp"},
		{locale.ZH, "https://docs.careti.ai/og/ogtag-zh.webp"},
		{locale.FR, "https://docs.careti.ai/og/ogtag-en.webp"},
		{locale.RU, "https://docs.careti.ai/og/ogtag-en.webp"},
	}

	for _, tt := range tests {
		t.Run(string(tt.l), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, OGImage("https://docs.careti.ai/", tt.l))
		})
	}
}

func TestNavbar(t *testing.T) {
	t.Parallel()

	caret := brand.MustLookup(brand.Caret)

	nav := NewNavbar(caret, locale.KO, "/ko/getting-started/installing-caret")
	assert.Equal(t, "https://caret.team/ko", nav.Service.Href)
	assert.Equal(t, "Service", nav.Service.Label)

	require.Len(t, nav.Download.Links, 3)
	assert.Equal(t, VSCodeMarketplaceURL, nav.Download.Links[0].Href)
	assert.Equal(t, OpenVSXURL, nav.Download.Links[1].Href)
	assert.Equal(t, "https://caret.team/ko/brochure", nav.Download.Links[2].Href)

	require.Len(t, nav.Language.Links, len(locale.All()))
	assert.Equal(t, "/en/getting-started/installing-caret", nav.Language.Links[0].Href)
	assert.Equal(t, "English", nav.Language.Links[0].Label)
	assert.True(t, nav.Language.Links[0].Literal)
	assert.True(t, nav.Language.Links[1].Active)
	assert.False(t, nav.Language.Links[0].Active)
	assert.Equal(t, locale.KO, nav.Language.Links[1].Locale)

	assert.Equal(t, GitHubURL, nav.GitHub.Href)
}

func TestNavbarOutsideDocs(t *testing.T) {
	t.Parallel()

	careti := brand.MustLookup(brand.Careti)

	for _, pathname := range []string{"/", "/fr", "/search"} {
		nav := NewNavbar(careti, locale.FR, pathname)
		assert.Equal(t, "/ja/getting-started/what-is-caret", nav.Language.Links[2].Href, pathname)
	}

	nav := NewNavbar(careti, locale.FR, "/fr")
	assert.Equal(t, "https://careti.ai/fr", nav.Service.Href)
	// The service site has no French brochure.
	assert.Equal(t, "https://careti.ai/en/brochure", nav.Download.Links[2].Href)
}

func TestFooter(t *testing.T) {
	t.Parallel()

	careti := brand.MustLookup(brand.Careti)

	footer := NewFooter(careti, locale.KO)
	require.Len(t, footer.Sections, 4)
	assert.Equal(t, []string{"Product", "Community", "Company", "Legal"}, []string{
		footer.Sections[0].Title, footer.Sections[1].Title, footer.Sections[2].Title, footer.Sections[3].Title,
	})

	product := footer.Sections[0].Links
	require.Len(t, product, 8)
	assert.Equal(t, "https://careti.ai/ko/brochure", product[2].Href)
	assert.Equal(t, "https://careti.ai/ko/#features", product[3].Href)
	assert.Equal(t, "/ko/getting-started/what-is-caret", product[5].Href)
	assert.False(t, product[5].External)
	assert.Equal(t, contextProduct, product[7].Context)

	company := footer.Sections[2].Links
	assert.Equal(t, "https://www.caretive.ai/ko#news", company[1].Href)
	assert.Equal(t, "https://www.caretive.ai/ko/recruit", company[2].Href)
	assert.Equal(t, contextCompany, company[3].Context)

	assert.Len(t, footer.Address, 2)

	footer = NewFooter(careti, locale.JA)
	assert.Empty(t, footer.Address)
	assert.Equal(t, "https://www.caretive.ai/en#news", footer.Sections[2].Links[1].Href)

	footer = NewFooter(careti, locale.DE)
	assert.Equal(t, "https://careti.ai/en/terms", footer.Sections[3].Links[0].Href)
	assert.Equal(t, "/de/getting-started/what-is-caret", footer.Sections[0].Links[5].Href)
}

func TestVars(t *testing.T) {
	t.Parallel()

	vars := Vars(brand.MustLookup(brand.Caret), locale.KO)
	assert.Equal(t, []any{"Brand", "캐럿", "BrandName", "Caret", "BrandTopic", "캐럿은"}, vars)

	vars = Vars(brand.MustLookup(brand.Careti), locale.EN)
	assert.Equal(t, []any{"Brand", "Careti", "BrandName", "Careti", "BrandTopic", "Careti"}, vars)
}

func TestHomeCopy(t *testing.T) {
	t.Parallel()

	home := NewHomeCopy(locale.ZH)
	assert.Equal(t, "/zh/getting-started/what-is-caret", home.DocsHref)
	assert.Equal(t, "{{.Brand}} Docs", home.SiteTitle)
}
