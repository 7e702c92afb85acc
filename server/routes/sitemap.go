// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/aicoding-caret/caretdocs/core/locale"
	"github.com/aicoding-caret/caretdocs/server/request_context"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc   string        `xml:"loc"`
	Links []sitemapLink `xml:"xhtml:link"`
}

type sitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Sitemap is the handler for /sitemap.xml.
//
// Every English page is listed once per locale, since untranslated pages
// are served from English. Each entry carries its hreflang alternates.
func (d *Docs) Sitemap(w http.ResponseWriter, r *http.Request) error {
	slugs, err := d.Pages.List(locale.Default)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	siteURL := request_context.FromRequest(r).CommonData.SiteURL

	set := urlSet{
		NS:    sitemapNS,
		XHTML: xhtmlNS,
		URLs:  make([]sitemapURL, 0, len(slugs)*len(locale.All())),
	}

	for _, slug := range slugs {
		for _, l := range locale.All() {
			pathname := "/" + string(l)
			if slug != "" {
				pathname += "/" + slug
			}

			alternates := locale.AlternateLinks(siteURL, pathname)

			entry := sitemapURL{
				Loc:   siteURL + pathname,
				Links: make([]sitemapLink, 0, len(alternates)),
			}

			for _, alt := range alternates {
				entry.Links = append(entry.Links, sitemapLink{Rel: "alternate", HrefLang: alt.HrefLang, Href: alt.Href})
			}

			set.URLs = append(set.URLs, entry)
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return enc.Encode(set)
}
