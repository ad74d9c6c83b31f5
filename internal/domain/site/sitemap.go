package site

import (
	"encoding/xml"
	"strconv"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapEntry struct {
	Fragment string
	Priority float64
}

// Every anchor on the landing page that is worth indexing, in page order.
var sitemapEntries = []sitemapEntry{
	{"", 1.0},
	{"#services", 0.8},
	{"#kitchen-remodeling", 0.9},
	{"#bathroom-remodeling", 0.9},
	{"#transformations", 0.7},
	{"#contact", 0.6},
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders the sitemap for a site rooted at baseURL, stamped with now.
func Sitemap(baseURL string, now time.Time) ([]byte, error) {
	set := urlSet{NS: sitemapNS}
	lastMod := now.UTC().Format(time.RFC3339)
	for _, e := range sitemapEntries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + e.Fragment,
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   formatPriority(e.Priority),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
