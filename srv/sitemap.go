package srv

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// marketingRoutes are the public pages of the web front-end, listed for
// search engines. API routes are deliberately absent.
var marketingRoutes = []struct {
	path     string
	priority string
}{
	{"/", "1.0"},
	{"/pricing", "0.9"},
	{"/features", "0.8"},
	{"/legal/privacy-policy", "0.3"},
	{"/legal/terms-of-service", "0.3"},
	{"/legal/refund-cancellation-policy", "0.3"},
	{"/legal/shipping-policy", "0.3"},
	{"/legal/subscription-billing-policy", "0.3"},
	{"/legal/gdpr-compliance", "0.3"},
}

func requestBaseURL(r *http.Request) string {
	scheme := "https"
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + host
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	baseURL := requestBaseURL(r)

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	now := time.Now().Format("2006-01-02")
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sb.WriteString("\n")
	for _, route := range marketingRoutes {
		sb.WriteString(fmt.Sprintf(`  <url>
    <loc>%s%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>%s</priority>
  </url>
`, baseURL, route.path, now, route.priority))
	}
	sb.WriteString(`</urlset>`)
	fmt.Fprint(w, sb.String())
}

func (s *Server) handleRobotsTxt(w http.ResponseWriter, r *http.Request) {
	baseURL := requestBaseURL(r)

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, `User-agent: *
Allow: /
Disallow: /admin
Disallow: /api/

Sitemap: %s/sitemap.xml
`, baseURL)
}
