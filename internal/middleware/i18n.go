package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"promptstudio/internal/i18n"
)

type localeContextKey struct{}

// LocaleKey addresses the negotiated locale in a request context.
var LocaleKey = localeContextKey{}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// I18N negotiates the response locale: an explicit X-Locale header wins, then
// Accept-Language, then the GeoIP country (PL speaks Polish), then the
// configured default.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale, lookup)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, lookup CountryLookup) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return i18n.Normalize(v)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.Negotiate(accept)
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil {
				if strings.EqualFold(country, "PL") {
					return i18n.LocalePolish
				}
				if country != "" {
					return i18n.LocaleEnglish
				}
			}
		}
	}
	if fallback != "" {
		return i18n.Normalize(fallback)
	}
	return i18n.LocalePolish
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LocaleFromContext returns the negotiated locale for the request.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return i18n.LocalePolish
}
