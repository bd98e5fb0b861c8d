package backend

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// defaultOrigin is the local-development backend. It doubles as the
	// configuration placeholder: a configured origin still pointing at it is
	// treated as "not configured" and the hostname heuristic kicks in.
	defaultOrigin   = "http://127.0.0.1:8000"
	placeholderHost = "127.0.0.1"

	renderSuffix = "onrender.com"
	uiToken      = "-ui."
	apiToken     = "-api."
	uiName       = "influence-ui"
	apiName      = "influence-api"
)

// ResolveOrigin determines the backend origin from the configured value and
// the origin this frontend is publicly served from. Pure and total:
//
//  1. A configured origin that is not the local placeholder wins verbatim
//     (minus a trailing slash).
//  2. On multi-service hosting (Render-style "<name>-ui." / "<name>-api."
//     subdomains sharing a suffix) the API origin is derived by substituting
//     the UI token in the public origin. Best effort: if neither token occurs
//     the public origin is kept unchanged and misconfiguration shows up as a
//     plain connection failure rather than a silent wrong answer.
//  3. Otherwise the local-development default.
func ResolveOrigin(configured, publicOrigin string) string {
	if configured != "" && !strings.Contains(configured, placeholderHost) {
		return strings.TrimSuffix(configured, "/")
	}

	if host := hostOf(publicOrigin); strings.Contains(host, renderSuffix) {
		if strings.Contains(host, uiToken) {
			return strings.TrimSuffix(strings.Replace(publicOrigin, uiToken, apiToken, 1), "/")
		}
		return strings.TrimSuffix(strings.Replace(publicOrigin, uiName, apiName, 1), "/")
	}

	return defaultOrigin
}

// APIBase resolves the origin and appends the backend's /api root. All
// gateway paths are relative to the returned base; nothing downstream
// re-normalizes. The single diagnostic line here is the only side effect of
// origin resolution.
func APIBase(configured, publicOrigin string, log zerolog.Logger) string {
	base := ResolveOrigin(configured, publicOrigin) + "/api"
	log.Info().Str("api_base", base).Msg("resolved backend origin")
	return base
}

func hostOf(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Hostname()
}
