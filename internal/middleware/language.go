package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/i18n"
)

const (
	ctxLangKey      = "lang"
	ctxLocalizerKey = "localizer"
)

// Language resolves the request language (the ?lang override first, then
// Accept-Language, then the default), stores it with a phrase localizer in
// the context, and echoes the choice back in the Content-Language header.
func Language(neg *i18n.Negotiator, bundle *i18n.Bundle) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := neg.Negotiate(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))
			c.Set(ctxLangKey, lang)
			c.Set(ctxLocalizerKey, i18n.NewLocalizer(bundle, lang))
			c.Response().Header().Set("Content-Language", lang)
			return next(c)
		}
	}
}

// Lang returns the negotiated language for the request, or def when the
// language middleware did not run.
func Lang(c echo.Context, def string) string {
	if l, ok := c.Get(ctxLangKey).(string); ok && l != "" {
		return l
	}
	return def
}

// Localize translates a phrase key in the request language.  Outside the
// language middleware it returns the key verbatim.
func Localize(c echo.Context, key string, args map[string]any) string {
	if l, ok := c.Get(ctxLocalizerKey).(*i18n.Localizer); ok {
		return l.T(key, args)
	}
	return key
}
