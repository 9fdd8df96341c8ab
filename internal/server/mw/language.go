package mw

import (
	"github.com/gin-gonic/gin"

	"saassyadmin/internal/i18n"
)

// LanguageMiddleware negotiates the response language from Accept-Language.
// Unsupported languages fall back to English instead of failing the request.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Negotiate(c.GetHeader("Accept-Language"))
		c.Set(CtxLanguage, lang)
		c.Header("Content-Language", lang)
		c.Header("Vary", "Accept-Language")
		c.Next()
	}
}
