package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
)

var (
	scriptTagRe = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	eventAttrRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsSchemeRe  = regexp.MustCompile(`(?i)javascript\s*:`)
)

// SanitizeString strips script tags, inline event handlers and
// javascript: URLs from a free-text field before it is persisted.
func SanitizeString(s string) string {
	s = scriptTagRe.ReplaceAllString(s, "")
	s = eventAttrRe.ReplaceAllString(s, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	return s
}

// SanitizeQuery rewrites query string values in place so handlers never
// see raw markup. Body fields are sanitized at the controller level for
// the free-text inputs that end up rendered.
func SanitizeQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		changed := false
		for key, vals := range q {
			for i, v := range vals {
				clean := SanitizeString(v)
				if clean != v {
					vals[i] = clean
					changed = true
				}
			}
			q[key] = vals
		}
		if changed {
			c.Request.URL.RawQuery = q.Encode()
		}
		c.Next()
	}
}
