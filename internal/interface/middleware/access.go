package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/runnershi/runnershi/config"
	"github.com/runnershi/runnershi/pkg/response"
)

// Access lets requests for public paths through and rejects everything else
// with 401, since no authentication mechanism is wired yet. Under the
// STATELESS policy nothing here reads or creates cookies or sessions.
func Access(sec config.SecurityConfig) gin.HandlerFunc {
	patterns := append([]string(nil), sec.PublicPaths...)
	return func(c *gin.Context) {
		if IsPublic(patterns, c.Request.URL.Path) {
			c.Next()
			return
		}
		response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required", nil)
	}
}

// IsPublic reports whether p matches one of patterns. A trailing "/**"
// matches the prefix itself and anything below it; other patterns use
// path.Match.
func IsPublic(patterns []string, p string) bool {
	p = path.Clean("/" + p)
	for _, pat := range patterns {
		if prefix, ok := strings.CutSuffix(pat, "/**"); ok {
			if p == prefix || strings.HasPrefix(p, prefix+"/") {
				return true
			}
			continue
		}
		if ok, err := path.Match(pat, p); err == nil && ok {
			return true
		}
	}
	return false
}
