package auth

import (
	"net/http"
	"strings"

	"github.com/spec-kit/employee-service/internal/domain"
)

// AccessRule binds HTTP methods and a path pattern to the roles allowed to call it.
// A pattern ending in "/**" matches the prefix itself and everything below it.
// Public rules skip authentication; rules with no roles only require a valid token.
type AccessRule struct {
	Methods []string
	Pattern string
	Roles   []domain.Role
	Public  bool
}

// Matches reports whether the rule applies to method and path. Paths are
// compared case-insensitively.
func (r AccessRule) Matches(method, path string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	path = strings.ToLower(strings.TrimSuffix(path, "/"))
	if path == "" {
		path = "/"
	}
	pattern := strings.ToLower(r.Pattern)
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}

// AccessRules is an ordered rule list; the first matching rule wins.
type AccessRules []AccessRule

// Match returns the first rule applying to the request.
func (rules AccessRules) Match(method, path string) (AccessRule, bool) {
	for _, rule := range rules {
		if rule.Matches(method, path) {
			return rule, true
		}
	}
	return AccessRule{}, false
}

var (
	readers  = []domain.Role{domain.RoleUser, domain.RoleManager, domain.RoleAdmin}
	writers  = []domain.Role{domain.RoleManager, domain.RoleAdmin}
	deleters = []domain.Role{domain.RoleAdmin}
)

// DefaultAccessRules is the URL authorization table of the service.
func DefaultAccessRules() AccessRules {
	return AccessRules{
		{Methods: []string{http.MethodGet}, Pattern: "/", Public: true},
		{Methods: []string{http.MethodGet}, Pattern: "/health/**", Public: true},
		{Methods: []string{http.MethodGet}, Pattern: "/metrics", Public: true},
		{Methods: []string{http.MethodPost}, Pattern: "/api/auth/login", Public: true},
		{Methods: []string{http.MethodPost}, Pattern: "/api/auth/logout"},

		{Methods: []string{http.MethodGet}, Pattern: "/api/departments/**", Roles: readers},
		{Methods: []string{http.MethodPost, http.MethodPut}, Pattern: "/api/departments/**", Roles: writers},
		{Methods: []string{http.MethodDelete}, Pattern: "/api/departments/**", Roles: deleters},

		{Methods: []string{http.MethodGet}, Pattern: "/api/employees/**", Roles: readers},
		{Methods: []string{http.MethodPost, http.MethodPut}, Pattern: "/api/employees/**", Roles: writers},
		{Methods: []string{http.MethodDelete}, Pattern: "/api/employees/**", Roles: deleters},
	}
}
