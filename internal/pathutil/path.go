package pathutil

import (
	"regexp"
	"strings"
)

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// IsURL reports whether the given string is an HTTP or HTTPS URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// TemplateParams returns the parameter names of a path template in order of
// appearance. Router-specific pattern suffixes such as {id:[0-9]+} are
// stripped to bare names.
func TemplateParams(tpl string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(tpl, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name, _, _ := strings.Cut(m[1], ":")
		names = append(names, name)
	}
	return names
}

// NormalizeTemplate rewrites router template variables of the form
// {name:pattern} to bare {name} parameters, the form used by OpenAPI
// paths objects.
func NormalizeTemplate(tpl string) string {
	return PathParamRegex.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		name, _, _ := strings.Cut(inner, ":")
		return "{" + name + "}"
	})
}

// CommonPrefix returns the path prefix shared by every endpoint path: the
// longest run of leading static segments, excluding each path's final
// component and anything at or after the first templated segment. It returns
// "/" when the paths share no usable prefix.
//
// For example, given
//
//	/api/v1/items/
//	/api/v1/items/{pk}/
//
// the prefix is /api/v1.
func CommonPrefix(paths []string) string {
	var prefixes [][]string
	for _, p := range paths {
		components := strings.Split(strings.Trim(p, "/"), "/")
		var initial []string
		for _, c := range components {
			if strings.Contains(c, "{") {
				break
			}
			initial = append(initial, c)
		}
		// The final component is the endpoint itself, never prefix.
		if len(initial) <= 1 {
			return "/"
		}
		prefixes = append(prefixes, initial[:len(initial)-1])
	}
	if len(prefixes) == 0 {
		return "/"
	}
	common := prefixes[0]
	for _, p := range prefixes[1:] {
		common = commonSegments(common, p)
		if len(common) == 0 {
			return "/"
		}
	}
	return "/" + strings.Join(common, "/")
}

// commonSegments returns the longest shared leading segment run of a and b.
func commonSegments(a, b []string) []string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
