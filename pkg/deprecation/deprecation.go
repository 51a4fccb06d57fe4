package deprecation

// deprecatedKeys maps config keys that are no longer read to the key that
// replaced them. An empty replacement means the setting was dropped.
var (
	deprecatedKeys = map[string]string{
		"baseurl": "api_url",
		"limit":   "page_size",
		"timeout": "request_timeout",
	}
)

// Deprecated returns true if the key is deprecated
func Deprecated(k string) bool {
	_, ok := deprecatedKeys[k]
	return ok
}

// Replacement returns the key that supersedes k, if any
func Replacement(k string) (string, bool) {
	r, ok := deprecatedKeys[k]
	if !ok || r == "" {
		return "", false
	}
	return r, true
}
