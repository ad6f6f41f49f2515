package app

import "strings"

const redactedPassword = "xxxxx"

// redactMongoURI masks the password in a connection string so it can be
// logged. Multi-host seed lists are kept as they are.
func redactMongoURI(raw string) string {
	scheme, rest, found := strings.Cut(strings.TrimSpace(raw), "://")
	if !found {
		return raw
	}

	authority, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		authority, path = rest[:i], rest[i:]
	}

	at := strings.LastIndexByte(authority, '@')
	if at < 0 {
		return raw
	}
	username, _, hasPassword := strings.Cut(authority[:at], ":")
	if !hasPassword {
		return raw
	}

	return scheme + "://" + username + ":" + redactedPassword + "@" + authority[at+1:] + path
}
