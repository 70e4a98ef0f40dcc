package resolver

import "net/url"

// GenerateAvatarURL builds the identicon URL used when a user has not set an
// avatar of their own.
func GenerateAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=007bff&color=fff"
}
