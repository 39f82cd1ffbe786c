package mapper

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Namespace prefixes removed from annotation and label keys
const (
	ArgoCDPrefix        = "argocd.argoproj.io/"
	NotificationsPrefix = "notifications.argoproj.io/"
)

// NormalizeKey converts an annotation or label key into a flat camelCase
// identifier:
//
//	argocd.argoproj.io/sync-wave                          -> syncWave
//	notifications.argoproj.io/subscribe.on-sync-succeeded -> subscribeOnSyncSucceeded
//	example.com/team                                      -> team
//	my_custom_key                                         -> myCustomKey
//	simple                                                -> simple
//
// Only the first letter of each following word is changed, the rest of the
// word keeps its original casing. The first word is kept as written even when
// it is empty, so "_internal" becomes "Internal".
func NormalizeKey(key string) string {
	switch {
	case strings.HasPrefix(key, ArgoCDPrefix):
		key = strings.TrimPrefix(key, ArgoCDPrefix)
	case strings.HasPrefix(key, NotificationsPrefix):
		key = strings.TrimPrefix(key, NotificationsPrefix)
	default:
		if i := strings.LastIndex(key, "/"); i >= 0 {
			key = key[i+1:]
		}
	}

	key = strings.NewReplacer("_", "-", ".", "-").Replace(key)
	parts := strings.Split(key, "-")
	if len(parts) == 1 {
		return parts[0]
	}

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(upperFirst(p))
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
