package utils

import (
	"sort"
	"strconv"
	"strings"
)

// DetermineLocale resolves the response locale from, in order, an explicit
// lang query param, the Accept-Language header, and the default. Supported
// values are base language codes like "ko", "en".
func DetermineLocale(queryLang, acceptLang string, supported []string, def string) string {
	sup := map[string]bool{}
	for _, s := range supported {
		sup[strings.ToLower(s)] = true
	}

	// matches "en" and region variants like "en-US"
	match := func(lang string) (string, bool) {
		l := strings.ToLower(strings.TrimSpace(lang))
		if l == "" {
			return "", false
		}
		if sup[l] {
			return l, true
		}
		if i := strings.Index(l, "-"); i > 0 && sup[l[:i]] {
			return l[:i], true
		}
		return "", false
	}

	if v, ok := match(queryLang); ok {
		return v
	}

	type cand struct {
		lang string
		q    float64
	}
	var cands []cand
	for _, part := range strings.Split(acceptLang, ",") {
		lang := strings.TrimSpace(part)
		if lang == "" {
			continue
		}
		q := 1.0
		if semi := strings.Index(lang, ";"); semi >= 0 {
			for _, attr := range strings.Split(lang[semi+1:], ";") {
				if k, v, ok := strings.Cut(strings.TrimSpace(attr), "="); ok && strings.TrimSpace(k) == "q" {
					if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
						q = f
					}
				}
			}
			lang = lang[:semi]
		}
		if l, ok := match(lang); ok && q > 0 {
			cands = append(cands, cand{lang: l, q: q})
		}
	}
	if len(cands) > 0 {
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].q > cands[j].q })
		return cands[0].lang
	}

	if v, ok := match(def); ok {
		return v
	}
	if len(supported) > 0 {
		return strings.ToLower(supported[0])
	}
	return "ko"
}
