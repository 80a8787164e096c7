package platforms

import (
	"fmt"
	"regexp"
	"strings"

	"api/models"
)

// Slug derivation is a pure function: the same contest name always yields
// the same slug. Stored contests persist their slug at ingestion time; the
// live aggregate recomputes it on every fetch, so the rules below must not
// change behavior for existing names without a migration.
var (
	roundRe    = regexp.MustCompile(`(?i)Round\s+(\d+)`)
	divRe      = regexp.MustCompile(`(?i)Div\.?\s*(\d+)`)
	eduRe      = regexp.MustCompile(`(?i)Educational.*?(\d+)`)
	weeklyRe   = regexp.MustCompile(`(?i)weekly\s+contest\s+(\d+)`)
	biweeklyRe = regexp.MustCompile(`(?i)biweekly\s+contest\s+(\d+)`)

	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// DeriveSlug computes the stable URL identifier for a contest name.
// Platform-specific pattern rules are tried first, then a generic slugify,
// then fallbackKey. The result is never empty as long as fallbackKey isn't.
func DeriveSlug(name string, platform models.Platform, fallbackKey string) string {
	slug := ""

	switch platform {
	case models.PlatformCodeforces:
		// Educational before Round: educational rounds are also named
		// "... Round N" and must not collapse into the round rule.
		if strings.Contains(name, "Educational") {
			if m := eduRe.FindStringSubmatch(name); m != nil {
				slug = "educational" + m[1]
			} else {
				slug = "educational"
			}
		} else if m := roundRe.FindStringSubmatch(name); m != nil {
			slug = "round" + m[1]
			if d := divRe.FindStringSubmatch(name); d != nil {
				slug += "-div" + d[1]
			}
		}
	case models.PlatformLeetCode:
		// Biweekly first: "Biweekly Contest N" also contains "weekly contest N".
		if m := biweeklyRe.FindStringSubmatch(name); m != nil {
			slug = "biweekly" + m[1]
		} else if m := weeklyRe.FindStringSubmatch(name); m != nil {
			slug = "weekly" + m[1]
		}
	}

	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		slug = fallbackKey
	}
	return slug
}

// Slugify lowercases a name, strips everything but word characters, spaces
// and hyphens, collapses whitespace to hyphens, and truncates to 30 bytes.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}

// FallbackSlug is the deterministic last-resort identifier assigned by the
// aggregator when an adapter produced an empty slug.
func FallbackSlug(platform models.Platform, index int) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(string(platform)), index)
}
