// Package parsing normalizes free-text profile fields at scoring time.
// Nothing here is written back to the profile store.
package parsing

import "strings"

// NormalizeSkill lower-cases and trims a skill entry.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeLocation lower-cases and trims a location string.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// SkillSet normalizes skills into a set. Blank entries are dropped, so a nil or
// all-blank list yields an empty set.
func SkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		normalized := NormalizeSkill(skill)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}
