// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package particle selects Korean grammatical particles.

Korean particles change form depending on whether the preceding syllable
ends in a final consonant (batchim). For example "캐럿" takes "은" as topic
marker while "캐러티" takes "는".
*/
package particle

// Role is the grammatical role a particle marks.
type Role string

// Supported roles.
const (
	Topic         Role = "topic"
	Subject       Role = "subject"
	Object        Role = "object"
	And           Role = "and"
	Of            Role = "of"
	To            Role = "to"
	At            Role = "at"
	From          Role = "from"
	TopicQuestion Role = "topicQuestion"
	Also          Role = "also"
	Only          Role = "only"
)

// pair holds the particle after a final consonant, then after a vowel.
type pair struct {
	withFinal    string
	withoutFinal string
}

var pairs = map[Role]pair{
	Topic:         {"은", "는"},
	Subject:       {"이", "가"},
	Object:        {"을", "를"},
	And:           {"과", "와"},
	Of:            {"의", "의"},
	To:            {"으로", "로"},
	At:            {"에", "에"},
	From:          {"에서", "에서"},
	TopicQuestion: {"이란", "란"},
	Also:          {"도", "도"},
	Only:          {"만", "만"},
}

// roles in declaration order.
var roles = []Role{Topic, Subject, Object, And, Of, To, At, From, TopicQuestion, Also, Only}

// Roles returns every supported role.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)

	return out
}

// ParseRole recognizes a role name as written in content, e.g. "topicQuestion".
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if _, ok := pairs[r]; !ok {
		return "", false
	}

	return r, true
}

// Select returns the particle for role.
//
// The first variant is used when the word ends in a final consonant,
// the second otherwise. Unknown roles yield "".
func Select(role Role, hasFinalConsonant bool) string {
	p, ok := pairs[role]
	if !ok {
		return ""
	}

	if hasFinalConsonant {
		return p.withFinal
	}

	return p.withoutFinal
}

// Distinguishes reports whether role has different forms after a consonant and a vowel.
func Distinguishes(role Role) bool {
	p := pairs[role]

	return p.withFinal != p.withoutFinal
}

const (
	hangulFirst = 0xAC00
	hangulLast  = 0xD7A3

	// finals is the number of final-consonant slots per syllable block, slot 0 is "none".
	finals = 28
)

// HasFinalConsonant reports whether word ends in a Hangul syllable with a batchim.
//
// Words ending in anything other than a precomposed Hangul syllable report false.
func HasFinalConsonant(word string) bool {
	runes := []rune(word)
	if len(runes) == 0 {
		return false
	}

	last := runes[len(runes)-1]
	if last < hangulFirst || last > hangulLast {
		return false
	}

	return (last-hangulFirst)%finals != 0
}

// Attach appends the particle for role to word, choosing the form from word itself.
func Attach(word string, role Role) string {
	return word + Select(role, HasFinalConsonant(word))
}
