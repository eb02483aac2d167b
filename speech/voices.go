package speech

import "golang.org/x/text/language"

// DefaultVoice picks a default voice from the synthesizer's list: local
// voices first, then voices whose language matches the user's locale, then
// everything else. Ties break on list order, so identical voice lists always
// pick the same default.
func DefaultVoice(voices []Voice, locale string) (Voice, error) {
	if len(voices) == 0 {
		return Voice{}, ErrNoVoices
	}

	user, err := language.Parse(locale)
	haveLocale := err == nil

	best, bestScore := 0, -1
	for i, v := range voices {
		score := 0
		if v.Local {
			score += 2
		}
		if haveLocale && matchesLanguage(user, v.Language) {
			score++
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return voices[best], nil
}

// matchesLanguage reports whether a voice language tag shares its base
// language with the user's locale.
func matchesLanguage(user language.Tag, voiceTag string) bool {
	tag, err := language.Parse(voiceTag)
	if err != nil {
		return false
	}
	userBase, _ := user.Base()
	voiceBase, _ := tag.Base()
	return userBase == voiceBase
}
