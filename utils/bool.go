package utils

var affirmative = map[string]struct{}{
	"1": {}, "YES": {}, "Yes": {}, "yes": {}, "Y": {}, "y": {},
	"TRUE": {}, "True": {}, "true": {}, "T": {}, "t": {},
}

// ParseAffirmative reports whether s is one of the accepted "yes" tokens.
// Matching is case-sensitive; an absent value should be passed as "".
func ParseAffirmative(s string) bool {
	_, ok := affirmative[s]
	return ok
}
