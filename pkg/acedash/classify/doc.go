// Package classify maps free-text roster fields to chart categories.
//
// Every classifier is a pure, total function: a field that matches nothing
// yields ok == false, never an error. Rules are ordered lists evaluated top
// to bottom and the first match wins, so more specific patterns must be
// listed before the broader patterns they contain.
package classify

import "strings"

// Category is one label of a chart's fixed category set.
type Category = string

// rule maps any of its substrings to a category.
type rule struct {
	needles  []string
	category Category
}

// firstMatch returns the category of the first rule with a needle contained
// in s.
func firstMatch(rules []rule, s string) (Category, bool) {
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(s, n) {
				return r.category, true
			}
		}
	}
	return "", false
}

// ContainsAny reports whether s contains any of the keywords.
func ContainsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
