package question

import "strings"

// Difficulty grades a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the accepted values in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts any casing of Easy, Medium or Hard.
// An empty string yields Easy.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Easy, nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", NewValidationError("difficulty", "difficulty must be one of Easy, Medium, Hard: got "+s)
}

// Valid reports whether d is one of the accepted values.
func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// Check rejects values other than the accepted ones. Empty is accepted
// and stands for Easy.
func (d Difficulty) Check() error {
	if d == "" || d.Valid() {
		return nil
	}
	return NewValidationError("difficulty", "difficulty must be one of Easy, Medium, Hard: got "+string(d))
}

// OrDefault returns d, or Easy when d is empty.
func (d Difficulty) OrDefault() Difficulty {
	if d == "" {
		return Easy
	}
	return d
}
