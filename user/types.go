package user

import "github.com/google/uuid"

// User is a registered contestant. Nick is the public display name
// used by the leaderboard; everything else stays private.
type User struct {
	UUID              uuid.UUID
	Email             string
	Nick              string
	YearLevel         string
	PreferredLanguage string
}

// YearLevels are the study years a contestant may register with.
var YearLevels = []string{"1", "2", "3", "4", "5", "5+", "Postgraduate"}

// PreferredLanguages are the languages the code editor offers.
var PreferredLanguages = []string{"cpp", "python", "java"}
