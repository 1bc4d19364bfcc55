package models

// Stage is a position in the consultation funnel.
type Stage string

const (
	StageFamily      Stage = "family"
	StageOccasion    Stage = "occasion"
	StagePersonality Stage = "personality"
	StageBudget      Stage = "budget"
	StageSensitivity Stage = "sensitivity"
	StageComplete    Stage = "complete"
)

// Next returns the stage that follows s.
func (s Stage) Next() Stage {
	switch s {
	case StageFamily:
		return StageOccasion
	case StageOccasion:
		return StagePersonality
	case StagePersonality:
		return StageBudget
	case StageBudget:
		return StageSensitivity
	default:
		return StageComplete
	}
}

// Session is a persisted consultation: the profile collected so far and
// where the user is in the funnel.
type Session struct {
	BaseModel
	UserID    string  `gorm:"index" json:"user_id"`
	Stage     Stage   `json:"stage"`
	Profile   Profile `gorm:"type:jsonb;serializer:json" json:"profile"`
	Archetype string  `json:"archetype,omitempty"`
	Lifestyle string  `json:"lifestyle,omitempty"`
}

// Completed reports whether the consultation has finished.
func (s *Session) Completed() bool {
	return s.Stage == StageComplete
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	s.Profile = s.Profile.Clone()
	return s
}
