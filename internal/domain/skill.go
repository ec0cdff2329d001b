package domain

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelExpert       SkillLevel = "Expert"
)

type SkillKind string

const (
	SkillKindOffered SkillKind = "OFFERED"
	SkillKindWanted  SkillKind = "WANTED"
)

// Skill is one entry on a user's offered or wanted list. Rate is the number
// of credits one session of this skill costs.
type Skill struct {
	ID          int32      `json:"id"`
	UserID      int32      `json:"user_id"`
	Kind        SkillKind  `json:"kind"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Rate        int32      `json:"rate"`
	Level       SkillLevel `json:"level"`
	Position    int32      `json:"position"`
	CreatedOn   string     `json:"created_on"`
}

// MarketplaceSkill is an offered skill flattened with its owner's public
// info for the browse view.
type MarketplaceSkill struct {
	Skill
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`
}

func ValidSkillLevel(level SkillLevel) bool {
	switch level {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}
