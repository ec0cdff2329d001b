package domain

type User struct {
	ID           int32   `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Name         string  `json:"name"`
	Bio          string  `json:"bio"`
	AvatarURL    string  `json:"avatar_url"`
	Credits      int32   `json:"credits"`
	Skills       []Skill `json:"skills,omitempty"` // Populated when needed
	CreatedOn    string  `json:"created_on"`
	UpdatedOn    string  `json:"updated_on"`
}

// PublicProfile strips the fields other members should not see.
func (u *User) PublicProfile() *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedOn: u.CreatedOn,
	}
}
