package domain

import "time"

// Identity is what the identity provider tells us about a signed-in user
type Identity struct {
	UID         string `json:"uid" binding:"required"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// UserProfile is the stored account profile
type UserProfile struct {
	UID                 string    `json:"uid"`
	Email               string    `json:"email,omitempty"`
	DisplayName         string    `json:"displayName,omitempty"`
	PhotoURL            string    `json:"photoURL,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	Birthday            string    `json:"birthday,omitempty"`
	AvatarID            string    `json:"avatarId,omitempty"`
	SustainabilityScore int       `json:"sustainabilityScore"` // gamification score
	Wishlist            []string  `json:"wishlist"`            // product ids
	CreatedAt           time.Time `json:"createdAt"`
}

// ProfileUpdate is a partial profile update; nil fields are left untouched
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Birthday    *string `json:"birthday,omitempty"`
	AvatarID    *string `json:"avatarId,omitempty"`
}

// Apply copies the set fields onto profile
func (u ProfileUpdate) Apply(profile *UserProfile) {
	if u.DisplayName != nil {
		profile.DisplayName = *u.DisplayName
	}
	if u.PhotoURL != nil {
		profile.PhotoURL = *u.PhotoURL
	}
	if u.Bio != nil {
		profile.Bio = *u.Bio
	}
	if u.Birthday != nil {
		profile.Birthday = *u.Birthday
	}
	if u.AvatarID != nil {
		profile.AvatarID = *u.AvatarID
	}
}

// IsEmpty reports whether the update changes nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.PhotoURL == nil && u.Bio == nil &&
		u.Birthday == nil && u.AvatarID == nil
}
