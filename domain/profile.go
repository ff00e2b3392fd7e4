package domain

import (
	"time"

	"github.com/google/uuid"
)

// Social link platforms accepted on a profile
const (
	SocialYoutube   = "youtube"
	SocialTwitter   = "twitter"
	SocialFacebook  = "facebook"
	SocialInstagram = "instagram"
	SocialLinkedin  = "linkedin"
)

// Profile is the developer profile aggregate, owned by exactly one user.
// Experience and education entries are owned sub-documents with stable
// generated identifiers.
type Profile struct {
	UserID         string            `json:"user"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Status         string            `json:"status"`
	Skills         []string          `json:"skills"`
	Bio            string            `json:"bio,omitempty"`
	GithubUsername string            `json:"githubUsername,omitempty"`
	Social         map[string]string `json:"social,omitempty"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Experience is a work history entry
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

func (e Experience) entryID() string { return e.ID }

// Education is a schooling history entry
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

func (e Education) entryID() string { return e.ID }

// ProfileUpdate carries a partial profile update. Nil fields are absent
// from the request and leave the stored value untouched.
type ProfileUpdate struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Skills         []string
	Bio            *string
	GithubUsername *string
	Social         map[string]string
}

// NewProfile creates an empty profile for a user
func NewProfile(userID string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:     userID,
		Skills:     []string{},
		Social:     map[string]string{},
		Experience: []Experience{},
		Education:  []Education{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Apply merges the fields present in the update into the profile. This is a
// partial-update merge, never a full replace.
func (p *Profile) Apply(update ProfileUpdate) {
	if update.Company != nil {
		p.Company = *update.Company
	}
	if update.Website != nil {
		p.Website = *update.Website
	}
	if update.Location != nil {
		p.Location = *update.Location
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Skills != nil {
		p.Skills = update.Skills
	}
	if update.Bio != nil {
		p.Bio = *update.Bio
	}
	if update.GithubUsername != nil {
		p.GithubUsername = *update.GithubUsername
	}
	if update.Social != nil {
		if p.Social == nil {
			p.Social = map[string]string{}
		}
		for platform, link := range update.Social {
			p.Social[platform] = link
		}
	}
	p.UpdatedAt = time.Now().UTC()
}

// AddExperience prepends a work history entry and assigns its identifier
func (p *Profile) AddExperience(exp Experience) Experience {
	exp.ID = uuid.New().String()
	p.Experience = insertFront(p.Experience, exp)
	p.UpdatedAt = time.Now().UTC()
	return exp
}

// RemoveExperience deletes a work history entry by identifier
func (p *Profile) RemoveExperience(id string) error {
	entries, removed := removeByID(p.Experience, id)
	if !removed {
		return ErrExperienceNotFound
	}
	p.Experience = entries
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// AddEducation prepends a schooling entry and assigns its identifier
func (p *Profile) AddEducation(edu Education) Education {
	edu.ID = uuid.New().String()
	p.Education = insertFront(p.Education, edu)
	p.UpdatedAt = time.Now().UTC()
	return edu
}

// RemoveEducation deletes a schooling entry by identifier
func (p *Profile) RemoveEducation(id string) error {
	entries, removed := removeByID(p.Education, id)
	if !removed {
		return ErrEducationNotFound
	}
	p.Education = entries
	p.UpdatedAt = time.Now().UTC()
	return nil
}
