package account

import "time"

// Role identifies which record set an account belongs to. Email uniqueness is
// enforced per role, not globally.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Account is a persisted identity record. The wire names follow the public API
// contract, which predates this service. Role-specific fields stay empty for
// the roles they do not apply to and are omitted from responses.
type Account struct {
	ID           string    `json:"id"`
	Role         Role      `json:"-"`
	LastName     string    `json:"nom"`
	FirstName    string    `json:"prenom"`
	Email        string    `json:"email"`
	Phone        string    `json:"telephone,omitempty"`
	PasswordHash []byte    `json:"-"`
	BirthDate    time.Time `json:"date_naissance"`
	Gender       string    `json:"genre,omitempty"`

	// Student only.
	ClassLevel string `json:"niveau_classe,omitempty"`

	// Teacher only. Active stays false until an administrator approves the
	// account through a separate back-office flow.
	EducationLevel string `json:"niveau_etude,omitempty"`
	DiplomaPhoto   string `json:"photo_diplome,omitempty"`
	Subject        string `json:"matiere_a_enseigner,omitempty"`
	ProfilePhoto   string `json:"photo_profile,omitempty"`
	Description    string `json:"description,omitempty"`
	Active         *bool  `json:"is_active,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RegisterInput is the raw registration payload before validation. The birth
// date arrives as a string and is parsed during validation.
type RegisterInput struct {
	LastName       string `json:"nom"`
	FirstName      string `json:"prenom"`
	Email          string `json:"email"`
	Phone          string `json:"telephone"`
	Password       string `json:"mot_de_passe"`
	BirthDate      string `json:"date_naissance"`
	Gender         string `json:"genre"`
	ClassLevel     string `json:"niveau_classe"`
	EducationLevel string `json:"niveau_etude"`
	DiplomaPhoto   string `json:"photo_diplome"`
	Subject        string `json:"matiere_a_enseigner"`
	ProfilePhoto   string `json:"photo_profile"`
	Description    string `json:"description"`
	Active         bool   `json:"is_active"`
}
