package account

import (
	"regexp"
	"strings"
	"time"
)

const (
	maxNameLen   = 255
	maxPhoneLen  = 15
	maxGenderLen = 10
	minPassword  = 6

	birthDateLayout = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateRegister applies the role's schema to the raw payload and returns the
// parsed birth date. All rules run before returning so the caller sees every
// rejected field at once.
func validateRegister(role Role, in RegisterInput) (time.Time, *ValidationError) {
	fields := map[string]string{}

	requireMax(fields, "nom", in.LastName, maxNameLen)
	requireMax(fields, "prenom", in.FirstName, maxNameLen)

	switch {
	case strings.TrimSpace(in.Email) == "":
		fields["email"] = "email is required"
	case len(in.Email) > maxNameLen:
		fields["email"] = "email must be at most 255 characters"
	case !emailPattern.MatchString(in.Email):
		fields["email"] = "email must be a valid email address"
	}

	if in.Phone != "" && len(in.Phone) > maxPhoneLen {
		fields["telephone"] = "telephone must be at most 15 characters"
	}

	switch {
	case in.Password == "":
		fields["mot_de_passe"] = "mot_de_passe is required"
	case len(in.Password) < minPassword:
		fields["mot_de_passe"] = "mot_de_passe must be at least 6 characters"
	}

	var birth time.Time
	if strings.TrimSpace(in.BirthDate) == "" {
		fields["date_naissance"] = "date_naissance is required"
	} else {
		var err error
		birth, err = parseBirthDate(in.BirthDate)
		if err != nil {
			fields["date_naissance"] = "date_naissance must be a valid date"
		}
	}

	if in.Gender != "" && len(in.Gender) > maxGenderLen {
		fields["genre"] = "genre must be at most 10 characters"
	}

	switch role {
	case RoleStudent:
		requireMax(fields, "niveau_classe", in.ClassLevel, maxNameLen)
	case RoleTeacher:
		optionalMax(fields, "niveau_etude", in.EducationLevel, maxNameLen)
		optionalMax(fields, "photo_diplome", in.DiplomaPhoto, maxNameLen)
		optionalMax(fields, "matiere_a_enseigner", in.Subject, maxNameLen)
		optionalMax(fields, "photo_profile", in.ProfilePhoto, maxNameLen)
		// description is free text, no length rule
	}

	if len(fields) > 0 {
		return time.Time{}, &ValidationError{Fields: fields}
	}
	return birth, nil
}

// validateLogin only checks presence; credential verification happens against
// the stored hash.
func validateLogin(email, password string) *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	}
	if password == "" {
		fields["mot_de_passe"] = "mot_de_passe is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func parseBirthDate(raw string) (time.Time, error) {
	if t, err := time.Parse(birthDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func requireMax(fields map[string]string, name, value string, max int) {
	switch {
	case strings.TrimSpace(value) == "":
		fields[name] = name + " is required"
	case len(value) > max:
		fields[name] = name + " must be at most 255 characters"
	}
}

func optionalMax(fields map[string]string, name, value string, max int) {
	if value != "" && len(value) > max {
		fields[name] = name + " must be at most 255 characters"
	}
}
