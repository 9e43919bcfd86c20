package account

import (
	"strings"
	"testing"
)

func validStudentInput() RegisterInput {
	return RegisterInput{
		LastName:   "A",
		FirstName:  "B",
		ClassLevel: "3A",
		Email:      "a@x.com",
		Password:   "secret1",
		BirthDate:  "2005-01-01",
	}
}

func TestValidateStudentOK(t *testing.T) {
	birth, verr := validateRegister(RoleStudent, validStudentInput())
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if birth.Year() != 2005 || birth.Month() != 1 || birth.Day() != 1 {
		t.Fatalf("birth date parsed wrong: %v", birth)
	}
}

func TestValidateStudentMissingFields(t *testing.T) {
	_, verr := validateRegister(RoleStudent, RegisterInput{})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"nom", "prenom", "email", "mot_de_passe", "date_naissance", "niveau_classe"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected error for %s, got %v", field, verr.Fields)
		}
	}
	// Optional fields must not be flagged when absent.
	for _, field := range []string{"telephone", "genre"} {
		if _, ok := verr.Fields[field]; ok {
			t.Errorf("unexpected error for optional field %s", field)
		}
	}
}

func TestValidateFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }, "mot_de_passe"},
		{"bad date", func(in *RegisterInput) { in.BirthDate = "01/05/2005" }, "date_naissance"},
		{"phone too long", func(in *RegisterInput) { in.Phone = "1234567890123456" }, "telephone"},
		{"gender too long", func(in *RegisterInput) { in.Gender = "exceedingly-long" }, "genre"},
		{"name too long", func(in *RegisterInput) { in.LastName = strings.Repeat("a", 256) }, "nom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validStudentInput()
			tc.mutate(&in)
			_, verr := validateRegister(RoleStudent, in)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestValidateTeacherOptionalFields(t *testing.T) {
	in := RegisterInput{
		LastName:  "Durand",
		FirstName: "Claire",
		Email:     "claire@x.com",
		Password:  "secret1",
		BirthDate: "1988-06-12",
		// every teacher-specific field left empty
	}
	if _, verr := validateRegister(RoleTeacher, in); verr != nil {
		t.Fatalf("teacher extras are optional, got %v", verr)
	}

	in.Subject = strings.Repeat("x", 256)
	_, verr := validateRegister(RoleTeacher, in)
	if verr == nil {
		t.Fatal("expected validation error for oversized subject")
	}
	if _, ok := verr.Fields["matiere_a_enseigner"]; !ok {
		t.Fatalf("expected error on matiere_a_enseigner, got %v", verr.Fields)
	}
}

func TestValidateAdminIgnoresRoleExtras(t *testing.T) {
	in := RegisterInput{
		LastName:  "Root",
		FirstName: "Super",
		Email:     "root@x.com",
		Password:  "secret1",
		BirthDate: "1980-01-01",
	}
	if _, verr := validateRegister(RoleAdmin, in); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestValidateLogin(t *testing.T) {
	if verr := validateLogin("", ""); verr == nil {
		t.Fatal("expected validation error for empty credentials")
	} else {
		if _, ok := verr.Fields["email"]; !ok {
			t.Errorf("expected email error, got %v", verr.Fields)
		}
		if _, ok := verr.Fields["mot_de_passe"]; !ok {
			t.Errorf("expected mot_de_passe error, got %v", verr.Fields)
		}
	}
	if verr := validateLogin("a@x.com", "secret1"); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}
