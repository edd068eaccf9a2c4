// Package validation checks and normalizes user payloads before they
// reach the store. All rule violations are accumulated so the caller
// sees every problem at once.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

type Mode int

const (
	// ModeCreate requires name and email to be present.
	ModeCreate Mode = iota
	// ModeUpdate treats every field as optional.
	ModeUpdate
)

var emailPattern = regexp.MustCompile(`(?i)^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// Number tolerates a JSON number or a numeric string, deferring the
// integer check to Validate so a bad age joins the error list instead
// of failing the whole bind.
type Number struct {
	raw string
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.raw = strings.Trim(strings.TrimSpace(string(data)), `"`)
	return nil
}

func (n Number) Int() (int, bool) {
	v, err := strconv.Atoi(n.raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Input is a candidate payload; nil means the field was absent from
// the request.
type Input struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Age      *Number `json:"age"`
	IsActive *bool   `json:"isActive"`
}

// Payload holds the normalized fields that were present in the input.
type Payload struct {
	Name     *string
	Email    *string
	Phone    *string
	Age      *int
	IsActive *bool
}

// Fields returns the present fields keyed by store column, for partial
// updates.
func (p Payload) Fields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.Age != nil {
		fields["age"] = *p.Age
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}
	return fields
}

// Validate applies the rules in order (name, email, age, phone) and
// returns either a normalized payload or the ordered list of
// violations.
func Validate(in Input, mode Mode) (Payload, []string) {
	var out Payload
	var errs []string

	switch {
	case in.Name != nil:
		name := strings.TrimSpace(*in.Name)
		switch {
		case name == "":
			errs = append(errs, "Name is required")
		case len(name) < 2:
			errs = append(errs, "Name must be at least 2 characters")
		case len(name) > 50:
			errs = append(errs, "Name cannot exceed 50 characters")
		default:
			out.Name = &name
		}
	case mode == ModeCreate:
		errs = append(errs, "Name is required")
	}

	switch {
	case in.Email != nil:
		email := strings.TrimSpace(*in.Email)
		switch {
		case email == "":
			errs = append(errs, "Email is required")
		case !emailPattern.MatchString(email):
			errs = append(errs, "Please provide a valid email address")
		default:
			email = strings.ToLower(email)
			out.Email = &email
		}
	case mode == ModeCreate:
		errs = append(errs, "Email is required")
	}

	if in.Age != nil {
		age, ok := in.Age.Int()
		if !ok || age < 1 || age > 120 {
			errs = append(errs, "Age must be between 1 and 120")
		} else {
			out.Age = &age
		}
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		out.Phone = &phone
	}

	if in.IsActive != nil {
		out.IsActive = in.IsActive
	}

	if len(errs) > 0 {
		return Payload{}, errs
	}
	return out, nil
}

// NormalizeEmail applies the same trimming and lower-casing the
// validator does, for uniqueness comparisons against stored values.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
