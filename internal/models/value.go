package models

import "time"

type Value struct {
	ID         string        `json:"id"`
	Name       string        `json:"name" validate:"required,max=80"`
	Statement  string        `json:"statement" validate:"max=500"`
	Predefined bool          `json:"predefined"`
	Category   ValueCategory `json:"category" validate:"required,oneof=personal relationships professional financial spiritual"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// UpdateValueRequest carries the editable fields of a Value. Nil fields are left untouched.
type UpdateValueRequest struct {
	Name      *string        `json:"name"`
	Statement *string        `json:"statement"`
	Category  *ValueCategory `json:"category"`
}

// PredefinedValue is a suggestion offered during onboarding.
type PredefinedValue struct {
	Name     string
	Category ValueCategory
}

var PredefinedValues = []PredefinedValue{
	{"Integrity", CategoryPersonal},
	{"Health", CategoryPersonal},
	{"Growth", CategoryPersonal},
	{"Family", CategoryRelationships},
	{"Friendship", CategoryRelationships},
	{"Service", CategoryRelationships},
	{"Excellence", CategoryProfessional},
	{"Creativity", CategoryProfessional},
	{"Leadership", CategoryProfessional},
	{"Stewardship", CategoryFinancial},
	{"Generosity", CategoryFinancial},
	{"Faith", CategorySpiritual},
	{"Gratitude", CategorySpiritual},
}
