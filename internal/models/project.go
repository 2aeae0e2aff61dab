package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Milestone is a target sub-amount within a project's goal. It has no
// identity of its own; it lives embedded in the project document.
type Milestone struct {
	Title   string  `json:"title"`
	Amount  float64 `json:"amount"`
	Reached bool    `json:"reached"`
}

// Milestones is stored as a single jsonb column so the project row
// updates as one document.
type Milestones []Milestone

func (m Milestones) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

func (m *Milestones) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.New("milestones: expected []byte from jsonb column")
	}
	return json.Unmarshal(b, m)
}

type SocialLinks struct {
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
}

func (s SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SocialLinks) Scan(src interface{}) error {
	if src == nil {
		*s = SocialLinks{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.New("social links: expected []byte from jsonb column")
	}
	return json.Unmarshal(b, s)
}

type Project struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Goal        float64     `json:"goal"`
	Raised      float64     `json:"raised"`
	Category    string      `json:"category"`
	Milestones  Milestones  `json:"milestones"`
	Owner       int         `json:"owner"`
	SocialLinks SocialLinks `json:"socialLinks"`

	// OwnerName is populated only by list queries that join users.
	OwnerName string `json:"ownerName,omitempty"`
}
