package models

import "time"

type ResetReport struct {
	Connection string    `json:"connection,omitempty"`
	Platform   string    `json:"platform"`
	Tables     []string  `json:"tables"`
	Sequences  []string  `json:"sequences,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`
}

func (r *ResetReport) TableCount() int {
	return len(r.Tables)
}

func (r *ResetReport) SequenceCount() int {
	return len(r.Sequences)
}
