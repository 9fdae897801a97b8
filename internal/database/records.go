package database

import (
	"time"
)

// JobRecord is the row layout of a job. Seq keeps insertion order.
type JobRecord struct {
	ID                 string    `gorm:"primaryKey;type:varchar(64)"`
	Seq                uint64    `gorm:"autoIncrement;uniqueIndex"`
	Title              string    `gorm:"not null"`
	Company            string    `gorm:"not null"`
	Location           string    `gorm:"not null"`
	Type               string    `gorm:"not null"`
	Description        string    `gorm:"type:text;not null"`
	Requirements       []string  `gorm:"serializer:json;type:jsonb;not null"`
	Deliverables       []string  `gorm:"serializer:json;type:jsonb;not null"`
	Technologies       []string  `gorm:"serializer:json;type:jsonb;not null"`
	SalaryMin          *int      `gorm:"type:integer"`
	SalaryMax          *int      `gorm:"type:integer"`
	ExperienceLevel    string    `gorm:"not null"`
	CompanyLogo        *string   `gorm:"type:text"`
	InterviewQuestions []string  `gorm:"serializer:json;type:jsonb;not null"`
	PostedAt           time.Time `gorm:"not null"`
	// No default tag: gorm would skip a false value on insert.
	IsActive bool `gorm:"not null;index"`
}

func (JobRecord) TableName() string { return "jobs" }

type ApplicationRecord struct {
	ID                string    `gorm:"primaryKey;type:varchar(64)"`
	Seq               uint64    `gorm:"autoIncrement;uniqueIndex"`
	JobID             string    `gorm:"type:varchar(64);not null;index"`
	FirstName         string    `gorm:"not null"`
	LastName          string    `gorm:"not null"`
	Email             string    `gorm:"not null"`
	Phone             string    `gorm:"not null"`
	Linkedin          *string   `gorm:"type:text"`
	Portfolio         *string   `gorm:"type:text"`
	ResumeURL         string    `gorm:"column:resume_url;not null"`
	Experience        string    `gorm:"not null"`
	CurrentSalary     *string   `gorm:"type:text"`
	ExpectedSalary    *string   `gorm:"type:text"`
	CoverLetter       string    `gorm:"type:text;not null"`
	StartDate         *string   `gorm:"type:text"`
	WorkAuthorization string    `gorm:"not null"`
	AppliedAt         time.Time `gorm:"not null"`
}

func (ApplicationRecord) TableName() string { return "applications" }
