package models

import (
	"time"
)

// Job is a posting on the board. Only active jobs are listed.
type Job struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Company            string           `json:"company"`
	Location           string           `json:"location"`
	Type               string           `json:"type"` // Full-time, Part-time, Contract, Internship
	Description        string           `json:"description"`
	Requirements       []string         `json:"requirements"`
	Deliverables       []string         `json:"deliverables"`
	Technologies       []string         `json:"technologies"`
	SalaryMin          Optional[int]    `json:"salaryMin"`
	SalaryMax          Optional[int]    `json:"salaryMax"`
	ExperienceLevel    string           `json:"experienceLevel"`
	CompanyLogo        Optional[string] `json:"companyLogo"`
	InterviewQuestions []string         `json:"interviewQuestions"`
	PostedAt           time.Time        `json:"postedAt"`
	IsActive           bool             `json:"isActive"`
}

// InsertJob is the client supplied part of a Job. The store fills in
// ID and PostedAt, and IsActive when it is absent.
type InsertJob struct {
	Title              string           `json:"title" validate:"required"`
	Company            string           `json:"company" validate:"required"`
	Location           string           `json:"location" validate:"required"`
	Type               string           `json:"type" validate:"required"`
	Description        string           `json:"description" validate:"required"`
	Requirements       []string         `json:"requirements" validate:"required"`
	Deliverables       []string         `json:"deliverables" validate:"required"`
	Technologies       []string         `json:"technologies" validate:"required"`
	SalaryMin          Optional[int]    `json:"salaryMin"`
	SalaryMax          Optional[int]    `json:"salaryMax"`
	ExperienceLevel    string           `json:"experienceLevel" validate:"required"`
	CompanyLogo        Optional[string] `json:"companyLogo"`
	InterviewQuestions []string         `json:"interviewQuestions" validate:"required"`
	IsActive           Optional[bool]   `json:"isActive"`
}

// Application is a candidate's submission for a job. JobID is not checked
// against the stored jobs.
type Application struct {
	ID                string           `json:"id"`
	JobID             string           `json:"jobId"`
	FirstName         string           `json:"firstName"`
	LastName          string           `json:"lastName"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	Linkedin          Optional[string] `json:"linkedin"`
	Portfolio         Optional[string] `json:"portfolio"`
	ResumeURL         string           `json:"resumeUrl"`
	Experience        string           `json:"experience"`
	CurrentSalary     Optional[string] `json:"currentSalary"`
	ExpectedSalary    Optional[string] `json:"expectedSalary"`
	CoverLetter       string           `json:"coverLetter"`
	StartDate         Optional[string] `json:"startDate"`
	WorkAuthorization string           `json:"workAuthorization"`
	AppliedAt         time.Time        `json:"appliedAt"`
}

// InsertApplication is the client supplied part of an Application.
// ResumeURL is filled by the server from the stored upload before
// validation runs.
type InsertApplication struct {
	JobID             string           `json:"jobId" validate:"required"`
	FirstName         string           `json:"firstName" validate:"required"`
	LastName          string           `json:"lastName" validate:"required"`
	Email             string           `json:"email" validate:"required"`
	Phone             string           `json:"phone" validate:"required"`
	Linkedin          Optional[string] `json:"linkedin"`
	Portfolio         Optional[string] `json:"portfolio"`
	ResumeURL         string           `json:"resumeUrl" validate:"required"`
	Experience        string           `json:"experience" validate:"required"`
	CurrentSalary     Optional[string] `json:"currentSalary"`
	ExpectedSalary    Optional[string] `json:"expectedSalary"`
	CoverLetter       string           `json:"coverLetter" validate:"required"`
	StartDate         Optional[string] `json:"startDate"`
	WorkAuthorization string           `json:"workAuthorization" validate:"required"`
}

// Clone returns a copy of j that shares no slices with it.
func (j Job) Clone() Job {
	j.Requirements = cloneStrings(j.Requirements)
	j.Deliverables = cloneStrings(j.Deliverables)
	j.Technologies = cloneStrings(j.Technologies)
	j.InterviewQuestions = cloneStrings(j.InterviewQuestions)
	return j
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
