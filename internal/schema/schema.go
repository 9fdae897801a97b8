// Package schema is the single definition of what a valid Job or
// Application looks like. The same checks run in the Go client before a
// request is sent and in the API before anything is stored.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/job-board/internal/models"
)

// Field order used for reporting. It follows the record definitions.
var (
	jobFields = []string{
		"title", "company", "location", "type", "description",
		"requirements", "deliverables", "technologies",
		"salaryMin", "salaryMax", "experienceLevel", "companyLogo",
		"interviewQuestions", "isActive",
	}
	applicationFields = []string{
		"jobId", "firstName", "lastName", "email", "phone",
		"linkedin", "portfolio", "resumeUrl", "experience",
		"currentSalary", "expectedSalary", "coverLetter", "startDate",
		"workAuthorization",
	}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError names one offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated field in declaration order.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the violations.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ValidateInsertJob checks an untyped record against the insertable Job
// shape. Unknown keys, including server generated ones, are ignored.
func ValidateInsertJob(candidate map[string]any) (models.InsertJob, error) {
	d := &decoder{src: candidate}
	job := models.InsertJob{
		Title:              d.str("title"),
		Company:            d.str("company"),
		Location:           d.str("location"),
		Type:               d.str("type"),
		Description:        d.str("description"),
		Requirements:       d.strs("requirements"),
		Deliverables:       d.strs("deliverables"),
		Technologies:       d.strs("technologies"),
		SalaryMin:          d.optInt("salaryMin"),
		SalaryMax:          d.optInt("salaryMax"),
		ExperienceLevel:    d.str("experienceLevel"),
		CompanyLogo:        d.optStr("companyLogo"),
		InterviewQuestions: d.strs("interviewQuestions"),
		IsActive:           d.optBool("isActive"),
	}
	if err := finish(job, d.errs, jobFields, nil); err != nil {
		return models.InsertJob{}, err
	}
	return job, nil
}

// ValidateInsertApplication checks an untyped record against the
// insertable Application shape. resumeUrl must already be present.
func ValidateInsertApplication(candidate map[string]any) (models.InsertApplication, error) {
	app, errs := decodeApplication(candidate)
	if err := finish(app, errs, applicationFields, nil); err != nil {
		return models.InsertApplication{}, err
	}
	return app, nil
}

// ValidateApplicationForm runs the application checks except resumeUrl,
// which only exists once the server has stored the upload.
func ValidateApplicationForm(candidate map[string]any) (models.InsertApplication, error) {
	app, errs := decodeApplication(candidate)
	skip := map[string]bool{"resumeUrl": true}
	if err := finish(app, errs, applicationFields, skip); err != nil {
		return models.InsertApplication{}, err
	}
	return app, nil
}

func decodeApplication(candidate map[string]any) (models.InsertApplication, []FieldError) {
	d := &decoder{src: candidate}
	app := models.InsertApplication{
		JobID:             d.str("jobId"),
		FirstName:         d.str("firstName"),
		LastName:          d.str("lastName"),
		Email:             d.str("email"),
		Phone:             d.str("phone"),
		Linkedin:          d.optStr("linkedin"),
		Portfolio:         d.optStr("portfolio"),
		ResumeURL:         d.str("resumeUrl"),
		Experience:        d.str("experience"),
		CurrentSalary:     d.optStr("currentSalary"),
		ExpectedSalary:    d.optStr("expectedSalary"),
		CoverLetter:       d.str("coverLetter"),
		StartDate:         d.optStr("startDate"),
		WorkAuthorization: d.str("workAuthorization"),
	}
	return app, d.errs
}

// finish merges shape errors with the struct tag checks, keeps one error
// per field and sorts them by the declared field order.
func finish(v any, errs []FieldError, order []string, skip map[string]bool) error {
	seen := make(map[string]bool, len(errs))
	for _, e := range errs {
		seen[e.Field] = true
	}

	if err := validate.Struct(v); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("schema: %w", err)
		}
		for _, fe := range verrs {
			if seen[fe.Field()] {
				continue
			}
			seen[fe.Field()] = true
			errs = append(errs, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
		}
	}

	kept := errs[:0]
	for _, e := range errs {
		if !skip[e.Field] {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	rank := make(map[string]int, len(order))
	for i, f := range order {
		rank[f] = i
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return rank[kept[i].Field] < rank[kept[j].Field]
	})
	return &ValidationError{Fields: kept}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return "Required"
		}
		return "Must not be empty"
	default:
		return fmt.Sprintf("Failed %q check", fe.Tag())
	}
}

// decoder pulls typed values out of an untyped record and records a
// FieldError for anything missing or of the wrong shape.
type decoder struct {
	src  map[string]any
	errs []FieldError
}

func (d *decoder) fail(field, msg string) {
	d.errs = append(d.errs, FieldError{Field: field, Message: msg})
}

func (d *decoder) lookup(field string) (any, bool) {
	v, ok := d.src[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d *decoder) str(field string) string {
	v, ok := d.lookup(field)
	if !ok {
		d.fail(field, "Required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(field, "Expected string, received "+kindOf(v))
		return ""
	}
	return s
}

func (d *decoder) optStr(field string) models.Optional[string] {
	v, ok := d.lookup(field)
	if !ok {
		return models.None[string]()
	}
	s, ok := v.(string)
	if !ok {
		d.fail(field, "Expected string, received "+kindOf(v))
		return models.None[string]()
	}
	return models.Some(s)
}

func (d *decoder) strs(field string) []string {
	v, ok := d.lookup(field)
	if !ok {
		d.fail(field, "Required")
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				d.fail(field, fmt.Sprintf("Expected string at index %d, received %s", i, kindOf(item)))
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		d.fail(field, "Expected array, received "+kindOf(v))
		return nil
	}
}

func (d *decoder) optInt(field string) models.Optional[int] {
	v, ok := d.lookup(field)
	if !ok {
		return models.None[int]()
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(field, "Expected integer, received "+kindOf(v))
		return models.None[int]()
	}
	return models.Some(n)
}

func (d *decoder) optBool(field string) models.Optional[bool] {
	v, ok := d.lookup(field)
	if !ok {
		return models.None[bool]()
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(field, "Expected boolean, received "+kindOf(v))
		return models.None[bool]()
	}
	return models.Some(b)
}

// toInt accepts Go integer kinds, integral floats (how encoding/json
// decodes numbers) and json.Number.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return toInt(i)
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int(n), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i > math.MaxInt || i < math.MinInt {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	}
	return reflect.TypeOf(v).String()
}
