package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"interview-agent/internal/domain"
)

const MaxJobTitleLength = 255

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAgentRequest checks the generation inputs. Both fields are required
// after trimming, and the title must fit the job_title column.
func (v *Validator) ValidateAgentRequest(jobTitle, jobDescription string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		errors = append(errors, domain.NewMissingFieldError("job_title"))
	} else if n := utf8.RuneCountInString(jobTitle); n > MaxJobTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("job_title", n, 1, MaxJobTitleLength))
	}

	if strings.TrimSpace(jobDescription) == "" {
		errors = append(errors, domain.NewMissingFieldError("job_description"))
	}

	return errors
}

// ValidateHistoryLimit parses the optional limit query value.
// An absent value returns 0, meaning "use the default".
func (v *Validator) ValidateHistoryLimit(raw string) (int, domain.ValidationErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, domain.ValidationErrors{
			domain.NewInvalidValueError("limit", raw, "'limit' must be a positive integer"),
		}
	}
	return limit, nil
}

// ValidateRecordID parses a record id path parameter.
func (v *Validator) ValidateRecordID(raw string) (int64, domain.ValidationErrors) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{
			domain.NewInvalidValueError("id", raw, "'id' must be a positive integer"),
		}
	}
	return id, nil
}
