package review

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// MaxReplyLength is the maximum length of a reply in characters.
const MaxReplyLength = 4096

// ListInput holds the review inbox filters.
type ListInput struct {
	LocationID string
	// Rating selects an exact star rating; 0 means any.
	Rating  int
	Replied domain.RepliedFilter
}

func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Rating != 0 && (i.Rating < domain.MinRating || i.Rating > domain.MaxRating) {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 1 and 5, or 0 for any"})
	}
	if i.Replied == "" {
		i.Replied = domain.RepliedAll
	}
	if !i.Replied.IsValid() {
		errs = append(errs, domain.FieldError{Field: "replied", Message: "must be one of all, yes, no"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReplyInput is a reply submitted from the inbox.
type ReplyInput struct {
	ReviewID string
	Text     string
}

func (i *ReplyInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ReviewID) == "" {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}

	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(text) > MaxReplyLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
