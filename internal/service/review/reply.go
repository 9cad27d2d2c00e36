package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

// Reply answers a review. The text is trimmed and stripped of markup; a
// review can be answered only once.
func (s *Service) Reply(ctx context.Context, in ReplyInput) (*domain.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("review.Reply: %w", err)
	}

	text := s.sanitize(in.Text)
	if text == "" {
		return nil, fmt.Errorf("review.Reply: %w", domain.NewValidationError("text", "required"))
	}

	updated, err := s.reviews.SetResponse(ctx, in.ReviewID, domain.ReviewResponse{
		Text: text,
		Date: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("review.Reply: %w", err)
	}

	if s.rec != nil {
		s.rec.ReviewReplied()
	}
	s.log.InfoContext(ctx, "review replied",
		slog.String("review_id", in.ReviewID),
		slog.String("location_id", updated.LocationID),
		slog.Int("length", len(text)))

	return updated, nil
}

// safeEntities undoes the escaping of characters that cannot open markup.
// &lt; and &gt; stay escaped.
var safeEntities = strings.NewReplacer(
	"&amp;", "&",
	"&#39;", "'",
	"&#34;", `"`,
	"&quot;", `"`,
)

// sanitize strips all markup and returns the remaining text.
func (s *Service) sanitize(raw string) string {
	return strings.TrimSpace(safeEntities.Replace(s.policy.Sanitize(strings.TrimSpace(raw))))
}
