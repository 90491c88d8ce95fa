package usecases

import (
	"strings"

	"github.com/samirrijal/venuehub/internal/core/domain"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
	"github.com/samirrijal/venuehub/internal/pkg/geospatial"
)

// NormalizeVenue derives the display center from the anchor and attaches the
// configured venue image. cfg is only read; a nil cfg skips the image lookup.
func NormalizeVenue(v *domain.Venue, cfg *domain.AppConfig) error {
	center, ok := geospatial.ReverseCoordinates(v.Anchor.Coordinates)
	if !ok {
		return apperrors.ErrInvalidVenue(v.ID, "anchor must have exactly 2 coordinates")
	}
	v.Center = center

	if cfg != nil {
		if img, ok := cfg.VenueImages[strings.ToLower(v.Name)]; ok {
			v.Image = img
		}
	}
	return nil
}
