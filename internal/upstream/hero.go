package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wardiya/storefront/internal/models"
)

// FetchHeroSlides assembles the hero carousel from its two sources:
// marketing promotions and currently active occasions. The sub-fetches run
// concurrently and one failing degrades to the other's slides; only both
// failing is an error, since then no output can be produced.
func (c *Client) FetchHeroSlides(ctx context.Context, now time.Time) ([]models.HeroSlide, error) {
	var (
		promotions []models.Promotion
		occasions  []models.Occasion
		promoErr   error
		occErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		promotions, promoErr = c.GetPromotions(ctx)
		return nil
	})
	g.Go(func() error {
		occasions, occErr = c.GetOccasions(ctx)
		return nil
	})
	_ = g.Wait()

	if promoErr != nil && occErr != nil {
		return nil, fmt.Errorf("hero slides: promotions: %v; occasions: %w", promoErr, occErr)
	}
	if promoErr != nil {
		slog.Warn("hero promotions fetch failed, serving occasion slides only", "error", promoErr)
	}
	if occErr != nil {
		slog.Warn("hero occasions fetch failed, serving promotion slides only", "error", occErr)
	}

	slides := make([]models.HeroSlide, 0, len(promotions))
	for _, p := range promotions {
		slides = append(slides, models.SlideFromPromotion(p))
	}
	for _, o := range occasions {
		slides = append(slides, models.SlidesFromOccasion(o, now)...)
	}
	return slides, nil
}
