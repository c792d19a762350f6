package booking

import (
	"context"
	"fmt"
	"time"

	"hotel-pipeline/config"
	"hotel-pipeline/models"
	"hotel-pipeline/utils"

	"github.com/chromedp/chromedp"
)

// BookingScraper collects raw hotel rows from Booking.com search results
type BookingScraper struct {
	cfg         *config.Config
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
	tracker     *utils.URLTracker
}

// NewBookingScraper creates a new BookingScraper
func NewBookingScraper(cfg *config.Config, logger *utils.Logger) *BookingScraper {
	return &BookingScraper{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: utils.NewRateLimiter(cfg.RateLimitDelay),
		tracker:     utils.NewURLTracker(),
	}
}

// newContext creates a fresh chromedp context (one browser, one tab)
func (s *BookingScraper) newContext() (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// Scrape is the main entry point: loads the search URL and walks result
// pages until MaxPages or the Next button disappears
func (s *BookingScraper) Scrape() ([]*models.RawHotel, error) {
	s.logger.Info("Starting Booking.com scraper...")

	ctx, cancel := s.newContext()
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 15*time.Minute)
	defer cancelTimeout()

	err := chromedp.Run(ctx,
		chromedp.Navigate(s.cfg.BookingURL),
		chromedp.Sleep(5*time.Second), // give JS time to render
	)
	if err != nil {
		return nil, fmt.Errorf("search page navigation failed: %w", err)
	}

	s.acceptCookies(ctx)

	var allHotels []*models.RawHotel
	for page := 1; page <= s.cfg.MaxPages; page++ {
		s.logger.Info("Scraping page %d/%d...", page, s.cfg.MaxPages)

		hotels, err := s.scrapeCurrentPage(ctx)
		if err != nil {
			s.logger.Error("Page %d failed: %v", page, err)
			break
		}
		if len(hotels) == 0 {
			s.logger.Warn("No property cards found on page %d", page)
			break
		}

		added := 0
		for _, h := range hotels {
			// Cross-page dedup by URL; cards without a URL always pass
			if h.URL != "" && !s.tracker.Add(h.URL) {
				continue
			}
			allHotels = append(allHotels, h)
			added++
		}
		s.logger.Info("Page %d: collected %d hotels (total so far: %d)", page, added, len(allHotels))

		if page == s.cfg.MaxPages {
			break
		}
		s.rateLimiter.Wait()
		if !s.goToNextPage(ctx) {
			s.logger.Info("No more pages available")
			break
		}
	}

	s.logger.Info("Scraping complete. Total raw hotels: %d (%d unique URLs)",
		len(allHotels), s.tracker.Count())
	return allHotels, nil
}

// acceptCookies dismisses the OneTrust consent banner when present
func (s *BookingScraper) acceptCookies(ctx context.Context) {
	var clicked bool
	err := chromedp.Run(ctx, chromedp.Evaluate(`
		(function() {
			var btn = document.querySelector('button#onetrust-accept-btn-handler') ||
			          document.querySelector('button[aria-label*="cookie" i]') ||
			          document.querySelector('button[data-testid*="cookie"]');
			if (btn) { btn.click(); return true; }
			return false;
		})()
	`, &clicked))
	if err != nil {
		s.logger.Warn("Could not handle cookie banner: %v", err)
		return
	}
	if clicked {
		s.logger.Info("Cookie banner accepted")
		_ = chromedp.Run(ctx, chromedp.Sleep(1*time.Second))
	}
}

// scrapeCurrentPage waits for property cards and extracts one RawHotel per card
func (s *BookingScraper) scrapeCurrentPage(ctx context.Context) ([]*models.RawHotel, error) {
	var hotels []*models.RawHotel

	err := utils.RetryWithBackoff(s.cfg.MaxRetries, func() error {
		waitErr := chromedp.Run(ctx, chromedp.WaitVisible(`[data-testid="property-card"]`, chromedp.ByQuery))
		if waitErr != nil {
			// fallback: just wait a bit more
			_ = chromedp.Run(ctx, chromedp.Sleep(3*time.Second))
		}

		type cardData struct {
			Name         string `json:"name"`
			Price        string `json:"price"`
			Score        string `json:"score"`
			ReviewCount  string `json:"reviewCount"`
			Category     string `json:"category"`
			Location     string `json:"location"`
			Cancellation string `json:"cancellation"`
			RoomsLeft    string `json:"roomsLeft"`
			Distance     string `json:"distance"`
			URL          string `json:"url"`
		}
		var cards []cardData

		jsErr := chromedp.Run(ctx, chromedp.Evaluate(`
			(function() {
				function text(root, sel) {
					var el = root.querySelector(sel);
					return el ? el.innerText.trim() : '';
				}

				var cards = [];
				document.querySelectorAll('[data-testid="property-card"]').forEach(function(card) {
					var name = text(card, '[data-testid="title"]');
					var price = text(card, '[data-testid="price-and-discounted-price"]');
					var location = text(card, '[data-testid="address"]') ||
					               text(card, '[data-testid="location"]');
					var distance = text(card, '[data-testid="distance"]');

					// Review block: first div is the numeric score, the rest
					// carries the category label and the review count
					var score = '', count = '', category = '';
					var review = card.querySelector('[data-testid="review-score"]');
					if (review) {
						var divs = review.querySelectorAll('div');
						if (divs.length > 0) score = divs[0].innerText.trim();
						for (var i = 1; i < divs.length; i++) {
							var t = divs[i].innerText.trim();
							if (/review/i.test(t) && !count) count = t;
							else if (t && !/review/i.test(t) && !/^\d/.test(t) && !category) category = t;
						}
					}

					var cancellation = '', roomsLeft = '';
					card.querySelectorAll('div, span').forEach(function(el) {
						var t = el.innerText ? el.innerText.trim() : '';
						if (t.length > 60) return;
						if (/free cancellation/i.test(t) && !cancellation) cancellation = t;
						if (/room(s)? left/i.test(t) && !roomsLeft) roomsLeft = t;
					});

					var linkEl = card.querySelector('a[data-testid="title-link"]') ||
					             card.querySelector('a[href*="/hotel/"]');
					var url = linkEl ? linkEl.href : '';

					if (name) {
						cards.push({name: name, price: price, score: score,
							reviewCount: count, category: category, location: location,
							cancellation: cancellation, roomsLeft: roomsLeft,
							distance: distance, url: url});
					}
				});
				return cards;
			})()
		`, &cards))
		if jsErr != nil {
			return fmt.Errorf("card JS failed: %w", jsErr)
		}

		hotels = nil
		now := time.Now()
		for _, c := range cards {
			hotels = append(hotels, &models.RawHotel{
				Name:            c.Name,
				RawPrice:        c.Price,
				Location:        c.Location,
				RawScore:        c.Score,
				RawReviewCount:  c.ReviewCount,
				ReviewCategory:  c.Category,
				RawCancellation: c.Cancellation,
				RawRoomsLeft:    c.RoomsLeft,
				Distance:        c.Distance,
				URL:             c.URL,
				ScrapedAt:       now,
			})
		}
		return nil
	}, s.logger)

	return hotels, err
}

// goToNextPage clicks the pagination Next button, returning false when the
// results are exhausted
func (s *BookingScraper) goToNextPage(ctx context.Context) bool {
	var clicked bool
	err := chromedp.Run(ctx, chromedp.Evaluate(`
		(function() {
			var btn = document.querySelector('button[aria-label*="Next"]') ||
			          document.querySelector('a[aria-label*="Next"]') ||
			          document.querySelector('[data-testid="pagination"] button:last-child');
			if (btn && !btn.disabled) { btn.click(); return true; }
			return false;
		})()
	`, &clicked))
	if err != nil {
		s.logger.Warn("Error navigating to next page: %v", err)
		return false
	}
	if !clicked {
		return false
	}
	_ = chromedp.Run(ctx, chromedp.Sleep(3*time.Second)) // wait for page to load
	return true
}
