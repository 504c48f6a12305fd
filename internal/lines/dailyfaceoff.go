// Package lines scrapes published line combinations from Daily Faceoff
// as an optional fallback source for the roster poster. The page is
// rendered client-side, so fetching goes through a headless browser.
package lines

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/fortuna/hockeyhook/internal/roster"
)

const (
	baseURL   = "https://www.dailyfaceoff.com/teams/%s/line-combinations"
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// minRequestInterval keeps successive scrapes polite.
	minRequestInterval = 2 * time.Second
)

// teamSlug maps NHL team abbreviations to Daily Faceoff URL slugs.
var teamSlug = map[string]string{
	"ANA": "anaheim-ducks", "BOS": "boston-bruins", "BUF": "buffalo-sabres",
	"CGY": "calgary-flames", "CAR": "carolina-hurricanes", "CHI": "chicago-blackhawks",
	"COL": "colorado-avalanche", "CBJ": "columbus-blue-jackets", "DAL": "dallas-stars",
	"DET": "detroit-red-wings", "EDM": "edmonton-oilers", "FLA": "florida-panthers",
	"LAK": "los-angeles-kings", "MIN": "minnesota-wild", "MTL": "montreal-canadiens",
	"NJD": "new-jersey-devils", "NSH": "nashville-predators", "NYI": "new-york-islanders",
	"NYR": "new-york-rangers", "OTT": "ottawa-senators", "PHI": "philadelphia-flyers",
	"PIT": "pittsburgh-penguins", "SJS": "san-jose-sharks", "SEA": "seattle-kraken",
	"STL": "st-louis-blues", "TBL": "tampa-bay-lightning", "TOR": "toronto-maple-leafs",
	"UTA": "utah-mammoth", "VAN": "vancouver-canucks", "VGK": "vegas-golden-knights",
	"WPG": "winnipeg-jets", "WSH": "washington-capitals",
}

// Scraper fetches line-combination pages through headless Chrome.
type Scraper struct {
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewScraper starts a headless browser allocator.
func NewScraper() (*Scraper, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Scraper{
		interval: minRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the browser allocator.
func (s *Scraper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// TeamSheet fetches and parses a team's published line combinations
// into a sheet usable as a roster fallback. Unknown teams error.
func (s *Scraper) TeamSheet(ctx context.Context, teamAbbr string) (roster.TeamSheet, error) {
	slug, ok := teamSlug[strings.ToUpper(strings.TrimSpace(teamAbbr))]
	if !ok {
		return roster.TeamSheet{}, fmt.Errorf("no Daily Faceoff slug for team %q", teamAbbr)
	}

	html, err := s.fetch(ctx, fmt.Sprintf(baseURL, slug))
	if err != nil {
		return roster.TeamSheet{}, err
	}
	return parseLineCombinations(html)
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	if !s.lastRequest.IsZero() {
		if elapsed := time.Since(s.lastRequest); elapsed < s.interval {
			wait := s.interval - elapsed
			log.Printf("[lines] Rate limiting: waiting %v before next request", wait)
			time.Sleep(wait)
		}
	}
	defer func() { s.lastRequest = time.Now() }()

	browserCtx, cancel := chromedp.NewContext(s.allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // allow JS to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return htmlContent, nil
}

// parseLineCombinations reads player names in page order: the page lists
// twelve forwards (four LW-C-RW trios), six defensemen (three pairs)
// and the goalies, in deployment order.
func parseLineCombinations(html string) (roster.TeamSheet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return roster.TeamSheet{}, fmt.Errorf("parse HTML: %w", err)
	}

	var names []string
	seen := make(map[string]bool)
	doc.Find(`a[href*="/players/"]`).Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})

	if len(names) < 12 {
		return roster.TeamSheet{}, fmt.Errorf("expected at least 12 players, found %d", len(names))
	}

	at := func(i int) string {
		if i < len(names) {
			return names[i]
		}
		return ""
	}

	sheet := roster.TeamSheet{}
	for i := 0; i < 4; i++ {
		sheet.F = append(sheet.F, roster.ForwardSlots{
			LW: at(i * 3),
			C:  at(i*3 + 1),
			RW: at(i*3 + 2),
		})
	}
	for i := 0; i < 3; i++ {
		sheet.D = append(sheet.D, roster.DefenseSlots{
			LD: at(12 + i*2),
			RD: at(12 + i*2 + 1),
		})
	}
	for i := 0; i < 2; i++ {
		sheet.G = append(sheet.G, roster.GoalieSlot{G: at(18 + i)})
	}
	return sheet, nil
}
