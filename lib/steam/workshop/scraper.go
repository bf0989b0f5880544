package workshop

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"steamy/internal/assert"
	"steamy/lib/htmlutil"
	"steamy/lib/steam"
	"steamy/lib/steam/request"
	"steamy/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	report_scraper_get        = "scraper.get"
	report_scraper_file       = "scraper.file"
	report_scraper_collection = "scraper.collection"
)

type Scraper struct {
	http     *resty.Client
	cfg      steam.Config
	tel      telemetry.API
	executor request.Executor
}

func NewScraper(http *resty.Client, cfg steam.Config, tel telemetry.API, opts ...request.Option) *Scraper {
	assert.NotNil(http)
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}
	tel = telemetry.NewScopedAPI("workshop", tel)
	return &Scraper{
		http:     http,
		cfg:      cfg,
		tel:      tel,
		executor: request.NewExecutor(cfg.Retry, tel, opts...),
	}
}

// Get scrapes the workshop page of `id`, collections are resolved together
// with every file they contain.
func (s *Scraper) Get(ctx context.Context, id string) (Entity, error) {
	return s.get(ctx, id, 0, map[string]struct{}{})
}

func (s *Scraper) fail(id string, err error) error {
	s.tel.ReportBroken(report_scraper_get, err, id)
	return steam.NewMarketAPIError("workshop_file", err, id)
}

func (s *Scraper) fetch(ctx context.Context, id string) (*goquery.Document, error) {
	url := s.cfg.Routes.WorkshopFile(id)
	outcome := s.executor.Execute(ctx, url, func(ctx context.Context) (*resty.Response, error) {
		return s.http.R().SetContext(ctx).Get(url)
	})
	if !outcome.Present() {
		return nil, steam.ErrRetriesExhausted
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(outcome.Response.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func (s *Scraper) get(ctx context.Context, id string, depth int, visited map[string]struct{}) (Entity, error) {
	if depth > s.cfg.MaxCollectionDepth {
		return Entity{}, s.fail(id, steam.ErrCollectionTooDeep)
	}
	visited[id] = struct{}{}
	defer delete(visited, id)

	doc, err := s.fetch(ctx, id)
	if err != nil {
		return Entity{}, s.fail(id, err)
	}

	sel := s.cfg.Selectors
	container := doc.Find(sel.Breadcrumbs)
	if container.Length() == 0 {
		return Entity{}, s.fail(id, steam.ErrNoBreadcrumbs)
	}
	crumbs := htmlutil.GetAnchors(container.First().Children())
	if len(crumbs) == 0 {
		return Entity{}, s.fail(id, steam.ErrNoBreadcrumbs)
	}

	entity := Entity{
		ID:    id,
		Title: htmlutil.SelectionLeadingText(doc.Find(sel.Title)),
	}

	gameHref := crumbs[0].Href
	entity.GameID, err = strconv.ParseInt(gameHref[strings.LastIndex(gameHref, "/")+1:], 10, 64)
	if err != nil {
		return Entity{}, s.fail(id, fmt.Errorf("game id: %w", err))
	}

	match := s.cfg.Patterns.ProfileURL.FindStringSubmatch(crumbs[len(crumbs)-1].Href)
	if match != nil {
		entity.UserID, _, _ = strings.Cut(match[2], "/")
	} else {
		s.tel.ReportWarning(report_scraper_get, "no profile link in breadcrumbs", id)
	}

	description := doc.Find(sel.Description)
	if description.Length() == 0 {
		description = doc.Find(sel.CollectionDescription)
	}
	entity.Description = htmlutil.SelectionLeadingText(description)

	switch {
	case len(crumbs) == sel.FileBreadcrumbDepth:
		entity.Kind = KindFile
		entity.Tags = s.tags(doc)
		entity.File = s.file(id, doc)
	case len(crumbs) == sel.CollectionBreadcrumbDepth && crumbs[2].Name == sel.CollectionCrumbLabel:
		entity.Kind = KindCollection
		entity.Collection, err = s.collection(ctx, id, doc, depth, visited)
		if err != nil {
			return Entity{}, err
		}
	default:
		return Entity{}, s.fail(id, fmt.Errorf("%w: %d breadcrumbs", steam.ErrUnknownLayout, len(crumbs)))
	}

	return entity, nil
}

func (s *Scraper) tags(doc *goquery.Document) []string {
	tags := []string{}
	doc.Find(s.cfg.Selectors.Tags).Each(func(_ int, tag *goquery.Selection) {
		value := tag.Children().Eq(1)
		if value.Length() == 0 {
			return
		}
		tags = append(tags, strings.ToLower(strings.TrimSpace(htmlutil.SelectionLeadingText(value))))
	})
	return tags
}

// imageBase drops the file part of an image url, keeping the trailing slash.
func imageBase(src string) string {
	if i := strings.LastIndex(src, "/"); i >= 0 {
		src = src[:i]
	}
	return src + "/"
}

func (s *Scraper) file(id string, doc *goquery.Document) *FileDetails {
	sel := s.cfg.Selectors
	details := &FileDetails{Images: []string{}}

	var stats []string
	doc.Find(sel.DetailsStats).First().Children().Each(func(_ int, cell *goquery.Selection) {
		stats = append(stats, htmlutil.SelectionLeadingText(cell))
	})
	if len(stats) < 3 {
		s.tel.ReportWarning(report_scraper_file, "expected 3 detail cells", id, len(stats))
	}
	fields := []*string{&details.Size, &details.Posted, &details.Updated}
	for i := 0; i < len(fields) && i < len(stats); i++ {
		*fields[i] = stats[i]
	}

	screenshots := doc.Find(sel.HighlightScreenshot)
	if screenshots.Length() > 0 {
		screenshots.Each(func(_ int, shot *goquery.Selection) {
			details.Images = append(details.Images, imageBase(shot.Children().First().AttrOr("src", "")))
		})
	} else if base := doc.Find(sel.PreviewImageEnlargeable); base.Length() > 0 {
		details.Images = append(details.Images, imageBase(base.First().AttrOr("src", "")))
	}

	main := doc.Find(sel.PreviewImageMain)
	switch {
	case main.Length() > 0:
		details.Thumbnail = main.First().AttrOr("src", "")
	case len(details.Images) > 0:
		details.Thumbnail = details.Images[0]
	default:
		s.tel.ReportWarning(report_scraper_file, "no images", id)
	}

	return details
}

func collectionItemID(href string) string {
	if i := strings.LastIndex(href, "?id="); i >= 0 {
		href = href[i+len("?id="):]
	}
	id, _, _ := strings.Cut(href, "&")
	return id
}

func (s *Scraper) collection(ctx context.Context, id string, doc *goquery.Document, depth int, visited map[string]struct{}) (*CollectionDetails, error) {
	var ids []string
	doc.Find(s.cfg.Selectors.CollectionItem).Each(func(_ int, item *goquery.Selection) {
		href := item.Children().First().AttrOr("href", "")
		if href == "" {
			s.tel.ReportWarning(report_scraper_collection, "item without link", id)
			return
		}
		ids = append(ids, collectionItemID(href))
	})

	details := &CollectionDetails{Files: []Entity{}}
	for _, childID := range ids {
		if _, seen := visited[childID]; seen {
			s.tel.ReportWarning(report_scraper_collection, "collection cycle", id, childID)
			continue
		}
		child, err := s.get(ctx, childID, depth+1, visited)
		if err != nil {
			return nil, err
		}
		details.Files = append(details.Files, child)
	}
	return details, nil
}
