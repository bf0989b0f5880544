package workshop

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"steamy/lib/steam"
	"steamy/lib/steam/request"
	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const crumbsFile = `<div class="breadcrumbs">
	<a href="https://steamcommunity.com/app/294100">RimWorld</a> &gt;
	<a href="https://steamcommunity.com/app/294100/workshop/">Workshop</a> &gt;
	<a href="https://steamcommunity.com/id/modder/myworkshopfiles/?appid=294100">modder's Workshop</a>
</div>`

const crumbsCollection = `<div class="breadcrumbs">
	<a href="https://steamcommunity.com/app/294100">RimWorld</a> &gt;
	<a href="https://steamcommunity.com/app/294100/workshop/">Workshop</a> &gt;
	<a href="https://steamcommunity.com/workshop/browse/?section=collections&appid=294100">Collections</a> &gt;
	<a href="https://steamcommunity.com/profiles/76561197960287930/myworkshopfiles/?section=collections">curator's Workshop</a>
</div>`

const stripFilePage = `<html><body>` + crumbsFile + `
<div class="workshopItemTitle">Better Walls</div>
<div class="workshopItemDescription">Walls, but better.<br/>Version 2</div>
<div class="detailsStatsContainerRight">
	<div class="detailsStatRight">1.204 MB</div>
	<div class="detailsStatRight">28 Jul, 2016 @ 1:40pm</div>
	<div class="detailsStatRight">3 Aug, 2016 @ 9:02am</div>
</div>
<div class="workshopTags"><span class="workshopTagsTitle">Type:&nbsp;</span><a href="#">Mod</a></div>
<div class="workshopTags"><span class="workshopTagsTitle">Version:&nbsp;</span><a href="#">1.0</a></div>
<div class="highlight_strip_screenshot"><img src="https://images.example/ugc/111/AAA/?imw=116"></div>
<div class="highlight_strip_screenshot"><img src="https://images.example/ugc/222/BBB/?imw=116"></div>
</body></html>`

const baseImageFilePage = `<html><body>` + crumbsFile + `
<div class="workshopItemTitle">Single Image</div>
<div class="workshopItemDescription">One picture.</div>
<div class="detailsStatsContainerRight">
	<div class="detailsStatRight">10 KB</div>
	<div class="detailsStatRight">1 Jan, 2017 @ 1:00pm</div>
</div>
<img class="workshopItemPreviewImageEnlargeable" src="https://images.example/ugc/333/CCC/?imw=640">
<img class="workshopItemPreviewImageMain" src="https://images.example/ugc/333/CCC/main.png">
</body></html>`

func collectionPage(title string, ids ...string) string {
	items := ""
	for _, id := range ids {
		items += fmt.Sprintf(`<div class="workshopItem"><a href="https://steamcommunity.com/sharedfiles/filedetails/?id=%s"><img></a></div>`, id)
	}
	return `<html><body>` + crumbsCollection + `
<div class="workshopItemTitle">` + title + `</div>
<div class="workshopItemDescriptionForCollection">A collection.</div>
` + items + `</body></html>`
}

func newScraper(t *testing.T, pages map[string]string, maxDepth int, tel telemetry.API) *Scraper {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Query().Get("id")]
		if !ok || r.URL.Path != "/sharedfiles/filedetails/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	cfg := steam.DefaultConfig()
	cfg.Routes.Community = server.URL
	cfg.Retry = request.Policy{MaxAttempts: 1, Delay: time.Millisecond}
	if maxDepth > 0 {
		cfg.MaxCollectionDepth = maxDepth
	}
	return NewScraper(resty.New(), cfg, tel)
}

func TestGetFile(t *testing.T) {
	rec := telemetry.NewRecorder()
	scraper := newScraper(t, map[string]string{
		"1": stripFilePage,
		"2": baseImageFilePage,
	}, 0, rec)

	testCases := []struct {
		id       string
		expected Entity
	}{
		{
			id: "1",
			expected: Entity{
				Kind:        KindFile,
				ID:          "1",
				Title:       "Better Walls",
				Description: "Walls, but better.",
				GameID:      294100,
				UserID:      "modder",
				Tags:        []string{"mod", "1.0"},
				File: &FileDetails{
					Size:    "1.204 MB",
					Posted:  "28 Jul, 2016 @ 1:40pm",
					Updated: "3 Aug, 2016 @ 9:02am",
					Images: []string{
						"https://images.example/ugc/111/AAA/",
						"https://images.example/ugc/222/BBB/",
					},
					Thumbnail: "https://images.example/ugc/111/AAA/",
				},
			},
		},
		{
			id: "2",
			expected: Entity{
				Kind:        KindFile,
				ID:          "2",
				Title:       "Single Image",
				Description: "One picture.",
				GameID:      294100,
				UserID:      "modder",
				Tags:        []string{},
				File: &FileDetails{
					Size:      "10 KB",
					Posted:    "1 Jan, 2017 @ 1:00pm",
					Images:    []string{"https://images.example/ugc/333/CCC/"},
					Thumbnail: "https://images.example/ugc/333/CCC/main.png",
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			entity, err := scraper.Get(context.Background(), tc.id)
			require.NoError(t, err)
			diff := cmp.Diff(tc.expected, entity)
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}

	require.Len(t, rec.Reports(telemetry.LevelWarning, report_scraper_file), 1)
}

func TestGetCollection(t *testing.T) {
	rec := telemetry.NewRecorder()
	scraper := newScraper(t, map[string]string{
		"10": collectionPage("Outer", "1", "11", "1"),
		"11": collectionPage("Inner", "2", "10"),
		"1":  stripFilePage,
		"2":  baseImageFilePage,
	}, 0, rec)

	entity, err := scraper.Get(context.Background(), "10")
	require.NoError(t, err)
	require.Equal(t, KindCollection, entity.Kind)
	require.Nil(t, entity.File)
	require.Equal(t, "Outer", entity.Title)
	require.Equal(t, "A collection.", entity.Description)
	require.Equal(t, "76561197960287930", entity.UserID)
	require.EqualValues(t, 294100, entity.GameID)

	files := entity.Collection.Files
	require.Len(t, files, 3)
	require.Equal(t, "1", files[0].ID)
	require.Equal(t, KindFile, files[0].Kind)
	require.Equal(t, "11", files[1].ID)
	require.Equal(t, KindCollection, files[1].Kind)
	require.Equal(t, "1", files[2].ID)

	inner := files[1].Collection.Files
	require.Len(t, inner, 1)
	require.Equal(t, "2", inner[0].ID)

	// "10" is an ancestor of the inner collection
	require.Len(t, rec.Reports(telemetry.LevelWarning, report_scraper_collection), 1)
}

func TestGetCollectionSharedFile(t *testing.T) {
	rec := telemetry.NewRecorder()
	scraper := newScraper(t, map[string]string{
		"10": collectionPage("Outer", "11", "12"),
		"11": collectionPage("A", "1"),
		"12": collectionPage("B", "1"),
		"1":  stripFilePage,
	}, 0, rec)

	entity, err := scraper.Get(context.Background(), "10")
	require.NoError(t, err)

	files := entity.Collection.Files
	require.Len(t, files, 2)
	for _, sub := range files {
		require.Len(t, sub.Collection.Files, 1, sub.Title)
		require.Equal(t, "1", sub.Collection.Files[0].ID)
	}
	require.Empty(t, rec.Reports(telemetry.LevelWarning, report_scraper_collection))
}

func TestGetCollectionTooDeep(t *testing.T) {
	scraper := newScraper(t, map[string]string{
		"10": collectionPage("Outer", "11"),
		"11": collectionPage("Inner", "1"),
		"1":  stripFilePage,
	}, 1, nil)

	_, err := scraper.Get(context.Background(), "10")
	require.ErrorIs(t, err, steam.ErrCollectionTooDeep)
}

func TestGetErrors(t *testing.T) {
	scraper := newScraper(t, map[string]string{
		"missing": `<html><body><div class="error_ctn">There was a problem accessing the item.</div></body></html>`,
		"weird": `<html><body><div class="breadcrumbs">
			<a href="https://steamcommunity.com/app/294100">RimWorld</a>
			<a href="https://steamcommunity.com/id/someone">someone</a>
		</div></body></html>`,
	}, 0, nil)

	testCases := []struct {
		id  string
		err error
	}{
		{id: "missing", err: steam.ErrNoBreadcrumbs},
		{id: "weird", err: steam.ErrUnknownLayout},
		{id: "unreachable", err: steam.ErrRetriesExhausted},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			_, err := scraper.Get(context.Background(), tc.id)
			var apiErr *steam.MarketAPIError
			require.ErrorAs(t, err, &apiErr)
			require.ErrorIs(t, err, tc.err)
		})
	}
}
