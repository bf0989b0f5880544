package steam

import "regexp"

// Selectors are the css selectors used to pick data out of community pages.
type Selectors struct {
	// search results (results_html of /market/search/render)
	ListingRow string
	// item page
	LargeImage string
	// order histogram summary
	SellOrderSummary string

	// workshop pages
	Breadcrumbs               string
	Title                     string
	Description               string
	CollectionDescription     string
	DetailsStats              string
	Tags                      string
	HighlightScreenshot       string
	PreviewImageEnlargeable   string
	PreviewImageMain          string
	CollectionItem            string
	CollectionCrumbLabel      string
	FileBreadcrumbDepth       int
	CollectionBreadcrumbDepth int
}

func DefaultSelectors() Selectors {
	return Selectors{
		ListingRow:       ".market_listing_row .market_listing_item_name",
		LargeImage:       ".market_listing_largeimage",
		SellOrderSummary: "span",

		Breadcrumbs:               ".breadcrumbs",
		Title:                     ".workshopItemTitle",
		Description:               ".workshopItemDescription",
		CollectionDescription:     ".workshopItemDescriptionForCollection",
		DetailsStats:              ".detailsStatsContainerRight",
		Tags:                      ".workshopTags",
		HighlightScreenshot:       ".highlight_strip_screenshot",
		PreviewImageEnlargeable:   ".workshopItemPreviewImageEnlargeable",
		PreviewImageMain:          ".workshopItemPreviewImageMain",
		CollectionItem:            ".workshopItem",
		CollectionCrumbLabel:      "Collections",
		FileBreadcrumbDepth:       3,
		CollectionBreadcrumbDepth: 4,
	}
}

// Patterns are the regular expressions and text markers used on raw page bodies.
type Patterns struct {
	ClassID       *regexp.Regexp
	NameID        *regexp.Regexp
	ProfileURL    *regexp.Regexp
	LineAssign    *regexp.Regexp
	HistoryMarker string
	RawMarker     string
	RawPrefix     string
}

func DefaultPatterns() Patterns {
	return Patterns{
		ClassID:       regexp.MustCompile(`"classid":"(\d+)"`),
		NameID:        regexp.MustCompile(`Market_LoadOrderSpread\( (\d+) \);`),
		ProfileURL:    regexp.MustCompile(`steamcommunity.com/(profiles|id)/(.*?)$`),
		LineAssign:    regexp.MustCompile(`var line1=(.+);`),
		HistoryMarker: "var line1",
		RawMarker:     "var line1=[[",
		RawPrefix:     "var line1=",
	}
}
