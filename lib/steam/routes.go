package steam

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultCommunityURL = "http://steamcommunity.com"
	DefaultWebAPIURL    = "http://api.steampowered.com"
)

// Routes builds the URLs of every endpoint the clients talk to. Query parameters
// are emitted in a fixed order.
type Routes struct {
	Community string
	WebAPI    string
}

func DefaultRoutes() Routes {
	return Routes{
		Community: DefaultCommunityURL,
		WebAPI:    DefaultWebAPIURL,
	}
}

func escapeQuery(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func orderedQuery(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(pairs[i])
		b.WriteByte('=')
		b.WriteString(escapeQuery(pairs[i+1]))
	}
	return b.String()
}

func (r Routes) community(path string) string {
	return strings.TrimSuffix(r.Community, "/") + path
}

func (r Routes) Inventory(ownerID string, appID, contextID int) string {
	return r.community(fmt.Sprintf(
		"/profiles/%s/inventory/json/%d/%d",
		url.PathEscape(ownerID), appID, contextID,
	))
}

func (r Routes) ItemCount(query string, appID int) string {
	return r.community("/market/search/render/?" + orderedQuery(
		"query", query,
		"appid", strconv.Itoa(appID),
	))
}

func (r Routes) ListItems(query string, start, count int, sortColumn, sortDir string, appID int) string {
	return r.community("/market/search/render/?" + orderedQuery(
		"query", query,
		"start", strconv.Itoa(start),
		"count", strconv.Itoa(count),
		"search_descriptions", "0",
		"sort_column", sortColumn,
		"sort_dir", sortDir,
		"appid", strconv.Itoa(appID),
	))
}

func (r Routes) PriceOverview(name string, appID int) string {
	return r.community("/market/priceoverview/?" + orderedQuery(
		"country", "US",
		"currency", "1",
		"appid", strconv.Itoa(appID),
		"market_hash_name", name,
	))
}

func (r Routes) ItemPage(appID int, name string) string {
	return r.community(fmt.Sprintf("/market/listings/%d/%s", appID, url.PathEscape(name)))
}

func (r Routes) OrderHistogram(nameID int64) string {
	return r.community("/market/itemordershistogram?" + orderedQuery(
		"country", "US",
		"language", "english",
		"currency", "1",
		"item_nameid", strconv.FormatInt(nameID, 10),
	))
}

func (r Routes) GroupMembers(groupID string, page int) string {
	return r.community(fmt.Sprintf("/groups/%s/memberslistxml/?", url.PathEscape(groupID)) + orderedQuery(
		"xml", "1",
		"p", strconv.Itoa(page),
	))
}

func (r Routes) WorkshopFile(id string) string {
	return r.community("/sharedfiles/filedetails/?" + orderedQuery("id", id))
}

// WebAPIMethod returns the url of a Web API method, `path` looks like
// "ISteamUser/GetPlayerSummaries/v0002/".
func (r Routes) WebAPIMethod(path string) string {
	return strings.TrimSuffix(r.WebAPI, "/") + "/" + strings.TrimPrefix(path, "/")
}
