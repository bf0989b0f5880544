package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"steamy/internal/assert"
	"steamy/lib/steam"
	"steamy/lib/steam/market"
	"steamy/lib/steam/request"
	"steamy/lib/steam/workshop"
	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_call = "client.call"
)

const DefaultRelationship = "all"

// Client wraps the keyed Steam Web API and hands out market and workshop
// clients sharing its transport.
type Client struct {
	http     *resty.Client
	cfg      steam.Config
	tel      telemetry.API
	opts     []request.Option
	executor request.Executor
	workshop *workshop.Scraper
}

func NewClient(httpClient *resty.Client, cfg steam.Config, tel telemetry.API, opts ...request.Option) *Client {
	assert.NotNil(httpClient)
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}
	scoped := telemetry.NewScopedAPI("webapi", tel)
	return &Client{
		http:     httpClient,
		cfg:      cfg,
		tel:      scoped,
		opts:     opts,
		executor: request.NewExecutor(cfg.Retry, scoped, opts...),
		workshop: workshop.NewScraper(httpClient, cfg, tel, opts...),
	}
}

// call performs `method` on the Web API method at `path` with the api key
// appended and decodes the json response into `out`.
func (c *Client) call(ctx context.Context, op, method, path string, params map[string]string, out any) error {
	url := c.cfg.Routes.WebAPIMethod(path)
	query := make(map[string]string, len(params)+1)
	for k, v := range params {
		query[k] = v
	}
	query["key"] = c.cfg.APIKey

	outcome := c.executor.Execute(ctx, url, func(ctx context.Context) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetQueryParams(query).
			Execute(method, url)
	})
	if !outcome.Present() {
		err := steam.NewMarketAPIError(op, steam.ErrRetriesExhausted, path)
		c.tel.ReportBroken(report_client_call, err)
		return err
	}
	if out == nil {
		return nil
	}

	err := json.Unmarshal(outcome.Response.Body(), out)
	if err != nil {
		err = steam.NewMarketAPIError(op, fmt.Errorf("decode json: %w", err), path)
		c.tel.ReportBroken(report_client_call, err)
		return err
	}
	return nil
}

func missing(op, field string, args ...any) error {
	return steam.NewMarketAPIError(op, fmt.Errorf("%s: %w", field, steam.ErrMissingField), args...)
}

func (c *Client) TradeOffer(ctx context.Context, id string) (TradeOffer, error) {
	var body struct {
		Response struct {
			Offer TradeOffer `json:"offer"`
		} `json:"response"`
	}
	err := c.call(ctx, "trade_offer", http.MethodGet, "IEconService/GetTradeOffer/v1/", map[string]string{
		"tradeofferid": id,
	}, &body)
	if err != nil {
		return nil, err
	}
	if body.Response.Offer == nil {
		return nil, missing("trade_offer", "response.offer", id)
	}
	return body.Response.Offer, nil
}

func (c *Client) CancelTradeOffer(ctx context.Context, id string) error {
	return c.call(ctx, "cancel_trade_offer", http.MethodPost, "IEconService/CancelTradeOffer/v1/", map[string]string{
		"tradeofferid": id,
	}, nil)
}

// FriendList returns the steam ids of a user's friends, relationship is
// usually DefaultRelationship or "friend".
func (c *Client) FriendList(ctx context.Context, steamID, relationship string) ([]string, error) {
	if relationship == "" {
		relationship = DefaultRelationship
	}
	var body struct {
		FriendsList struct {
			Friends []struct {
				SteamID string `json:"steamid"`
			} `json:"friends"`
		} `json:"friendslist"`
	}
	err := c.call(ctx, "friend_list", http.MethodGet, "ISteamUser/GetFriendList/v0001/", map[string]string{
		"steamid":      steamID,
		"relationship": relationship,
	}, &body)
	if err != nil {
		return nil, err
	}

	friends := make([]string, len(body.FriendsList.Friends))
	for i, f := range body.FriendsList.Friends {
		friends[i] = f.SteamID
	}
	return friends, nil
}

// ResolveVanityURL returns the steam id behind a custom profile url, 0 when
// there is none.
func (c *Client) ResolveVanityURL(ctx context.Context, vanity string) (uint64, error) {
	var body struct {
		Response struct {
			SteamID string `json:"steamid"`
		} `json:"response"`
	}
	err := c.call(ctx, "resolve_vanity_url", http.MethodGet, "ISteamUser/ResolveVanityURL/v0001/", map[string]string{
		"vanityurl": vanity,
	}, &body)
	if err != nil {
		return 0, err
	}
	if body.Response.SteamID == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(body.Response.SteamID, 10, 64)
	if err != nil {
		return 0, steam.NewMarketAPIError("resolve_vanity_url", err, vanity)
	}
	return id, nil
}

func (c *Client) PlayerSummary(ctx context.Context, steamID string) (PlayerSummary, error) {
	var body struct {
		Response struct {
			Players []PlayerSummary `json:"players"`
		} `json:"response"`
	}
	err := c.call(ctx, "player_summary", http.MethodGet, "ISteamUser/GetPlayerSummaries/v0002/", map[string]string{
		"steamids": steamID,
	}, &body)
	if err != nil {
		return PlayerSummary{}, err
	}
	if len(body.Response.Players) == 0 {
		return PlayerSummary{}, missing("player_summary", "response.players", steamID)
	}
	return body.Response.Players[0], nil
}

func (c *Client) RecentGames(ctx context.Context, steamID string) ([]RecentGame, error) {
	var body struct {
		Response struct {
			Games []RecentGame `json:"games"`
		} `json:"response"`
	}
	err := c.call(ctx, "recent_games", http.MethodGet, "IPlayerService/GetRecentlyPlayedGames/v0001/", map[string]string{
		"steamid": steamID,
	}, &body)
	if err != nil {
		return nil, err
	}
	return body.Response.Games, nil
}

func (c *Client) PlayerBans(ctx context.Context, steamID string) (PlayerBans, error) {
	var body struct {
		Players []PlayerBans `json:"players"`
	}
	err := c.call(ctx, "player_bans", http.MethodGet, "ISteamUser/GetPlayerBans/v1/", map[string]string{
		"steamids": steamID,
	}, &body)
	if err != nil {
		return PlayerBans{}, err
	}
	if len(body.Players) == 0 {
		return PlayerBans{}, missing("player_bans", "players", steamID)
	}
	return body.Players[0], nil
}

// AssetClassInfo describes a single asset class, instanceID 0 means no
// instance.
func (c *Client) AssetClassInfo(ctx context.Context, classID int64, appID int, instanceID int64) (AssetClassInfo, error) {
	params := map[string]string{
		"appid":       strconv.Itoa(appID),
		"class_count": "1",
		"classid0":    strconv.FormatInt(classID, 10),
	}
	key := strconv.FormatInt(classID, 10)
	if instanceID != 0 {
		params["instanceid0"] = strconv.FormatInt(instanceID, 10)
		key = fmt.Sprintf("%d_%d", classID, instanceID)
	}

	var body struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	err := c.call(ctx, "asset_class_info", http.MethodGet, "ISteamEconomy/GetAssetClassInfo/v001/", params, &body)
	if err != nil {
		return nil, err
	}
	raw, ok := body.Result[key]
	if !ok {
		return nil, missing("asset_class_info", "result."+key, classID, appID)
	}

	var info AssetClassInfo
	err = json.Unmarshal(raw, &info)
	if err != nil {
		return nil, steam.NewMarketAPIError("asset_class_info", fmt.Errorf("decode json: %w", err), classID, appID)
	}
	return info, nil
}

// Market returns a market client for `appID` sharing this client's transport
// and key.
func (c *Client) Market(appID int) *market.Client {
	cfg := c.cfg
	cfg.AppID = appID
	return market.NewClient(c.http, cfg, c.tel, c.opts...)
}

func (c *Client) WorkshopFile(ctx context.Context, id string) (workshop.Entity, error) {
	return c.workshop.Get(ctx, id)
}
