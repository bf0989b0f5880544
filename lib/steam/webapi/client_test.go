package webapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"steamy/lib/steam"
	"steamy/lib/steam/request"
	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type fakeWebAPI struct {
	hits       atomic.Int32
	lastMethod string
}

func newClient(t *testing.T, fake *fakeWebAPI) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.hits.Add(1)
		fake.lastMethod = r.Method
		query := r.URL.Query()
		if query.Get("key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		switch r.URL.Path {
		case "/ISteamUser/GetPlayerSummaries/v0002/":
			if query.Get("steamids") == "0" {
				w.Write([]byte(`{"response":{"players":[]}}`))
				return
			}
			w.Write([]byte(`{"response":{"players":[{"steamid":"76561197960435530","personaname":"Robin","personastate":1}]}}`))
		case "/ISteamUser/ResolveVanityURL/v0001/":
			if query.Get("vanityurl") == "robinwalker" {
				w.Write([]byte(`{"response":{"steamid":"76561197960435530","success":1}}`))
				return
			}
			w.Write([]byte(`{"response":{"success":42,"message":"No match"}}`))
		case "/ISteamUser/GetFriendList/v0001/":
			w.Write([]byte(`{"friendslist":{"friends":[{"steamid":"1","relationship":"friend"},{"steamid":"2","relationship":"friend"}]}}`))
		case "/ISteamUser/GetPlayerBans/v1/":
			w.Write([]byte(`{"players":[]}`))
		case "/IEconService/GetTradeOffer/v1/":
			w.Write([]byte(`{"response":{"offer":{"tradeofferid":"` + query.Get("tradeofferid") + `","trade_offer_state":2}}}`))
		case "/IEconService/CancelTradeOffer/v1/":
			w.Write([]byte(`{"response":{}}`))
		case "/IPlayerService/GetRecentlyPlayedGames/v0001/":
			w.Write([]byte(`{"response":{"total_count":1,"games":[{"appid":730,"name":"Counter-Strike 2","playtime_2weeks":120,"playtime_forever":9000}]}}`))
		case "/ISteamEconomy/GetAssetClassInfo/v001/":
			w.Write([]byte(`{"result":{"310776560_302028390":{"name":"Redline"},"success":true}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	cfg := steam.DefaultConfig()
	cfg.APIKey = "secret"
	cfg.Routes.WebAPI = server.URL
	cfg.Routes.Community = server.URL
	cfg.Retry = request.Policy{MaxAttempts: 1, Delay: time.Millisecond}
	return NewClient(resty.New(), cfg, telemetry.NoopAPI{})
}

func TestPlayer(t *testing.T) {
	client := newClient(t, &fakeWebAPI{})
	ctx := context.Background()

	summary, err := client.PlayerSummary(ctx, "76561197960435530")
	require.NoError(t, err)
	require.Equal(t, "Robin", summary.PersonaName)
	require.Equal(t, 1, summary.PersonaState)

	_, err = client.PlayerSummary(ctx, "0")
	require.ErrorIs(t, err, steam.ErrMissingField)

	id, err := client.ResolveVanityURL(ctx, "robinwalker")
	require.NoError(t, err)
	require.EqualValues(t, 76561197960435530, id)

	id, err = client.ResolveVanityURL(ctx, "nobody")
	require.NoError(t, err)
	require.Zero(t, id)

	friends, err := client.FriendList(ctx, "76561197960435530", "")
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, friends)

	games, err := client.RecentGames(ctx, "76561197960435530")
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, 730, games[0].AppID)

	_, err = client.PlayerBans(ctx, "76561197960435530")
	require.ErrorIs(t, err, steam.ErrMissingField)
}

func TestTradeOffers(t *testing.T) {
	fake := &fakeWebAPI{}
	client := newClient(t, fake)
	ctx := context.Background()

	offer, err := client.TradeOffer(ctx, "5555")
	require.NoError(t, err)
	require.Equal(t, "5555", offer["tradeofferid"])

	err = client.CancelTradeOffer(ctx, "5555")
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, fake.lastMethod)
}

func TestAssetClassInfo(t *testing.T) {
	client := newClient(t, &fakeWebAPI{})

	info, err := client.AssetClassInfo(context.Background(), 310776560, 730, 302028390)
	require.NoError(t, err)
	require.Equal(t, "Redline", info["name"])

	_, err = client.AssetClassInfo(context.Background(), 310776560, 730, 0)
	require.ErrorIs(t, err, steam.ErrMissingField)
}

func TestNoRetry(t *testing.T) {
	fake := &fakeWebAPI{}
	client := newClient(t, fake)

	_, err := client.RecentGames(context.Background(), "x")
	require.NoError(t, err)

	fake.hits.Store(0)
	client.cfg.Routes.WebAPI += "/unknown"
	client = NewClient(client.http, client.cfg, telemetry.NoopAPI{})
	_, err = client.RecentGames(context.Background(), "x")
	var apiErr *steam.MarketAPIError
	require.ErrorAs(t, err, &apiErr)
	require.ErrorIs(t, err, steam.ErrRetriesExhausted)
	require.EqualValues(t, 1, fake.hits.Load())
}

func TestMarket(t *testing.T) {
	client := newClient(t, &fakeWebAPI{})
	require.Equal(t, 440, client.Market(440).AppID())
	require.Equal(t, steam.DefaultAppID, client.Market(steam.DefaultAppID).AppID())
}
