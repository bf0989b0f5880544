package community

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"steamy/lib/steam"
	"steamy/lib/steam/request"
	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

const firstPage = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<memberList>
	<groupID64>103582791429521412</groupID64>
	<groupDetails>
		<groupName><![CDATA[Valve]]></groupName>
	</groupDetails>
	<memberCount>3</memberCount>
	<totalPages>2</totalPages>
	<currentPage>1</currentPage>
	<startingMember>0</startingMember>
	<nextPageLink><![CDATA[https://steamcommunity.com/groups/valve/memberslistxml/?xml=1&p=2]]></nextPageLink>
	<members>
		<steamID64>76561197960265728</steamID64>
		<steamID64>76561197960265729</steamID64>
	</members>
</memberList>`

const lastPage = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<memberList>
	<groupID64>103582791429521412</groupID64>
	<memberCount>3</memberCount>
	<totalPages>2</totalPages>
	<currentPage>2</currentPage>
	<startingMember>2</startingMember>
	<members>
		<steamID64>76561197960265730</steamID64>
	</members>
</memberList>`

func newClient(t *testing.T) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("xml") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.URL.Path + "?p=" + r.URL.Query().Get("p") {
		case "/groups/valve/memberslistxml/?p=1":
			w.Write([]byte(firstPage))
		case "/groups/valve/memberslistxml/?p=2":
			w.Write([]byte(lastPage))
		case "/groups/broken/memberslistxml/?p=1":
			w.Write([]byte(`<memberList><members><steamID64>1</steamID64>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	cfg := steam.DefaultConfig()
	cfg.Routes.Community = server.URL
	cfg.Retry = request.Policy{MaxAttempts: 2, Delay: time.Millisecond}
	return NewClient(resty.New(), cfg, telemetry.NoopAPI{})
}

func TestGroupMembers(t *testing.T) {
	client := newClient(t)

	members, err := client.GroupMembers(context.Background(), "valve", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"76561197960265728", "76561197960265729"}, members)

	page, err := client.GroupMembersPage(context.Background(), "valve", 1)
	require.NoError(t, err)
	require.Equal(t, "103582791429521412", page.GroupID64)
	require.True(t, page.HasNext())

	page, err = client.GroupMembersPage(context.Background(), "valve", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"76561197960265730"}, page.Members)
	require.False(t, page.HasNext())
}

func TestGroupMembersErrors(t *testing.T) {
	client := newClient(t)

	_, err := client.GroupMembers(context.Background(), "missing", 1)
	var apiErr *steam.MarketAPIError
	require.ErrorAs(t, err, &apiErr)
	require.ErrorIs(t, err, steam.ErrRetriesExhausted)

	_, err = client.GroupMembers(context.Background(), "broken", 1)
	require.ErrorAs(t, err, &apiErr)
	require.NotErrorIs(t, err, steam.ErrRetriesExhausted)
}
