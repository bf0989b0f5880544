package community

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"steamy/internal/assert"
	"steamy/lib/steam"
	"steamy/lib/steam/request"
	"steamy/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_group_members = "client.group-members"
)

// MemberPage is one page of a group's member list.
type MemberPage struct {
	GroupID64    string
	Members      []string
	CurrentPage  int
	TotalPages   int
	NextPageLink string
}

func (p MemberPage) HasNext() bool {
	return p.NextPageLink != "" || p.CurrentPage < p.TotalPages
}

type xmlValue struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type memberListXML struct {
	XMLName      xml.Name `xml:"memberList"`
	GroupID64    string   `xml:"groupID64"`
	TotalPages   int      `xml:"totalPages"`
	CurrentPage  int      `xml:"currentPage"`
	NextPageLink string   `xml:"nextPageLink"`
	Members      struct {
		Values []xmlValue `xml:",any"`
	} `xml:"members"`
}

type Client struct {
	http     *resty.Client
	cfg      steam.Config
	tel      telemetry.API
	executor request.Executor
}

func NewClient(http *resty.Client, cfg steam.Config, tel telemetry.API, opts ...request.Option) *Client {
	assert.NotNil(http)
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}
	tel = telemetry.NewScopedAPI("community", tel)
	return &Client{
		http:     http,
		cfg:      cfg,
		tel:      tel,
		executor: request.NewExecutor(cfg.Retry, tel, opts...),
	}
}

// GroupMembers returns the steam ids on one page of a group's member list.
func (c *Client) GroupMembers(ctx context.Context, groupID string, page int) ([]string, error) {
	result, err := c.GroupMembersPage(ctx, groupID, page)
	if err != nil {
		return nil, err
	}
	return result.Members, nil
}

// GroupMembersPage fetches one page of a group's member list, `groupID` is
// either the group's short name or its id.
func (c *Client) GroupMembersPage(ctx context.Context, groupID string, page int) (MemberPage, error) {
	if page < 1 {
		page = 1
	}

	url := c.cfg.Routes.GroupMembers(groupID, page)
	outcome := c.executor.Execute(ctx, url, func(ctx context.Context) (*resty.Response, error) {
		return c.http.R().SetContext(ctx).Get(url)
	})
	if !outcome.Present() {
		err := steam.NewMarketAPIError("group_members", steam.ErrRetriesExhausted, groupID, page)
		c.tel.ReportBroken(report_client_group_members, err)
		return MemberPage{}, err
	}

	var parsed memberListXML
	err := xml.Unmarshal(outcome.Response.Body(), &parsed)
	if err != nil {
		err = steam.NewMarketAPIError("group_members", fmt.Errorf("decode xml: %w", err), groupID, page)
		c.tel.ReportBroken(report_client_group_members, err)
		return MemberPage{}, err
	}

	result := MemberPage{
		GroupID64:    strings.TrimSpace(parsed.GroupID64),
		CurrentPage:  parsed.CurrentPage,
		TotalPages:   parsed.TotalPages,
		NextPageLink: strings.TrimSpace(parsed.NextPageLink),
		Members:      make([]string, 0, len(parsed.Members.Values)),
	}
	for _, v := range parsed.Members.Values {
		result.Members = append(result.Members, strings.TrimSpace(v.Value))
	}
	return result, nil
}
