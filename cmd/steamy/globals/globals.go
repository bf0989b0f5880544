package globals

import (
	"context"

	"steamy/lib/steam"
	"steamy/lib/steam/community"
	"steamy/lib/steam/market"
	"steamy/lib/steam/webapi"
	"steamy/lib/steam/workshop"
	"steamy/lib/telemetry"
)

type key struct{}

type Value struct {
	Config    steam.Config
	Tel       telemetry.API
	Telemetry telemetry.Telemetry

	Market    *market.Client
	Workshop  *workshop.Scraper
	Community *community.Client
	WebAPI    *webapi.Client
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
