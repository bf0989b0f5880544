package pricestore

import (
	"context"
	"testing"
	"time"

	"steamy/lib/steam/market"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	sqlite, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer sqlite.Close()
	store := NewStore(sqlite)

	redline := Item{AppID: 730, Name: "AK-47 | Redline (Field-Tested)"}
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	{
		quotes, err := store.Quotes(ctx, redline)
		require.NoError(t, err)
		require.Len(t, quotes, 0)
	}
	{
		err := store.PushQuote(ctx, QuoteSnapshot{
			Item:  redline,
			Time:  now,
			Quote: market.PriceQuote{Volume: 10, LowestPrice: 1.5, MedianPrice: 1.4},
		})
		require.NoError(t, err)
		err = store.PushQuote(ctx, QuoteSnapshot{
			Item:  redline,
			Time:  now.Add(time.Hour),
			Quote: market.PriceQuote{Volume: -1},
		})
		require.NoError(t, err)
		err = store.PushQuote(ctx, QuoteSnapshot{
			Item:  Item{AppID: 440, Name: redline.Name},
			Time:  now,
			Quote: market.PriceQuote{Volume: 3},
		})
		require.NoError(t, err)

		quotes, err := store.Quotes(ctx, redline)
		require.NoError(t, err)
		require.Len(t, quotes, 2)
		require.Equal(t, now, quotes[0].Time)
		require.Equal(t, 10, quotes[0].Quote.Volume)
		require.Equal(t, -1, quotes[1].Quote.Volume)
	}
	{
		err := store.PushHistory(ctx, redline, map[time.Time]float64{
			now:                     2,
			now.Add(-2 * time.Hour): 1,
		})
		require.NoError(t, err)
		err = store.PushHistory(ctx, redline, map[time.Time]float64{
			now: 3,
		})
		require.NoError(t, err)

		history, err := store.History(ctx, redline)
		require.NoError(t, err)
		require.Equal(t, []HistoryPoint{
			{Time: now.Add(-2 * time.Hour), Value: 1},
			{Time: now, Value: 3},
		}, history)
	}
}
