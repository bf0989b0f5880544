package market

import (
	"context"

	"steamy/lib/steam"
)

// Inventory fetches the inventory of `ownerID` (a steam id 64) for the client's
// app in the given context.
func (c *Client) Inventory(ctx context.Context, ownerID string, contextID int) (Inventory, error) {
	url := c.cfg.Routes.Inventory(ownerID, c.cfg.AppID, contextID)
	res, err := c.get(ctx, "inventory", url, ownerID, contextID)
	if err != nil {
		c.tel.ReportBroken(report_client_inventory, err, ownerID)
		return nil, err
	}

	var inventory Inventory
	err = decodeJSON("inventory", res, &inventory, ownerID, contextID)
	if err != nil {
		c.tel.ReportBroken(report_client_inventory, err, ownerID)
		return nil, err
	}
	if !inventory.Success() {
		return nil, &steam.InvalidInventoryError{
			OwnerID:   ownerID,
			AppID:     c.cfg.AppID,
			ContextID: contextID,
		}
	}
	return inventory, nil
}
