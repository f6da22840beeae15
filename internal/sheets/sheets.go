// Package sheets mirrors placed orders into a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/models"
)

// OrdersTab is created on demand when the default tab cannot take the row.
const OrdersTab = "Orders"

const columns = "A:N"

// API is the subset of the Sheets service the appender needs.
type API interface {
	Append(ctx context.Context, spreadsheetID, rng string, row []interface{}) error
	TabExists(ctx context.Context, spreadsheetID, tab string) (bool, error)
	AddTab(ctx context.Context, spreadsheetID, tab string) error
	WriteHeader(ctx context.Context, spreadsheetID, tab string, header []interface{}) error
}

// Appender writes one ledger row per order, trying progressively looser
// targets until one succeeds.
type Appender struct {
	api           API
	spreadsheetID string
	defaultTab    string
	logger        *zap.Logger
}

var _ checkout.Notifier = (*Appender)(nil)

func NewAppender(api API, spreadsheetID, defaultTab string, logger *zap.Logger) *Appender {
	if defaultTab == "" {
		defaultTab = "Sheet1"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Appender{api: api, spreadsheetID: spreadsheetID, defaultTab: defaultTab, logger: logger}
}

func (a *Appender) Name() string { return "sheets" }

type attempt struct {
	name string
	run  func(ctx context.Context, row []interface{}) error
}

func (a *Appender) attempts() []attempt {
	return []attempt{
		{a.defaultTab + "!" + columns, func(ctx context.Context, row []interface{}) error {
			return a.api.Append(ctx, a.spreadsheetID, a.defaultTab+"!"+columns, row)
		}},
		{OrdersTab + "!" + columns, func(ctx context.Context, row []interface{}) error {
			if err := a.ensureOrdersTab(ctx); err != nil {
				return err
			}
			return a.api.Append(ctx, a.spreadsheetID, OrdersTab+"!"+columns, row)
		}},
		{columns, func(ctx context.Context, row []interface{}) error {
			return a.api.Append(ctx, a.spreadsheetID, columns, row)
		}},
	}
}

// OrderPlaced appends the order's ledger row. It returns an error only when
// every target failed.
func (a *Appender) OrderPlaced(ctx context.Context, order *models.Order) error {
	row := toRow(order.LedgerRow())
	var errs []string
	for _, at := range a.attempts() {
		err := at.run(ctx, row)
		if err == nil {
			a.logger.Info("Order appended to spreadsheet",
				zap.Int64("order_id", order.ID), zap.String("range", at.name))
			return nil
		}
		a.logger.Debug("Spreadsheet append attempt failed", zap.String("range", at.name), zap.Error(err))
		errs = append(errs, fmt.Sprintf("%s: %v", at.name, err))
	}
	return fmt.Errorf("append order %d: all targets failed (%s)", order.ID, strings.Join(errs, "; "))
}

// ensureOrdersTab creates the Orders tab with a header row if it is missing.
func (a *Appender) ensureOrdersTab(ctx context.Context) error {
	ok, err := a.api.TabExists(ctx, a.spreadsheetID, OrdersTab)
	if err != nil {
		return fmt.Errorf("look up tab: %w", err)
	}
	if ok {
		return nil
	}
	if err := a.api.AddTab(ctx, a.spreadsheetID, OrdersTab); err != nil {
		return fmt.Errorf("create tab: %w", err)
	}
	if err := a.api.WriteHeader(ctx, a.spreadsheetID, OrdersTab, toRow(models.LedgerHeader)); err != nil {
		return fmt.Errorf("seed header: %w", err)
	}
	return nil
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// Client implements API on the Sheets v4 service.
type Client struct {
	svc *gsheets.Service
}

var _ API = (*Client)(nil)

func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) Append(ctx context.Context, spreadsheetID, rng string, row []interface{}) error {
	_, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rng, &gsheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

func (c *Client) TabExists(ctx context.Context, spreadsheetID, tab string) (bool, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return false, err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) AddTab(ctx context.Context, spreadsheetID, tab string) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: tab},
			},
		}},
	}
	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return err
}

func (c *Client) WriteHeader(ctx context.Context, spreadsheetID, tab string, header []interface{}) error {
	if len(header) == 0 {
		return errors.New("empty header")
	}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, tab+"!A1:N1", &gsheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}
