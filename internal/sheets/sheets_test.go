package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

type fakeAPI struct {
	failRanges map[string]bool
	tabs       map[string]bool
	failAddTab bool

	appended []string
	headers  []string
	added    []string
	rows     [][]interface{}
}

func (f *fakeAPI) Append(_ context.Context, _, rng string, row []interface{}) error {
	if f.failRanges[rng] {
		return errors.New("unable to parse range: " + rng)
	}
	f.appended = append(f.appended, rng)
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeAPI) TabExists(_ context.Context, _, tab string) (bool, error) {
	return f.tabs[tab], nil
}

func (f *fakeAPI) AddTab(_ context.Context, _, tab string) error {
	if f.failAddTab {
		return errors.New("permission denied")
	}
	f.tabs[tab] = true
	f.added = append(f.added, tab)
	return nil
}

func (f *fakeAPI) WriteHeader(_ context.Context, _, tab string, _ []interface{}) error {
	f.headers = append(f.headers, tab)
	return nil
}

func newFake(fail ...string) *fakeAPI {
	f := &fakeAPI{failRanges: map[string]bool{}, tabs: map[string]bool{}}
	for _, r := range fail {
		f.failRanges[r] = true
	}
	return f
}

func sampleOrder() *models.Order {
	proof := "http://localhost:8080/uploads/p.png"
	return &models.Order{
		ID:                   12,
		CustomerName:         "Asha Rao",
		CustomerEmail:        "asha@example.com",
		Items:                []models.CartItem{{CartLine: models.CartLine{Quantity: 2}, Product: models.Product{Name: "Orthopedic Pillow"}}},
		Subtotal:             decimal.NewFromInt(3798),
		Tax:                  decimal.RequireFromString("379.8"),
		Total:                decimal.RequireFromString("4177.8"),
		PaymentScreenshotURL: &proof,
		Status:               models.OrderStatusPaymentUploaded,
		CreatedAt:            time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestAppendDefaultTabFirst(t *testing.T) {
	api := newFake()
	a := NewAppender(api, "sheet-id", "", nil)

	if err := a.OrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(api.appended) != 1 || api.appended[0] != "Sheet1!A:N" {
		t.Fatalf("appended to %v", api.appended)
	}
	row := api.rows[0]
	if len(row) != 14 || row[9] != "4177.80" || row[13] != "Orthopedic Pillow (x2)" || row[12] != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestAppendCreatesOrdersTabOnce(t *testing.T) {
	api := newFake("Sheet1!A:N")
	a := NewAppender(api, "sheet-id", "Sheet1", nil)

	for i := 0; i < 2; i++ {
		if err := a.OrderPlaced(context.Background(), sampleOrder()); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if len(api.added) != 1 || len(api.headers) != 1 {
		t.Fatalf("tab created %d times, header seeded %d times", len(api.added), len(api.headers))
	}
	for _, rng := range api.appended {
		if rng != "Orders!A:N" {
			t.Fatalf("appended to %v", api.appended)
		}
	}
}

func TestAppendFallsBackToUntargetedRange(t *testing.T) {
	api := newFake("Sheet1!A:N")
	api.failAddTab = true
	a := NewAppender(api, "sheet-id", "Sheet1", nil)

	if err := a.OrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(api.appended) != 1 || api.appended[0] != "A:N" {
		t.Fatalf("appended to %v", api.appended)
	}
}

func TestAppendAllTargetsFail(t *testing.T) {
	api := newFake("Sheet1!A:N", "Orders!A:N", "A:N")
	a := NewAppender(api, "sheet-id", "Sheet1", nil)

	err := a.OrderPlaced(context.Background(), sampleOrder())
	if err == nil {
		t.Fatal("expected an error when every target fails")
	}
	for _, want := range []string{"Sheet1!A:N", "Orders!A:N", "A:N"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}
