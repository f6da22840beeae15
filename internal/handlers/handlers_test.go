package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyzlearns/ShopEase1/internal/auth"
	"github.com/xyzlearns/ShopEase1/internal/backup"
	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/export"
	"github.com/xyzlearns/ShopEase1/internal/handlers"
	"github.com/xyzlearns/ShopEase1/internal/models"
	"github.com/xyzlearns/ShopEase1/internal/payment"
	"github.com/xyzlearns/ShopEase1/internal/routes"
	"github.com/xyzlearns/ShopEase1/internal/store"
	"github.com/xyzlearns/ShopEase1/internal/store/memory"
)

const adminKey = "admin-key"

func init() {
	gin.SetMode(gin.TestMode)
	models.PasswordCost = bcrypt.MinCost
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) Name() string { return "sheets" }

func (f *failingNotifier) OrderPlaced(context.Context, *models.Order) error {
	f.calls++
	return errors.New("spreadsheet unavailable")
}

type testServer struct {
	router    *gin.Engine
	store     *memory.Store
	uploadDir string
}

func newServer(t *testing.T, notifiers ...checkout.Notifier) *testServer {
	t.Helper()
	st := memory.New()
	if err := st.SeedProducts(context.Background(), store.DefaultCatalog()); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	proofs, err := backup.NewLocalStore(dir, "http://localhost:8080", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	co := checkout.NewService(st, st, proofs, zap.NewNop())
	for _, n := range notifiers {
		co.AddNotifier(n)
	}

	h := &handlers.Handlers{
		Store:       st,
		StoreDriver: "memory",
		Auth:        auth.NewService(st, auth.NewTokenManager("test-secret", time.Hour)),
		Checkout:    co,
		UPI:         payment.UPI{VPA: "shop@upi", Payee: "ShopEase"},
		Logger:      zap.NewNop(),
	}
	r := routes.SetupRouter(h, routes.Options{
		UploadDir:         dir,
		AdminAPIKey:       adminKey,
		AuthRatePerMinute: 6000,
		AuthRateBurst:     100,
	})
	return &testServer{router: r, store: st, uploadDir: dir}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": email, "password": "secret123", "firstName": "Asha"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, w.Code, w.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	return resp.Message
}

type upload struct {
	filename    string
	contentType string
	data        []byte
}

var billing = map[string]string{
	"firstName": "Asha", "lastName": "Rao", "email": "asha@example.com",
	"address": "1 MG Road", "city": "Pune", "state": "MH", "zip": "411001",
}

func (s *testServer) placeOrder(t *testing.T, token, session string, fields map[string]string, file *upload) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, handlers.ProofField, file.filename))
		hdr.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(file.data)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	if session != "" {
		req.Header.Set("X-Session-Id", session)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func pngUpload() *upload {
	return &upload{filename: "proof.png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\nnot-really")}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"store":"memory"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body)
	}
}

func TestProducts(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/products", nil, nil)
	var all []models.Product
	decode(t, w, &all)
	if len(all) != 8 {
		t.Fatalf("expected the seeded catalog, got %d products", len(all))
	}

	w = s.do(t, http.MethodGet, "/api/products?category=pillow", nil, nil)
	var pillows []models.Product
	decode(t, w, &pillows)
	if len(pillows) == 0 {
		t.Fatal("expected pillows")
	}
	for _, p := range pillows {
		if p.Category != "pillow" {
			t.Fatalf("category filter leaked %q", p.Category)
		}
	}

	w = s.do(t, http.MethodGet, "/api/products/99999", nil, nil)
	if w.Code != http.StatusNotFound || message(t, w) != "Product not found" {
		t.Fatalf("missing product: %d %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodGet, "/api/products/abc", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: %d", w.Code)
	}
}

func TestCartAddMergesDuplicateProduct(t *testing.T) {
	s := newServer(t)
	hdr := map[string]string{"X-Session-Id": "anon-s1"}

	for _, qty := range []int{2, 3} {
		w := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1, "quantity": qty}, hdr)
		if w.Code != http.StatusOK {
			t.Fatalf("add: %d %s", w.Code, w.Body)
		}
		if got := w.Header().Get("X-Session-Id"); got != "anon-s1" {
			t.Fatalf("session header = %q", got)
		}
	}

	w := s.do(t, http.MethodGet, "/api/cart", nil, hdr)
	var items []models.CartItem
	decode(t, w, &items)
	if len(items) != 1 || items[0].Quantity != 5 || items[0].Product.ID != 1 {
		t.Fatalf("expected one merged line of 5, got %+v", items)
	}
}

func TestCartDefaultsQuantityAndMintsSession(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 2}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("add: %d %s", w.Code, w.Body)
	}
	sid := w.Header().Get("X-Session-Id")
	if !strings.HasPrefix(sid, "anon-") {
		t.Fatalf("expected a minted session, got %q", sid)
	}
	var line models.CartLine
	decode(t, w, &line)
	if line.Quantity != 1 || line.SessionID != sid {
		t.Fatalf("unexpected line %+v", line)
	}
}

func TestCartErrors(t *testing.T) {
	s := newServer(t)
	hdr := map[string]string{"X-Session-Id": "anon-s1"}

	if w := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 99999}, hdr); w.Code != http.StatusNotFound {
		t.Fatalf("unknown product: %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/cart", gin.H{"quantity": 1}, hdr); w.Code != http.StatusBadRequest {
		t.Fatalf("missing product id: %d", w.Code)
	}

	w := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1}, hdr)
	var line models.CartLine
	decode(t, w, &line)
	path := fmt.Sprintf("/api/cart/%d", line.ID)

	if w := s.do(t, http.MethodPut, path, gin.H{"quantity": 0}, hdr); w.Code != http.StatusBadRequest || message(t, w) != "Invalid quantity" {
		t.Fatalf("zero quantity: %d %s", w.Code, w.Body)
	}
	if w := s.do(t, http.MethodPut, path, gin.H{"quantity": 4}, hdr); w.Code != http.StatusOK {
		t.Fatalf("update: %d", w.Code)
	}
	if w := s.do(t, http.MethodPut, "/api/cart/424242", gin.H{"quantity": 4}, hdr); w.Code != http.StatusNotFound {
		t.Fatalf("update missing: %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, path, nil, hdr); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, path, nil, hdr); w.Code != http.StatusNotFound {
		t.Fatalf("delete twice: %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/cart", nil, hdr); w.Code != http.StatusOK {
		t.Fatalf("clear empty cart: %d", w.Code)
	}
}

func TestCartLinesBelongToTheirSession(t *testing.T) {
	s := newServer(t)
	owner := map[string]string{"X-Session-Id": "anon-owner"}
	other := map[string]string{"X-Session-Id": "anon-other"}

	w := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1, "quantity": 2}, owner)
	var line models.CartLine
	decode(t, w, &line)
	path := fmt.Sprintf("/api/cart/%d", line.ID)

	if w := s.do(t, http.MethodPut, path, gin.H{"quantity": 50}, other); w.Code != http.StatusNotFound || message(t, w) != "Cart item not found" {
		t.Fatalf("update from another session: %d %s", w.Code, w.Body)
	}
	if w := s.do(t, http.MethodDelete, path, nil, other); w.Code != http.StatusNotFound {
		t.Fatalf("delete from another session: %d %s", w.Code, w.Body)
	}

	token := s.register(t, "shopper@example.com")
	w = s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 2}, bearer(token))
	var userLine models.CartLine
	decode(t, w, &userLine)
	if w := s.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/%d", userLine.ID), nil, other); w.Code != http.StatusNotFound {
		t.Fatalf("anonymous delete of an account's line: %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/cart", nil, owner)
	var items []models.CartItem
	decode(t, w, &items)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("owner's cart changed: %+v", items)
	}
	w = s.do(t, http.MethodGet, "/api/cart", nil, bearer(token))
	decode(t, w, &items)
	if len(items) != 1 {
		t.Fatalf("account cart changed: %+v", items)
	}
}

func TestAnonymousCannotClaimUserSession(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/api/cart", nil, map[string]string{"X-Session-Id": "user:1"})
	if got := w.Header().Get("X-Session-Id"); !strings.HasPrefix(got, "anon-") {
		t.Fatalf("anonymous request got session %q", got)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	s := newServer(t)
	s.register(t, "dup@example.com")

	w := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "dup@example.com", "password": "another1"}, nil)
	if w.Code != http.StatusBadRequest || message(t, w) != "User already exists" {
		t.Fatalf("duplicate register: %d %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "not-an-email", "password": "secret123"}, nil)
	if w.Code != http.StatusBadRequest || message(t, w) != "Validation failed" {
		t.Fatalf("invalid register: %d %s", w.Code, w.Body)
	}
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	s := newServer(t)
	s.register(t, "asha@example.com")

	unknown := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"}, nil)
	wrong := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "asha@example.com", "password": "wrong-pass"}, nil)
	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("codes %d / %d", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("bodies differ: %s vs %s", unknown.Body, wrong.Body)
	}

	ok := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "asha@example.com", "password": "secret123"}, nil)
	if ok.Code != http.StatusOK || !strings.Contains(ok.Body.String(), `"token"`) {
		t.Fatalf("login: %d %s", ok.Code, ok.Body)
	}
	if strings.Contains(ok.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", ok.Body)
	}
}

func TestMe(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "me@example.com")

	if w := s.do(t, http.MethodGet, "/api/auth/me", nil, nil); w.Code != http.StatusUnauthorized || message(t, w) != "Access token required" {
		t.Fatalf("no token: %d %s", w.Code, w.Body)
	}
	if w := s.do(t, http.MethodGet, "/api/auth/me", nil, bearer("garbage")); w.Code != http.StatusUnauthorized || message(t, w) != "Invalid or expired token" {
		t.Fatalf("bad token: %d %s", w.Code, w.Body)
	}
	w := s.do(t, http.MethodGet, "/api/auth/me", nil, bearer(token))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "me@example.com") {
		t.Fatalf("me: %d %s", w.Code, w.Body)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "buyer@example.com")

	w := s.placeOrder(t, token, "", billing, pngUpload())
	if w.Code != http.StatusBadRequest || message(t, w) != "Cart is empty" {
		t.Fatalf("empty cart: %d %s", w.Code, w.Body)
	}
}

func TestCheckoutRequiresAuth(t *testing.T) {
	s := newServer(t)
	w := s.placeOrder(t, "", "anon-s1", billing, pngUpload())
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCheckoutRejectionsLeaveCartAlone(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "buyer@example.com")
	if w := s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1, "quantity": 2}, bearer(token)); w.Code != http.StatusOK {
		t.Fatalf("add: %d", w.Code)
	}

	tests := []struct {
		name string
		file *upload
		want string
	}{
		{"missing proof", nil, "Payment screenshot is required to complete the order"},
		{"pdf", &upload{filename: "proof.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4")}, "Invalid file type. Only JPEG, JPG, and PNG files are allowed"},
		{"over 5MB", &upload{filename: "big.png", contentType: "image/png", data: bytes.Repeat([]byte{1}, checkout.MaxProofSize+100<<10)}, "File too large. Maximum size is 5MB"},
		{"far over 5MB", &upload{filename: "huge.png", contentType: "image/png", data: bytes.Repeat([]byte{1}, checkout.MaxProofSize+2<<20)}, "File too large. Maximum size is 5MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.placeOrder(t, token, "", billing, tt.file)
			if w.Code != http.StatusBadRequest || message(t, w) != tt.want {
				t.Fatalf("got %d %s", w.Code, w.Body)
			}
		})
	}

	w := s.do(t, http.MethodGet, "/api/cart", nil, bearer(token))
	var items []models.CartItem
	decode(t, w, &items)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart changed after rejected checkouts: %+v", items)
	}
	orders, _ := s.store.ListOrders(context.Background())
	if len(orders) != 0 {
		t.Fatalf("rejected checkouts created %d orders", len(orders))
	}
}

func withBilling(overrides map[string]string) map[string]string {
	fields := map[string]string{}
	for k, v := range billing {
		fields[k] = v
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return fields
}

func TestCheckoutInvalidBilling(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "buyer@example.com")
	s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1}, bearer(token))

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"bad email", map[string]string{"email": "nope"}},
		{"blank address", map[string]string{"address": "   "}},
		{"blank city", map[string]string{"city": " "}},
		{"blank first name", map[string]string{"firstName": "\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.placeOrder(t, token, "", withBilling(tt.fields), pngUpload())
			if w.Code != http.StatusBadRequest || message(t, w) != "Validation failed" {
				t.Fatalf("got %d %s", w.Code, w.Body)
			}
		})
	}

	if orders, _ := s.store.ListOrders(context.Background()); len(orders) != 0 {
		t.Fatalf("blank billing created %d orders", len(orders))
	}
}

func TestCheckoutTrimsBilling(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "buyer@example.com")
	s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1}, bearer(token))

	w := s.placeOrder(t, token, "", withBilling(map[string]string{"city": "  Pune  ", "firstName": " Asha"}), pngUpload())
	if w.Code != http.StatusCreated {
		t.Fatalf("place order: %d %s", w.Code, w.Body)
	}
	var order models.Order
	decode(t, w, &order)
	if order.CustomerCity != "Pune" || order.CustomerName != "Asha Rao" {
		t.Fatalf("billing not trimmed: city %q, name %q", order.CustomerCity, order.CustomerName)
	}
}

type moneyBreakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func TestCheckoutSuccess(t *testing.T) {
	sheet := &failingNotifier{}
	s := newServer(t, sheet)
	token := s.register(t, "buyer@example.com")
	other := s.register(t, "other@example.com")

	// Shop anonymously, then sign in with the same session.
	anon := map[string]string{"X-Session-Id": "anon-guest"}
	s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 1, "quantity": 1}, anon)
	s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 2, "quantity": 2}, anon)

	signedIn := map[string]string{"Authorization": "Bearer " + token, "X-Session-Id": "anon-guest"}
	w := s.do(t, http.MethodGet, "/api/cart/summary", nil, signedIn)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: %d %s", w.Code, w.Body)
	}
	if got := w.Header().Get("X-Session-Id"); !strings.HasPrefix(got, "user:") {
		t.Fatalf("signed-in session = %q", got)
	}
	var summary struct {
		moneyBreakdown
		ItemCount int `json:"itemCount"`
	}
	decode(t, w, &summary)
	if summary.ItemCount != 3 {
		t.Fatalf("merged cart has %d units", summary.ItemCount)
	}

	w = s.placeOrder(t, token, "anon-guest", billing, pngUpload())
	if w.Code != http.StatusCreated {
		t.Fatalf("place order: %d %s", w.Code, w.Body)
	}
	var order struct {
		moneyBreakdown
		ID                   int64  `json:"id"`
		Status               string `json:"status"`
		CustomerName         string `json:"customerName"`
		PaymentScreenshotURL string `json:"paymentScreenshotUrl"`
		Items                []models.CartItem
	}
	decode(t, w, &order)

	if !order.Total.Equal(summary.Total) || !order.Tax.Equal(summary.Tax) || !order.Subtotal.Equal(summary.Subtotal) {
		t.Fatalf("order totals %+v differ from summary %+v", order.moneyBreakdown, summary.moneyBreakdown)
	}
	if order.Status != string(models.OrderStatusPaymentUploaded) || order.CustomerName != "Asha Rao" || len(order.Items) != 2 {
		t.Fatalf("unexpected order %+v", order)
	}
	if sheet.calls != 1 {
		t.Fatalf("notifier called %d times", sheet.calls)
	}

	name := strings.TrimPrefix(order.PaymentScreenshotURL, "http://localhost:8080/uploads/")
	if name == order.PaymentScreenshotURL || !strings.HasPrefix(name, "payment-proof-") {
		t.Fatalf("unexpected proof url %q", order.PaymentScreenshotURL)
	}
	if _, err := os.Stat(filepath.Join(s.uploadDir, name)); err != nil {
		t.Fatalf("proof not on disk: %v", err)
	}
	if w := s.do(t, http.MethodGet, "/uploads/"+name, nil, nil); w.Code != http.StatusOK {
		t.Fatalf("proof not served: %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/cart", nil, bearer(token))
	var items []models.CartItem
	decode(t, w, &items)
	if len(items) != 0 {
		t.Fatalf("cart not cleared: %+v", items)
	}

	// Order history is per account.
	w = s.do(t, http.MethodGet, "/api/orders", nil, bearer(token))
	var mine []models.Order
	decode(t, w, &mine)
	if len(mine) != 1 || mine[0].ID != order.ID {
		t.Fatalf("my orders: %+v", mine)
	}
	path := fmt.Sprintf("/api/orders/%d", order.ID)
	if w := s.do(t, http.MethodGet, path, nil, bearer(token)); w.Code != http.StatusOK {
		t.Fatalf("own order: %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, path, nil, bearer(other)); w.Code != http.StatusNotFound {
		t.Fatalf("other account's order: %d", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/orders", nil, bearer(other))
	var theirs []models.Order
	decode(t, w, &theirs)
	if len(theirs) != 0 {
		t.Fatalf("other account sees %d orders", len(theirs))
	}
}

func TestAdminRoutes(t *testing.T) {
	s := newServer(t)
	token := s.register(t, "buyer@example.com")
	s.do(t, http.MethodPost, "/api/cart", gin.H{"productId": 3}, bearer(token))
	if w := s.placeOrder(t, token, "", billing, pngUpload()); w.Code != http.StatusCreated {
		t.Fatalf("place order: %d %s", w.Code, w.Body)
	}

	if w := s.do(t, http.MethodGet, "/admin/orders", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no key: %d", w.Code)
	}

	key := map[string]string{"X-API-Key": adminKey}
	w := s.do(t, http.MethodGet, "/admin/orders", nil, key)
	var all []models.Order
	decode(t, w, &all)
	if len(all) != 1 {
		t.Fatalf("admin sees %d orders", len(all))
	}
	if w := s.do(t, http.MethodGet, fmt.Sprintf("/admin/orders/%d", all[0].ID), nil, key); w.Code != http.StatusOK {
		t.Fatalf("admin get: %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/admin/orders/999", nil, key); w.Code != http.StatusNotFound {
		t.Fatalf("admin get missing: %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/admin/orders/export.xlsx", nil, key)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != export.ContentType || w.Body.Len() == 0 {
		t.Fatalf("export: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
}

func TestPaymentQR(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/api/payment/qr?amount=100", nil, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("qr: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("body is not a png")
	}
	if w := s.do(t, http.MethodGet, "/api/payment/qr?amount=abc", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad amount: %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/payment/qr", nil, map[string]string{"X-Session-Id": "anon-s1"}); w.Code != http.StatusOK {
		t.Fatalf("cart total qr: %d", w.Code)
	}
}
