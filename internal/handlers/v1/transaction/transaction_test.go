package transaction

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/caisse-server/internal/handlers/httpio"
	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/service"
)

// mockTransactionService is a mock for transactionService.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) Create(ctx context.Context, identity ledger.Identity, req ledger.CreateTransactionRequest) (*ledger.Transaction, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) Update(ctx context.Context, id uuid.UUID, patch ledger.TransactionPatch) (*ledger.Transaction, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) Cancel(ctx context.Context, identity ledger.Identity, id uuid.UUID, justification string) (*ledger.Transaction, error) {
	args := m.Called(ctx, identity, id, justification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) FindByPatient(ctx context.Context, patientID int64) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) FindByDateRange(ctx context.Context, window ledger.Window) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionService) ListPage(ctx context.Context, cursor *service.TransactionCursor) ([]*ledger.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, cursor)
	var rows []*ledger.Transaction
	if args.Get(0) != nil {
		rows = args.Get(0).([]*ledger.Transaction)
	}
	var next *service.TransactionCursor
	if args.Get(1) != nil {
		next = args.Get(1).(*service.TransactionCursor)
	}
	return rows, next, args.Error(2)
}

func newTestRouter(svc transactionService) http.Handler {
	logger, _ := test.NewNullLogger()
	r := chi.NewRouter()
	Register(r, logger, svc)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(httpio.HeaderUserID, "3")
	req.Header.Set(httpio.HeaderUserName, "Awa Caissiere")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func sampleTransaction() *ledger.Transaction {
	patientID := int64(7)
	id := uuid.Must(uuid.NewV4())
	return &ledger.Transaction{
		ID:            id,
		PatientID:     &patientID,
		Amount:        decimal.RequireFromString("15000"),
		PaymentMethod: ledger.PaymentCash,
		Status:        ledger.StatusActive,
		CreatedBy:     3,
		CreatedByName: "Awa Caissiere",
		PaidAt:        time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Lines: []ledger.Line{{
			ID:            uuid.Must(uuid.NewV4()),
			TransactionID: id,
			Position:      1,
			ItemType:      ledger.ItemConsultation,
			ItemRefID:     41,
			UnitPrice:     decimal.RequireFromString("15000"),
			Quantity:      1,
			LineTotal:     decimal.RequireFromString("15000"),
			Status:        ledger.LineActive,
		}},
	}
}

// -- parseCreateTransactionBody unit tests --

func TestParseCreateTransactionBody_ValidInput(t *testing.T) {
	patientID := int64(7)
	advance := "5000"
	body := &CreateTransactionBody{
		PatientID:     &patientID,
		Amount:        "15000.00",
		AdvanceAmount: &advance,
		PaymentMethod: "mobile_money",
		PaidAt:        "2025-03-01T09:30:00Z",
		Lines: []LineBody{
			{ItemType: "consultation", ItemRefID: 41, UnitPrice: "15000", Quantity: 1, Note: "first visit"},
		},
	}

	req, err := parseCreateTransactionBody(body)

	require.NoError(t, err)
	assert.Equal(t, &patientID, req.PatientID)
	assert.True(t, req.Amount.Equal(decimal.RequireFromString("15000")))
	assert.True(t, req.AdvanceAmount.Equal(decimal.RequireFromString("5000")))
	assert.Equal(t, ledger.PaymentMobileMoney, req.PaymentMethod)
	assert.True(t, req.PaidAt.Equal(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)))
	require.Len(t, req.Lines, 1)
	assert.Equal(t, ledger.ItemConsultation, req.Lines[0].ItemType)
	assert.Equal(t, "first visit", req.Lines[0].Note)
}

func TestParseCreateTransactionBody_OptionalFieldsLeftZero(t *testing.T) {
	body := &CreateTransactionBody{
		PaymentMethod: "cash",
		Lines:         []LineBody{{ItemType: "pharmacy", UnitPrice: "2500", Quantity: 2}},
	}

	req, err := parseCreateTransactionBody(body)

	require.NoError(t, err)
	assert.Nil(t, req.Amount)
	assert.Nil(t, req.AdvanceAmount)
	assert.True(t, req.PaidAt.IsZero())
}

func TestParseCreateTransactionBody_ExplicitZeroAmountIsKept(t *testing.T) {
	body := &CreateTransactionBody{
		Amount:        "0.00",
		PaymentMethod: "cash",
		Lines:         []LineBody{{ItemType: "other", UnitPrice: "20.00", Quantity: 1}},
	}

	req, err := parseCreateTransactionBody(body)

	require.NoError(t, err)
	require.NotNil(t, req.Amount)
	assert.True(t, req.Amount.IsZero())
}

func TestParseCreateTransactionBody_InvalidFields(t *testing.T) {
	bad := "ten"
	cases := map[string]*CreateTransactionBody{
		"amount":         {Amount: "ten", Lines: []LineBody{}},
		"advance_amount": {AdvanceAmount: &bad},
		"paid_at":        {PaidAt: "yesterday"},
		"unit_price":     {Lines: []LineBody{{ItemType: "other", UnitPrice: "free", Quantity: 1}}},
	}
	for field, body := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := parseCreateTransactionBody(body)

			require.Error(t, err)
			var lerr *ledger.Error
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, field, lerr.Field)
		})
	}
}

// -- parseUpdateTransactionBody unit tests --

func TestParseUpdateTransactionBody_NullClearsPatient(t *testing.T) {
	var body UpdateTransactionBody
	require.NoError(t, json.Unmarshal([]byte(`{"patient_id": null, "payment_method": "card"}`), &body))

	patch, err := parseUpdateTransactionBody(&body)

	require.NoError(t, err)
	assert.True(t, patch.PatientID.IsNull())
	assert.True(t, patch.AdvanceAmount.IsUnset())
	method, ok := patch.PaymentMethod.Get()
	assert.True(t, ok)
	assert.Equal(t, ledger.PaymentCard, method)
	assert.True(t, patch.Lines.IsUnset())
}

func TestParseUpdateTransactionBody_Lines(t *testing.T) {
	var body UpdateTransactionBody
	require.NoError(t, json.Unmarshal([]byte(`{"advance_amount": "100.50", "lines": [{"item_type": "lab_exam", "item_ref_id": 9, "unit_price": "8000", "quantity": 2}]}`), &body))

	patch, err := parseUpdateTransactionBody(&body)

	require.NoError(t, err)
	advance, ok := patch.AdvanceAmount.Get()
	require.True(t, ok)
	assert.True(t, advance.Equal(decimal.RequireFromString("100.50")))
	lines, ok := patch.Lines.Get()
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

// -- HTTP tests (chi router, mocked service) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	created := sampleTransaction()
	mockSvc := new(mockTransactionService)
	mockSvc.On("Create", mock.Anything,
		mock.MatchedBy(func(id ledger.Identity) bool { return id.UserID == 3 && id.DisplayName == "Awa Caissiere" }),
		mock.MatchedBy(func(req ledger.CreateTransactionRequest) bool {
			return req.PaymentMethod == ledger.PaymentCash && len(req.Lines) == 1
		}),
	).Return(created, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodPost, "/v1/transactions", CreateTransactionBody{
		PatientID:     created.PatientID,
		PaymentMethod: "cash",
		Lines:         []LineBody{{ItemType: "consultation", ItemRefID: 41, UnitPrice: "15000", Quantity: 1}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var body Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "15000.00", body.Amount)
	assert.Equal(t, "2025-03-01T09:30:00Z", body.PaidAt)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, "15000.00", body.Lines[0].LineTotal)
	assert.Nil(t, body.Cancellation)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MalformedBody(t *testing.T) {
	mockSvc := new(mockTransactionService)
	req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	newTestRouter(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateTransaction_InvalidUnitPrice(t *testing.T) {
	mockSvc := new(mockTransactionService)

	w := do(t, newTestRouter(mockSvc), http.MethodPost, "/v1/transactions", CreateTransactionBody{
		PaymentMethod: "cash",
		Lines:         []LineBody{{ItemType: "pharmacy", UnitPrice: "not-a-decimal", Quantity: 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestHTTP_CreateTransaction_UnknownPatient(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ledger.NewReferenceError("transaction.create", "patient_id", "patient does not exist"))

	w := do(t, newTestRouter(mockSvc), http.MethodPost, "/v1/transactions", CreateTransactionBody{
		PaymentMethod: "cash",
		Lines:         []LineBody{{ItemType: "consultation", UnitPrice: "100", Quantity: 1}},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "patient_id")
}

func TestHTTP_CreateTransaction_StoreFailure(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ledger.NewUnexpectedStoreError("transaction.create", assert.AnError, false))

	w := do(t, newTestRouter(mockSvc), http.MethodPost, "/v1/transactions", CreateTransactionBody{
		PaymentMethod: "cash",
		Lines:         []LineBody{{ItemType: "other", UnitPrice: "100", Quantity: 1}},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_Success(t *testing.T) {
	found := sampleTransaction()
	mockSvc := new(mockTransactionService)
	mockSvc.On("Get", mock.Anything, found.ID).Return(found, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions/"+found.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_InvalidID(t *testing.T) {
	mockSvc := new(mockTransactionService)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Get")
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("Get", mock.Anything, id).Return(nil, ledger.NewNotFoundError("transaction.get", "transaction not found"))

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTP_UpdateTransaction_Conflict(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(p ledger.TransactionPatch) bool {
		return !p.PaymentMethod.IsUnset()
	})).Return(nil, ledger.NewConflictError("transaction.update", "cancelled transactions cannot be edited"))

	w := do(t, newTestRouter(mockSvc), http.MethodPatch, "/v1/transactions/"+id.String(), map[string]any{
		"payment_method": "card",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CancelTransaction_Success(t *testing.T) {
	cancelled := sampleTransaction()
	cancelled.Status = ledger.StatusCancelled
	cancelled.Cancellation = &ledger.Cancellation{
		Audit:         ledger.Audit{ActorID: 3, ActorName: "Awa Caissiere", At: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		Justification: "duplicate entry",
	}
	mockSvc := new(mockTransactionService)
	mockSvc.On("Cancel", mock.Anything, mock.Anything, cancelled.ID, "duplicate entry").Return(cancelled, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodPost, "/v1/transactions/"+cancelled.ID.String()+"/cancel",
		httpio.CancelBody{Justification: "duplicate entry"})

	assert.Equal(t, http.StatusOK, w.Code)
	var body Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
	require.NotNil(t, body.Cancellation)
	assert.Equal(t, "duplicate entry", body.Cancellation.Justification)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CancelTransaction_AlreadyCancelled(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("Cancel", mock.Anything, mock.Anything, id, "again").
		Return(nil, ledger.NewConflictError("transaction.cancel", "transaction is already cancelled"))

	w := do(t, newTestRouter(mockSvc), http.MethodPost, "/v1/transactions/"+id.String()+"/cancel",
		httpio.CancelBody{Justification: "again"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHTTP_ListTransactions_ByPatient(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("FindByPatient", mock.Anything, int64(7)).Return([]*ledger.Transaction{sampleTransaction()}, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions?patient_id=7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Transactions, 1)
	assert.Nil(t, body.NextCursor)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_ByWindow(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("FindByDateRange", mock.Anything, mock.MatchedBy(func(w ledger.Window) bool {
		return w.From != nil && w.To == nil
	})).Return([]*ledger.Transaction{}, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions?from=2025-03-01T00:00:00Z", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_PatientAndWindowRejected(t *testing.T) {
	mockSvc := new(mockTransactionService)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions?patient_id=7&to=2025-03-01T00:00:00Z", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTP_ListTransactions_PagesWithCursor(t *testing.T) {
	maxPaidAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListPage", mock.Anything, mock.MatchedBy(func(c *service.TransactionCursor) bool {
		return c != nil && c.Position == 20 && c.Limit == 20 && c.MaxPaidAt.Equal(maxPaidAt)
	})).Return([]*ledger.Transaction{sampleTransaction()}, &service.TransactionCursor{
		Position: 40, Limit: 20, MaxPaidAt: maxPaidAt,
	}, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodGet,
		"/v1/transactions?position=20&limit=20&max_paid_at=2025-03-01T09:30:00Z", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 40, body.NextCursor.Position)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_DefaultCursorIsNil(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListPage", mock.Anything, (*service.TransactionCursor)(nil)).Return(nil, nil, nil)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_LimitOutOfRange(t *testing.T) {
	mockSvc := new(mockTransactionService)

	w := do(t, newTestRouter(mockSvc), http.MethodGet, "/v1/transactions?limit=500", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ListPage")
}
