package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quidpay/quidpay/app/models"
)

type stubTransactionRepo struct {
	byUser map[string][]models.Transaction
}

func (r *stubTransactionRepo) Create(txn *models.Transaction) error {
	txn.ID = uint(len(r.byUser[txn.UserID]) + 1)
	r.byUser[txn.UserID] = append(r.byUser[txn.UserID], *txn)
	return nil
}

func (r *stubTransactionRepo) GetByUserID(userID string) ([]models.Transaction, error) {
	return r.byUser[userID], nil
}

func newTransactionTestApp(repo *stubTransactionRepo) *fiber.App {
	ctl := NewTransactionController(repo)

	app := fiber.New()
	app.Post("/transactions", ctl.HandleCreate)
	app.Get("/transactions/:user_id", ctl.HandleList)
	return app
}

func TestHandleTransactionCreate(t *testing.T) {
	repo := &stubTransactionRepo{byUser: make(map[string][]models.Transaction)}
	app := newTransactionTestApp(repo)

	body := `{"user_id":"42","amount_in_pence":1999,"description":"Widget purchase"}`
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var out models.Transaction
	assert.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "42", out.UserID)
	assert.Equal(t, int64(1999), out.AmountInPence)

	// Each record gets a server-assigned reference.
	_, err = uuid.Parse(out.Reference)
	assert.NoError(t, err)
}

func TestHandleTransactionList(t *testing.T) {
	repo := &stubTransactionRepo{byUser: make(map[string][]models.Transaction)}
	app := newTransactionTestApp(repo)

	for _, body := range []string{
		`{"user_id":"42","amount_in_pence":100,"description":"first"}`,
		`{"user_id":"42","amount_in_pence":200,"description":"second"}`,
		`{"user_id":"7","amount_in_pence":300,"description":"other user"}`,
	} {
		req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/transactions/42", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var txns []models.Transaction
	assert.NoError(t, json.Unmarshal(raw, &txns))
	assert.Len(t, txns, 2)
}
