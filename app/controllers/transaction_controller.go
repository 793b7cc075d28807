package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/quidpay/quidpay/app/models"
	"github.com/quidpay/quidpay/app/repository"
)

// TransactionController records and lists plain bookkeeping transactions.
type TransactionController struct {
	transactions repository.TransactionRepository
}

func NewTransactionController(transactions repository.TransactionRepository) *TransactionController {
	return &TransactionController{transactions: transactions}
}

type transactionRequest struct {
	UserID        string `json:"user_id"`
	AmountInPence int64  `json:"amount_in_pence"`
	Description   string `json:"description"`
}

func (ctl *TransactionController) HandleCreate(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	txn, err := models.NewTransaction(req.UserID, req.AmountInPence, req.Description)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	if err := ctl.transactions.Create(txn); err != nil {
		log.Printf("transaction insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not record transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}

func (ctl *TransactionController) HandleList(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing user id"})
	}

	txns, err := ctl.transactions.GetByUserID(userID)
	if err != nil {
		log.Printf("transaction lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load transactions"})
	}

	return c.JSON(txns)
}
