package transaction

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/grana-app/grana/internal/middleware"
)

const (
	msgNotFound   = "Transação não encontrada"
	msgListFail   = "Erro ao buscar transações"
	msgCreateFail = "Erro ao adicionar transação"
	msgUpdateFail = "Erro ao atualizar transação"
	msgDeleteFail = "Erro ao excluir transação"
)

// Handler exposes transaction HTTP endpoints. All of them run behind the
// bearer-token middleware, which stores the caller id in locals.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type writeRequest struct {
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	Category    string          `json:"categoria"`
	Date        string          `json:"data"`
	Kind        Kind            `json:"tipo"`
}

func (r writeRequest) input() Input {
	return Input{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date,
		Kind:        r.Kind,
	}
}

// List returns the caller's transactions, most recent first.
func (h *Handler) List(c *fiber.Ctx) error {
	ownerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	transactions, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, msgListFail)
	}
	return c.Status(http.StatusOK).JSON(transactions)
}

// Create stores a new transaction and returns the row with its assigned id.
func (h *Handler) Create(c *fiber.Ctx) error {
	ownerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	var req writeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.Create(c.UserContext(), ownerID, req.input())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, msgCreateFail)
	}
	return c.Status(http.StatusCreated).JSON(created)
}

// Update rewrites description, amount, category and date of the caller's row.
func (h *Handler) Update(c *fiber.Ctx) error {
	ownerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, msgNotFound)
	}
	var req writeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.service.Update(c.UserContext(), ownerID, id, req.input())
	switch {
	case err == nil:
		return c.Status(http.StatusOK).JSON(updated)
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, msgNotFound)
	default:
		return fiber.NewError(http.StatusInternalServerError, msgUpdateFail)
	}
}

// Delete removes the caller's row and returns no body.
func (h *Handler) Delete(c *fiber.Ctx) error {
	ownerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, msgNotFound)
	}
	err = h.service.Delete(c.UserContext(), ownerID, id)
	switch {
	case err == nil:
		return c.SendStatus(http.StatusNoContent)
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, msgNotFound)
	default:
		return fiber.NewError(http.StatusInternalServerError, msgDeleteFail)
	}
}
