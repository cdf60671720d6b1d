package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/grana-app/grana/internal/middleware"
	"github.com/grana-app/grana/internal/transaction"
)

const (
	msgInvalidMonth = "Mês inválido"
	msgSummaryFail  = "Erro ao calcular resumo"
)

// Handler serves the caller's aggregates so clients that do not want to
// reduce the list themselves get the same numbers the dashboard shows.
type Handler struct {
	transactions *transaction.Service
	logger       *slog.Logger
}

// NewHandler builds the summary HTTP handler.
func NewHandler(transactions *transaction.Service, logger *slog.Logger) *Handler {
	return &Handler{transactions: transactions, logger: logger}
}

type response struct {
	TotalBalance   decimal.Decimal  `json:"saldo_total"`
	MonthlyBalance decimal.Decimal  `json:"saldo_mensal"`
	Income         decimal.Decimal  `json:"receitas"`
	Expense        decimal.Decimal  `json:"despesas"`
	ByCategory     []CategoryAmount `json:"por_categoria"`
}

// Get computes the summary for the month in the `month` query parameter
// (YYYY-MM), defaulting to the current month.
func (h *Handler) Get(c *fiber.Ctx) error {
	ownerID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	ref := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, msgInvalidMonth)
		}
		ref = parsed
	}

	transactions, err := h.transactions.List(c.UserContext(), ownerID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, msgSummaryFail)
	}

	totals := MonthlyTotals(transactions, ref, h.logger)
	return c.Status(http.StatusOK).JSON(response{
		TotalBalance:   TotalBalance(transactions),
		MonthlyBalance: MonthlyBalance(transactions, ref, h.logger),
		Income:         totals.Income,
		Expense:        totals.Expense,
		ByCategory:     ExpenseByCategory(transactions, ref, h.logger),
	})
}
