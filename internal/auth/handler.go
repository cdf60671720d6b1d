package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/grana-app/grana/internal/identity"
)

// User-facing messages are Portuguese by contract; the frontend shows them verbatim.
const (
	msgInvalidPhone  = "Formato de número inválido. Use o formato 553172225812 (sem o 9 após o DDD)."
	msgUserNotFound  = "Usuário não encontrado. Certifique-se de que o número do WhatsApp está no formato correto, como por exemplo: 553196812719 (sem o 9 após o DDD)."
	msgWrongPassword = "Senha incorreta"
	msgLoginFailed   = "Erro ao fazer login"

	msgProfileNotFound  = "Usuário não encontrado"
	msgProfileFetchFail = "Erro ao buscar dados do usuário"

	msgWrongCurrentPassword = "Senha atual incorreta"
	msgNothingToUpdate      = "Nenhum dado para atualizar"
	msgProfileUpdated       = "Dados atualizados com sucesso"
	msgProfileUpdateFail    = "Erro ao atualizar dados do usuário"
)

// Handler exposes login and profile endpoints.
type Handler struct {
	svc *Service
	ids *identity.Service
}

// NewHandler builds the auth HTTP handler.
func NewHandler(svc *Service, ids *identity.Service) *Handler {
	return &Handler{svc: svc, ids: ids}
}

type loginRequest struct {
	Phone    string `json:"whatsapp_number"`
	Password string `json:"senha"`
}

// Login validates credentials and returns a signed token plus the user id.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	session, err := h.svc.Login(c.UserContext(), req.Phone, req.Password)
	switch {
	case err == nil:
		return c.Status(http.StatusOK).JSON(session)
	case errors.Is(err, identity.ErrInvalidPhoneFormat):
		return fiber.NewError(http.StatusBadRequest, msgInvalidPhone)
	case errors.Is(err, identity.ErrUserNotFound):
		return fiber.NewError(http.StatusUnauthorized, msgUserNotFound)
	case errors.Is(err, identity.ErrWrongPassword):
		return fiber.NewError(http.StatusUnauthorized, msgWrongPassword)
	default:
		return fiber.NewError(http.StatusInternalServerError, msgLoginFailed)
	}
}

// Me returns the profile fields for the user id in the path.
func (h *Handler) Me(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, msgProfileNotFound)
	}

	profile, err := h.ids.Profile(c.UserContext(), id)
	switch {
	case err == nil:
		return c.Status(http.StatusOK).JSON(profile)
	case errors.Is(err, identity.ErrUserNotFound):
		return fiber.NewError(http.StatusNotFound, msgProfileNotFound)
	default:
		return fiber.NewError(http.StatusInternalServerError, msgProfileFetchFail)
	}
}

type updateRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"novaSenha"`
	CurrentPassword string `json:"senhaAtual"`
	Name            string `json:"nome"`
}

// Update applies a partial profile change for the user id in the path.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, msgProfileNotFound)
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err = h.ids.UpdateProfile(c.UserContext(), id, identity.UpdateInput{
		Email:           req.Email,
		NewPassword:     req.NewPassword,
		CurrentPassword: req.CurrentPassword,
		Name:            req.Name,
	})
	switch {
	case err == nil:
		return c.Status(http.StatusOK).JSON(fiber.Map{"message": msgProfileUpdated})
	case errors.Is(err, identity.ErrUserNotFound):
		return fiber.NewError(http.StatusNotFound, msgProfileNotFound)
	case errors.Is(err, identity.ErrWrongPassword):
		return fiber.NewError(http.StatusUnauthorized, msgWrongCurrentPassword)
	case errors.Is(err, identity.ErrNothingToUpdate):
		return fiber.NewError(http.StatusBadRequest, msgNothingToUpdate)
	default:
		return fiber.NewError(http.StatusInternalServerError, msgProfileUpdateFail)
	}
}
