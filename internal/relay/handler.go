package relay

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/emandor/lemme_relay/internal/middleware"
	"github.com/emandor/lemme_relay/internal/telemetry"
)

type Handler struct {
	svc Answerer
}

func NewHandler(svc Answerer) *Handler {
	return &Handler{svc: svc}
}

// Request is the inbound body of POST /. Query is a pointer so a missing
// field can be told apart from an empty question.
type Request struct {
	Query *string `json:"query"`
}

func (h *Handler) Ask(c *fiber.Ctx) error {
	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()

	var req Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Warn().Err(err).Msg("relay_bad_body")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "body must be a JSON object"})
	}
	if req.Query == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "field required: query"})
	}

	res, err := h.svc.Answer(c.UserContext(), *req.Query)
	if err != nil {
		// the app error handler logs it and answers 500
		return err
	}
	return c.JSON(res)
}

func (h *Handler) ListProviders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"enabled": h.svc.Providers()})
}
