package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
	"github.com/bhrigu136/shopify-ai-analytics/internal/service"
)

// askRequest accepts params from a JSON or form body, falling back to the query string.
type askRequest struct {
	StoreID  string `json:"store_id" form:"store_id" query:"store_id"`
	Question string `json:"question" form:"question" query:"question"`
}

// AskQuestion forwards a store question to the AI service and relays its answer.
//
// @Summary      Ask a question about a store
// @Description  Resolves the store's access token and forwards the question to the AI service.
// @Description  The AI service's status code and JSON body are returned unchanged.
// @Tags         questions
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request  body      askRequest  true  "store and question"
// @Success      200      {object}  object      "AI service response, relayed as-is"
// @Failure      400      {object}  errorPayload
// @Failure      401      {object}  errorPayload
// @Failure      422      {object}  errorPayload
// @Failure      500      {object}  errorPayload
// @Failure      503      {object}  errorPayload
// @Router       /api/v1/questions [post]
func AskQuestion(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if len(c.Body()) > 0 && parsableBody(c) {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
			}
		}
		if req.StoreID == "" {
			req.StoreID = c.Query("store_id")
		}
		if req.Question == "" {
			req.Question = c.Query("question")
		}

		relay, err := svc.Ask(c.UserContext(), model.Question{StoreID: req.StoreID, Question: req.Question})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrQuestionRequired):
				return writeError(c, fiber.StatusUnprocessableEntity, msgQuestionRequired)
			case errors.Is(err, service.ErrUnauthorized):
				return writeError(c, fiber.StatusUnauthorized, msgUnauthorized)
			case errors.Is(err, service.ErrServiceUnavailable):
				return writeError(c, fiber.StatusServiceUnavailable, msgServiceUnavailable)
			default:
				return writeError(c, fiber.StatusInternalServerError, msgGatewayErrorPrefix+err.Error())
			}
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(relay.StatusCode).Send(relay.Body)
	}
}

// parsableBody reports whether the body is JSON or a form. Other bodies are ignored
// and params come from the query string only.
func parsableBody(c *fiber.Ctx) bool {
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))
	for _, mime := range []string{fiber.MIMEApplicationJSON, fiber.MIMEApplicationForm, fiber.MIMEMultipartForm} {
		if strings.HasPrefix(ctype, mime) {
			return true
		}
	}
	return false
}
