package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/cy6erlion/kong-kontrollers/core"
	"github.com/cy6erlion/kong-kontrollers/services"
)

// createAccount handles POST /accounts.
func (a *Adapter) createAccount(c fiber.Ctx) error {
	var input core.AccountCreationInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]string{
			"error": "invalid request body",
		})
	}

	account, err := a.handler.CreateAccount(input)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsClientError(err) {
			status = http.StatusBadRequest
		}
		return c.Status(status).JSON(errorBody(err))
	}

	return c.Status(http.StatusCreated).JSON(account)
}

// login handles POST /login. On success the passport travels back as a
// cookie; the body carries only the confirmation message and account type.
func (a *Adapter) login(c fiber.Ctx) error {
	var input core.AccountLoginInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]string{
			"error": "invalid request body",
		})
	}

	result, err := a.handler.Login(input)
	if err != nil {
		return c.Status(statusForLoginError(err)).JSON(errorBody(err))
	}

	// The issuer owns the cookie policy; translate its attributes verbatim.
	cookie := result.Passport.Cookie
	c.Cookie(&fiber.Cookie{
		Name:     cookie.Name,
		Value:    cookie.Value,
		Path:     cookie.Path,
		Domain:   cookie.Domain,
		Expires:  cookie.Expires,
		Secure:   cookie.Secure,
		HTTPOnly: cookie.HttpOnly,
		SameSite: sameSiteMode(cookie.SameSite),
	})

	return c.Status(http.StatusOK).JSON(result)
}

// publicAccount handles GET /accounts/:username.
func (a *Adapter) publicAccount(c fiber.Ctx) error {
	account, err := a.handler.PublicByUsername(c.Params("username"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrAccountNotFound) {
			status = http.StatusNotFound
		}
		return c.Status(status).JSON(errorBody(err))
	}

	return c.Status(http.StatusOK).JSON(account)
}

func sameSiteMode(mode http.SameSite) string {
	switch mode {
	case http.SameSiteStrictMode:
		return fiber.CookieSameSiteStrictMode
	case http.SameSiteNoneMode:
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteLaxMode
	}
}

func statusForLoginError(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidUsername),
		errors.Is(err, core.ErrInvalidPassword):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrWrongPassword),
		errors.Is(err, core.ErrInvalidPassport):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

// clientSentinels are the only errors whose text may reach a caller.
// Everything else is reported as an opaque internal error.
var clientSentinels = []error{
	core.ErrInvalidUsername,
	core.ErrInvalidPassword,
	core.ErrInvalidEmail,
	core.ErrDuplicateAccount,
	core.ErrFieldDecode,
	core.ErrAccountNotFound,
	core.ErrWrongPassword,
	core.ErrInvalidPassport,
}

func errorBody(err error) map[string]string {
	for _, sentinel := range clientSentinels {
		if errors.Is(err, sentinel) {
			return map[string]string{"error": sentinel.Error()}
		}
	}
	return map[string]string{"error": "internal server error"}
}
