package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/mediaxis/internal/common"
	"github.com/dmitrijs2005/mediaxis/internal/identifier"
	"github.com/dmitrijs2005/mediaxis/internal/server/services"
)

func (s *Server) registerRoutes() {
	e := s.echo
	e.GET("/", s.Health)
	e.POST("/signup", s.Signup)
	e.POST("/login", s.Login)
	e.POST("/forgot_password", s.ForgotPassword)
	e.GET("/reset_password/:token", s.ResetPasswordForm)
	e.POST("/update_password", s.UpdatePassword)
	e.GET("/test_db", s.TestDB)
}

type messageResponse struct {
	Message string `json:"message"`
}

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// loginRequest accepts the identifier under "email" for compatibility with
// existing clients, or under "identifier".
type loginRequest struct {
	Email      string `json:"email"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

type forgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

type otpResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp"`
}

type updatePasswordRequest struct {
	Token       string `json:"token" form:"token"`
	NewPassword string `json:"new_password" form:"new_password"`
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{"Missing required fields"})
	}

	_, err := s.accounts.Register(ctx, services.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	switch {
	case err == nil:
		s.metrics.event(eventSignup)
		return c.JSON(http.StatusOK, messageResponse{"Signup successful"})
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, messageResponse{"Missing required fields"})
	case errors.Is(err, common.ErrorAlreadyExists):
		return c.JSON(http.StatusBadRequest, messageResponse{"User already exists"})
	default:
		s.logger.Error(ctx, "signup failed", "error", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{"Server error"})
	}
}

func (s *Server) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{"Missing fields"})
	}
	id := req.Identifier
	if id == "" {
		id = req.Email
	}

	view, err := s.accounts.Authenticate(ctx, id, req.Password)
	switch {
	case err == nil:
		s.metrics.event(eventLoginSucceeded)
		return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", Name: view.DisplayName})
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, messageResponse{"Missing fields"})
	case errors.Is(err, common.ErrorInvalidCredentials):
		s.metrics.event(eventLoginFailed)
		return c.JSON(http.StatusUnauthorized, messageResponse{"Invalid credentials"})
	default:
		s.logger.Error(ctx, "login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{"Server error"})
	}
}

func (s *Server) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{"Email or phone required"})
	}

	res, err := s.accounts.RequestReset(ctx, req.Identifier)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, messageResponse{"Email or phone required"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{"User not found"})
	default:
		s.logger.Error(ctx, "password reset request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{"Server error"})
	}

	if res.Kind == identifier.KindPhone {
		s.metrics.event(eventOTPIssued)
		return c.JSON(http.StatusOK, otpResponse{Message: "OTP sent to " + res.Destination, OTP: res.OTP})
	}

	s.metrics.event(eventResetIssued)
	return c.JSON(http.StatusOK, messageResponse{"Password reset email sent to " + res.Destination})
}

func (s *Server) ResetPasswordForm(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")

	ok, err := s.accounts.ValidateResetToken(ctx, token)
	if err != nil {
		s.logger.Error(ctx, "reset token lookup failed", "error", err)
		return c.Render(http.StatusInternalServerError, pageMessage, "Something went wrong. Please try again later.")
	}
	if !ok {
		return c.Render(http.StatusOK, pageMessage, "Invalid or expired password reset link.")
	}

	return c.Render(http.StatusOK, pageResetForm, token)
}

func (s *Server) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, pageMessage, "Missing data.")
	}

	err := s.accounts.ConsumeReset(ctx, req.Token, req.NewPassword)
	switch {
	case err == nil:
		s.metrics.event(eventResetCompleted)
		return c.Render(http.StatusOK, pageMessage, "Password updated successfully! You can now log in again.")
	case errors.Is(err, common.ErrorValidation):
		return c.Render(http.StatusBadRequest, pageMessage, "Missing data.")
	case errors.Is(err, common.ErrorNotFound):
		return c.Render(http.StatusNotFound, pageMessage, "Invalid or expired token.")
	default:
		s.logger.Error(ctx, "password update failed", "error", err)
		return c.Render(http.StatusInternalServerError, pageMessage, "Something went wrong. Please try again later.")
	}
}

func (s *Server) TestDB(c echo.Context) error {
	ctx := c.Request().Context()

	tables, err := s.accounts.ListCollections(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing tables failed", "error", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{"Server error"})
	}

	return c.JSON(http.StatusOK, map[string][]string{"tables": tables})
}
