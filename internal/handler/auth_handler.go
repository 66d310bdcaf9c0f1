package handler

import (
	"errors"
	"fmt"
	"net/http"

	"tasktracker/internal/auth"
	"tasktracker/internal/flash"
	"tasktracker/internal/form"
	"tasktracker/internal/middleware"
	"tasktracker/internal/model"
	"tasktracker/internal/render"
	"tasktracker/internal/repository"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type AuthHandler struct {
	users    repository.UserRepositoryInterface
	tokens   *auth.TokenManager
	sessions session.Store
	cookie   middleware.SessionCookie
	render   render.Renderer
	log      *zap.Logger
}

func NewAuthHandler(
	users repository.UserRepositoryInterface,
	tokens *auth.TokenManager,
	sessions session.Store,
	cookie middleware.SessionCookie,
	renderer render.Renderer,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		cookie:   cookie,
		render:   renderer,
		log:      log,
	}
}

func registerState(in form.RegistrationInput, errs form.Errors) gin.H {
	// passwords are never echoed back
	in.Password1, in.Password2 = "", ""
	return gin.H{"form": FormState{Fields: form.RegistrationFields, Values: in, Errors: errs}}
}

// RegisterForm godoc
// @Summary      Registration page
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /register/ [get]
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.render.Page(c, http.StatusOK, render.PageRegister, registerState(form.RegistrationInput{}, form.Errors{}))
}

// Register godoc
// @Summary      Create an account
// @Description  Creates the user and an empty profile, then sends the visitor to the login page.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username   formData  string  true  "Username"
// @Param        first_name formData  string  true  "First name"
// @Param        last_name  formData  string  true  "Last name"
// @Param        email      formData  string  true  "Email"
// @Param        password1  formData  string  true  "Password"
// @Param        password2  formData  string  true  "Password confirmation"
// @Success      302
// @Success      200  {object}  map[string]interface{}  "form with errors"
// @Router       /register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var in form.RegistrationInput
	if err := c.ShouldBind(&in); err != nil {
		errs := form.Errors{}
		errs.Add(form.NonFieldErrors, "Invalid request")
		h.render.Page(c, http.StatusBadRequest, render.PageRegister, registerState(in, errs))
		return
	}

	in, errs := form.ValidateRegistration(in)
	if !errs.Any() {
		existing, err := h.users.FindByUsername(c.Request.Context(), in.Username)
		if err != nil {
			internalError(c, h.log, "Failed to check username", err)
			return
		}
		if existing != nil {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if errs.Any() {
		h.render.Page(c, http.StatusOK, render.PageRegister, registerState(in, errs))
		return
	}

	hash, err := auth.HashPassword(in.Password1)
	if err != nil {
		internalError(c, h.log, "Failed to hash password", err)
		return
	}

	user := &model.User{
		Username:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: hash,
	}
	if err := h.users.CreateWithProfile(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			errs.Add("username", "A user with that username already exists.")
			h.render.Page(c, http.StatusOK, render.PageRegister, registerState(in, errs))
			return
		}
		internalError(c, h.log, "Failed to create account", err)
		return
	}

	h.log.Info("account created", zap.Stringer("user_id", user.ID), zap.String("username", user.Username))
	flash.Add(c, flash.Success, "Account created successfully! Please log in.")
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func loginState(in form.LoginInput, errs form.Errors, next string) gin.H {
	in.Password = ""
	return gin.H{
		"form": FormState{Fields: form.LoginFields, Values: in, Errors: errs},
		"next": next,
	}
}

// LoginForm godoc
// @Summary      Login page
// @Tags         Auth
// @Produce      json
// @Param        next  query  string  false  "Where to go after signing in"
// @Success      200  {object}  map[string]interface{}
// @Router       /login/ [get]
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.render.Page(c, http.StatusOK, render.PageLogin, loginState(form.LoginInput{}, form.Errors{}, c.Query("next")))
}

// Login godoc
// @Summary      Sign in
// @Description  Starts a session and sets the session cookie.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true   "Username"
// @Param        password  formData  string  true   "Password"
// @Param        next      formData  string  false  "Local path to continue to"
// @Success      302
// @Success      200  {object}  map[string]interface{}  "form with errors"
// @Router       /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	next := c.DefaultPostForm("next", c.Query("next"))

	var in form.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := form.Errors{}
		errs.Add(form.NonFieldErrors, "Invalid request")
		h.render.Page(c, http.StatusBadRequest, render.PageLogin, loginState(in, errs, next))
		return
	}

	in, errs := form.ValidateLogin(in)
	if errs.Any() {
		h.render.Page(c, http.StatusOK, render.PageLogin, loginState(in, errs, next))
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), in.Username)
	if err != nil {
		internalError(c, h.log, "Failed to load user", err)
		return
	}

	// The same message for an unknown user and a wrong password, and the
	// same bcrypt cost on both paths.
	valid := false
	if user == nil {
		auth.CheckPasswordAgainstDummy(in.Password)
	} else {
		valid = auth.CheckPassword(user.HashedPassword, in.Password)
	}
	if !valid {
		errs.Add(form.NonFieldErrors, invalidLogin)
		h.render.Page(c, http.StatusOK, render.PageLogin, loginState(in, errs, next))
		return
	}

	token, claims, err := h.tokens.Generate(user.ID)
	if err != nil {
		internalError(c, h.log, "Failed to start session", err)
		return
	}
	if err := h.sessions.Save(c.Request.Context(), claims.SessionID, user.ID, h.tokens.TTL()); err != nil {
		internalError(c, h.log, "Failed to start session", err)
		return
	}
	h.cookie.Set(c, token, h.tokens.TTL())

	h.log.Info("user logged in", zap.Stringer("user_id", user.ID), zap.String("sid", claims.SessionID))
	flash.Add(c, flash.Success, fmt.Sprintf("Welcome back, %s!", user.DisplayName()))
	c.Redirect(http.StatusFound, middleware.SafeNext(next))
}

// Logout godoc
// @Summary      Sign out
// @Tags         Auth
// @Success      302
// @Router       /logout/ [get]
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.SessionClaims(c); ok {
		if err := h.sessions.Revoke(c.Request.Context(), claims.SessionID); err != nil {
			internalError(c, h.log, "Failed to end session", err)
			return
		}
		h.log.Info("user logged out", zap.Stringer("user_id", claims.UserID), zap.String("sid", claims.SessionID))
	}
	h.cookie.Clear(c)
	flash.Add(c, flash.Info, "You have been logged out.")
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
