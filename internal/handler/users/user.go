package users

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"quotehub/internal/api"
	"quotehub/internal/database"
	"quotehub/internal/model"
	"quotehub/internal/service"
	"quotehub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword    = service.HashPassword
	createUser      = store.CreateUser
	getUserByID     = store.GetUserByID
	getUserByEmail  = store.GetUserByEmail
	updateUser      = store.UpdateUser
	deleteUser      = store.DeleteUser
	listUsers       = store.ListUsers
	filterUsers     = store.FilterUsers
	updateUserQuote = store.UpdateUserQuote
	clearUserQuote  = store.ClearUserQuote
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

func toResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Quotes: u.Quotes,
	}
}

func toResponses(us []model.User) []api.UserResponse {
	resp := make([]api.UserResponse, 0, len(us))
	for i := range us {
		resp = append(resp, toResponse(&us[i]))
	}
	return resp
}

// @Summary     Create a new user
// @Description Registers a new user; the email must not already be taken (lowercased before the check)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user body api.CreateUserRequest true "user to create"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		// Uniqueness pre-check. The unique index on email still backstops
		// concurrent creates that race past this lookup.
		if _, err := getUserByEmail(c.Request().Context(), db, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already registered"})
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			Quotes:       req.Quotes,
			PasswordHash: hash,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       user_id path int true "user ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description Partial update: fields absent from the body keep their stored value
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path int true "user ID"
// @Param       user body api.UpdateUserRequest true "fields to update"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		upd := store.UserUpdate{
			Name:   req.Name,
			Quotes: req.Quotes,
		}
		if req.Email != nil {
			email := strings.ToLower(*req.Email)
			if _, err := mail.ParseAddress(email); err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
			}
			upd.Email = &email
		}
		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
			}
			upd.PasswordHash = &hash
		}

		user, err := updateUser(c.Request().Context(), db, id, upd)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description Hard delete; responds with the row as it was before deletion
// @Tags        users
// @Produce     json
// @Param       user_id path int true "user ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := deleteUser(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     List users
// @Description Paginated listing ordered by an allow-listed column; unknown sort_by falls back to id
// @Tags        users
// @Produce     json
// @Param       skip       query int    false "rows to skip"          default(0)
// @Param       limit      query int    false "maximum rows returned" default(10)
// @Param       sort_by    query string false "id | name | email | quotes"
// @Param       sort_order query string false "asc | desc"
// @Success     200 {array}  api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		skip := defaultSkip
		if v := c.QueryParam("skip"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid skip"})
			}
			skip = n
		}
		limit := defaultLimit
		if v := c.QueryParam("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid limit"})
			}
			limit = n
		}

		users, err := listUsers(c.Request().Context(), db, skip, limit,
			c.QueryParam("sort_by"), c.QueryParam("sort_order"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponses(users))
	}
}

// @Summary     Filter users
// @Description Conjunction of optional predicates: substring match on name and quotes, prefix match on name; all case-insensitive
// @Tags        users
// @Produce     json
// @Param       name       query string false "substring of name"
// @Param       quote      query string false "substring of quotes"
// @Param       alphabet   query string false "prefix of name"
// @Param       sort_by    query string false "id | name | email | quotes"
// @Param       sort_order query string false "asc | desc"
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/filter [get]
func FilterUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := filterUsers(c.Request().Context(), db,
			c.QueryParam("name"),
			c.QueryParam("quote"),
			c.QueryParam("alphabet"),
			c.QueryParam("sort_by"),
			c.QueryParam("sort_order"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponses(users))
	}
}

// @Summary     Set a user's quote
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path int true "user ID"
// @Param       quote body api.UpdateQuoteRequest true "quote to set"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id}/quotes [put]
func UpdateUserQuoteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateQuoteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := updateUserQuote(c.Request().Context(), db, id, req.Quote)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Clear a user's quote
// @Tags        users
// @Produce     json
// @Param       user_id path int true "user ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id}/quotes [delete]
func DeleteUserQuoteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := clearUserQuote(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}
