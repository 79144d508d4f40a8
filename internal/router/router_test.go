package router

import (
	"net/http"
	"testing"

	"quotehub/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{})

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /ping",
		http.MethodPost + " /users",
		http.MethodGet + " /users",
		http.MethodGet + " /users/filter",
		http.MethodGet + " /users/:user_id",
		http.MethodPut + " /users/:user_id",
		http.MethodDelete + " /users/:user_id",
		http.MethodPut + " /users/:user_id/quotes",
		http.MethodDelete + " /users/:user_id/quotes",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}
