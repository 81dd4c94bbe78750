package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/nano-midea/gateway/internal/graph"
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

// Executor runs one GraphQL operation.
type Executor interface {
	Execute(ctx context.Context, req graph.Request) *graphql.Result
}

// GraphQLHandler serves the GraphQL endpoint
type GraphQLHandler struct {
	executor Executor
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(executor Executor) *GraphQLHandler {
	return &GraphQLHandler{executor: executor}
}

// RegisterGraphQLRoutes registers the GraphQL endpoint
func (h *GraphQLHandler) RegisterGraphQLRoutes(g *echo.Group) {
	g.POST("/graphql", h.Query)
}

// Query executes the posted operation. GraphQL errors are reported in the
// response body with status 200; only an unusable request is a 400.
func (h *GraphQLHandler) Query(c echo.Context) error {
	var req models.GraphQLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	result := h.executor.Execute(c.Request().Context(), graph.Request{
		Query:         req.Query,
		OperationName: req.OperationName,
		Variables:     req.Variables,
	})
	return c.JSON(http.StatusOK, result)
}
