package models

// GraphQLRequest is the POST body of the GraphQL endpoint
type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}
