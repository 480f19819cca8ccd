package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"org-calendar-api/internal/auth"
	"org-calendar-api/internal/model"
)

// APIGateway serves the calendar feed behind an API Gateway proxy
// integration, with the same viewer rules as the HTTP endpoint.
func (h *Handler) APIGateway(secret string) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		q := url.Values{}
		for k, v := range req.QueryStringParameters {
			q.Set(k, v)
		}
		for k, vs := range req.MultiValueQueryStringParameters {
			q[k] = vs
		}

		viewer := ""
		if raw := auth.BearerToken(header(req.Headers, "Authorization")); raw != "" {
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				return gatewayJSON(http.StatusUnauthorized, map[string]string{"message": "bad token"})
			}
			viewer = model.CanonicalID(claims.UserID)
		}

		code, body := h.Feed(ctx, q, viewer)
		return gatewayJSON(code, body)
	}
}

// header looks name up case-insensitively; API Gateway passes headers as
// the client sent them.
func header(hs map[string]string, name string) string {
	for k, v := range hs {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func gatewayJSON(code int, body any) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}, nil
}
