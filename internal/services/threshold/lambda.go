package threshold

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGateway adapts Handle to an API Gateway proxy integration.
// The returned error is always nil: failures are reported in the response.
func (h *Handler) HandleAPIGateway(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.Handle(ctx, Request{
		Body:            ev.Body,
		IsBase64Encoded: ev.IsBase64Encoded,
		RequestID:       ev.RequestContext.RequestID,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       resp.Body,
	}, nil
}
