package domain

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/platform/id"
)

// InvocationIDKey is the result metadata key carrying the invocation id.
const InvocationIDKey = "invocation_id"

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithInvocation builds a tool result tagged with invocationID.
func CallToolResultWithInvocation(invocationID string) *mcp.CallToolResult {
	result := &mcp.CallToolResult{}
	if invocationID != "" {
		result.Meta = map[string]any{InvocationIDKey: invocationID}
	}
	return result
}

// errorLocale tags the localized message attached to tool error statuses.
const errorLocale = "en-US"

// toolCallError is a coded failure reported as an MCP tool error. Its text
// is "REASON: message (grpc code)" and GRPCStatus exposes the full status,
// ErrorInfo included, to in-process callers.
type toolCallError struct {
	st    *status.Status
	cause error
}

func (e *toolCallError) Error() string {
	reason := e.st.Code().String()
	for _, detail := range e.st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			reason = info.GetReason()
			break
		}
	}
	return fmt.Sprintf("%s: %s (%s)", reason, e.st.Message(), e.st.Code())
}

func (e *toolCallError) Unwrap() error {
	return e.cause
}

// GRPCStatus lets status.FromError and status.Code read the mapped status.
func (e *toolCallError) GRPCStatus() *status.Status {
	return e.st
}

// toolError maps coded errors to their gRPC status so clients can branch on
// the reason without parsing the message. Other errors pass through.
func toolError(err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err
	}
	return &toolCallError{
		st:    status.Convert(appErr.ToGRPCStatus(errorLocale, appErr.Message)),
		cause: err,
	}
}
