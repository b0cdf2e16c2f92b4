package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicenotation/internal/services/mcp/domain"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

const mcpNotationToolsModuleName = "notation-tools"

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.RollNotationInput, domain.RollNotationResult](),
	newMCPToolRegistrar[domain.ParseNotationInput, domain.ParseNotationResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(cfg Config) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpNotationToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerNotationTools(registrar, cfg.SeedFunc)
			},
		},
	}
}

func registerNotationTools(registrar mcpRegistrationTarget, seedFunc func() (int64, error)) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.RollNotationTool(), handler: domain.RollNotationHandler(seedFunc)},
		{tool: domain.ParseNotationTool(), handler: domain.ParseNotationHandler()},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
