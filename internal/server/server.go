// Package server exposes the calculator as an MCP tool server.
//
// Each tool call builds its own calc.Calculator, so concurrent calls share
// nothing but the read-only operation registry.
package server

import (
	"context"
	"fmt"
	"strconv"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/githubnext/stratcalc/internal/calc"
	"github.com/githubnext/stratcalc/internal/logger"
)

var logServer = logger.New("server:mcp")

// ImplementationName is reported to MCP clients during initialization
const ImplementationName = "stratcalc"

// CalculateInput is the argument object of the calculate tool
type CalculateInput struct {
	Operation string `json:"operation" jsonschema:"operation to apply: sum, sub, mult or div (case-insensitive)"`
	First     int64  `json:"first" jsonschema:"first operand"`
	Second    int64  `json:"second" jsonschema:"second operand"`
}

// CalculateOutput is the structured result of the calculate tool
type CalculateOutput struct {
	Operation string `json:"operation" jsonschema:"canonical name of the applied operation"`
	Result    int64  `json:"result" jsonschema:"integer result; division truncates toward zero"`
}

// ListOperationsOutput is the structured result of the list_operations tool
type ListOperationsOutput struct {
	Operations []string `json:"operations" jsonschema:"supported operation names"`
}

// Server wraps an SDK server with the calculator tools registered
type Server struct {
	server   *sdk.Server
	registry *calc.Registry
}

// New creates an MCP server reporting the given version
func New(version string) *Server {
	s := &Server{
		server: sdk.NewServer(&sdk.Implementation{
			Name:    ImplementationName,
			Version: version,
		}, nil),
		registry: calc.NewDefaultRegistry(),
	}

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "calculate",
		Description: "Apply one integer operation (sum, sub, mult, div) to two operands",
	}, s.handleCalculate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "list_operations",
		Description: "List the supported operation names",
	}, s.handleListOperations)

	logServer.Printf("MCP server created with operations %v", s.registry.Info())
	return s
}

// Run serves on transport until the client disconnects or ctx is cancelled
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	logger.LogInfo("mcp", "Starting MCP server")
	return s.server.Run(ctx, transport)
}

// Connect starts a session on transport without blocking
func (s *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

func (s *Server) handleCalculate(ctx context.Context, req *sdk.CallToolRequest, in CalculateInput) (*sdk.CallToolResult, CalculateOutput, error) {
	logger.LogInfo("mcp", "calculate request: operation=%q first=%d second=%d", in.Operation, in.First, in.Second)

	calculator, err := calc.NewWithRegistry(in.Operation, s.registry)
	if err != nil {
		logger.LogWarn("mcp", "calculate rejected: %v", err)
		return nil, CalculateOutput{}, fmt.Errorf("invalid operation %q: expected one of %v", in.Operation, calc.Tokens())
	}

	result, err := calculator.Calculate(in.First, in.Second)
	logger.LogCalculationJSONL("mcp", calculator.Kind().String(), in.First, in.Second, result, err)
	if err != nil {
		logger.LogError("mcp", "calculate failed: %v", err)
		return nil, CalculateOutput{}, err
	}

	logServer.Printf("%s(%d, %d) = %d", calculator.Kind(), in.First, in.Second, result)
	return &sdk.CallToolResult{
		Content: []sdk.Content{
			&sdk.TextContent{Text: strconv.FormatInt(result, 10)},
		},
	}, CalculateOutput{Operation: calculator.Kind().String(), Result: result}, nil
}

func (s *Server) handleListOperations(ctx context.Context, req *sdk.CallToolRequest, _ struct{}) (*sdk.CallToolResult, ListOperationsOutput, error) {
	kinds := s.registry.Kinds()
	ops := make([]string, 0, len(kinds))
	for _, k := range kinds {
		ops = append(ops, k.String())
	}
	return nil, ListOperationsOutput{Operations: ops}, nil
}
