package wire

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
)

// #region client-struct
// Client calls a remote Protocol service.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}
// #endregion client-struct

// #region constructor
// NewClient connects to a Protocol server at addr.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn wraps an existing connection. Close leaves it open.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}
// #endregion constructor

// #region close
// Close shuts down the connection opened by NewClient.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
// #endregion close

// #region execute
// Execute sends one input line.
func (c *Client) Execute(ctx context.Context, input string) (engine.Response, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ExecuteMethod, wrapperspb.String(input), out); err != nil {
		return engine.Response{}, fmt.Errorf("execute rpc: %w", err)
	}
	var resp engine.Response
	if err := fromStruct(out, &resp); err != nil {
		return engine.Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
// #endregion execute

// #region status
// Status fetches the session summary.
func (c *Client) Status(ctx context.Context) (engine.Summary, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, StatusMethod, &emptypb.Empty{}, out); err != nil {
		return engine.Summary{}, fmt.Errorf("status rpc: %w", err)
	}
	var sum engine.Summary
	if err := fromStruct(out, &sum); err != nil {
		return engine.Summary{}, fmt.Errorf("decode status: %w", err)
	}
	return sum, nil
}
// #endregion status
