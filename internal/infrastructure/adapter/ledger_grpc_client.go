package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"

	"github.com/Burakyci/finis-bank/internal/domain/valueobject"
	"github.com/Burakyci/finis-bank/pkg/tlsutil"
)

// init registers the JSON codec with the gRPC encoding registry.
func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec is a gRPC codec that uses JSON encoding. It lets the client
// invoke ledger methods without proto-generated types; when generated stubs
// become available the raw Invoke calls can be replaced with typed ones.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

const increaseBalanceMethod = "/finisbank.ledger.v1.LedgerService/IncreaseBalance"

type increaseBalanceReq struct {
	UserID string `json:"user_id"`
	Amount string `json:"amount"`
}

type increaseBalanceResp struct {
	NewBalance string `json:"new_balance"`
}

// GRPCLedgerClient talks to the external ledger service that owns account
// balances. The increase itself is atomic on the ledger side.
type GRPCLedgerClient struct {
	conn *grpc.ClientConn
}

// NewGRPCLedgerClient dials the ledger service. When caFile is empty the
// connection is plaintext, which is only acceptable inside a trusted network.
func NewGRPCLedgerClient(addr, caFile string) (*GRPCLedgerClient, error) {
	var creds credentials.TransportCredentials = insecure.NewCredentials()
	if caFile != "" {
		tlsCreds, err := tlsutil.ClientTLSConfig(caFile, false)
		if err != nil {
			return nil, fmt.Errorf("load ledger TLS credentials: %w", err)
		}
		creds = tlsCreds
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("dial ledger at %s: %w", addr, err)
	}
	return &GRPCLedgerClient{conn: conn}, nil
}

// Close closes the underlying gRPC connection.
func (c *GRPCLedgerClient) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// IncreaseBalance implements port.LedgerClient.
func (c *GRPCLedgerClient) IncreaseBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	req := increaseBalanceReq{UserID: userID, Amount: amount.String()}
	var resp increaseBalanceResp

	err := c.conn.Invoke(ctx, increaseBalanceMethod, &req, &resp,
		grpc.ForceCodecCallOption{Codec: jsonCodec{}},
	)
	if err != nil {
		return decimal.Zero, &valueobject.TransportError{Op: "increase balance", Cause: err}
	}

	newBalance, err := decimal.NewFromString(resp.NewBalance)
	if err != nil {
		return decimal.Zero, &valueobject.TransportError{
			Op:    "increase balance",
			Cause: fmt.Errorf("parse ledger balance %q: %w", resp.NewBalance, err),
		}
	}
	return newBalance, nil
}
