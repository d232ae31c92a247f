package client

import (
	"context"
	"errors"
	"fmt"

	eos "github.com/eoscanada/eos-go"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"go.uber.org/zap"
)

// Prm groups the required parameters of the Client's constructor.
type Prm struct {
	// HTTP endpoint of the nodeos chain API.
	Endpoint string

	// Private key in WIF, used to sign ping transactions.
	Key string

	// Must not be nil.
	Logger *zap.Logger
}

// Client is an eos-go wrapper that provides ping invocation interface.
//
// Working client must be created via constructor New.
type Client struct {
	log *zap.Logger
	api *eos.API
}

// Info is a short description of the remote chain.
type Info struct {
	ChainID       string
	ServerVersion string
	HeadBlockNum  uint32
	LIBNum        uint32
}

var (
	errNoEndpoint = errors.New("eos/client: endpoint was not provided to the constructor")

	errNoKey = errors.New("eos/client: private key was not provided to the constructor")

	errNilLogger = errors.New("eos/client: logger was not provided to the constructor")
)

// New creates Client bound to the endpoint. Key is imported into in-memory
// key bag which signs all transactions sent by the Client.
func New(ctx context.Context, prm Prm) (*Client, error) {
	switch {
	case prm.Endpoint == "":
		return nil, errNoEndpoint
	case prm.Key == "":
		return nil, errNoKey
	case prm.Logger == nil:
		return nil, errNilLogger
	}

	keyBag := eos.NewKeyBag()

	err := keyBag.ImportPrivateKey(ctx, prm.Key)
	if err != nil {
		return nil, fmt.Errorf("could not import private key: %w", err)
	}

	api := eos.New(prm.Endpoint)
	api.SetSigner(keyBag)

	return &Client{
		log: prm.Logger,
		api: api,
	}, nil
}

// Ping pushes ping action of the target contract signed by the target
// authorization.
//
// Any error (connection, authorization, contract assertion) is returned as is
// wrapped with the call context.
func (c *Client) Ping(ctx context.Context, t widget.Target) error {
	act, err := PingAction(t)
	if err != nil {
		return err
	}

	resp, err := c.api.SignPushActions(ctx, act)
	if err != nil {
		return fmt.Errorf("could not push %s action of %s: %w", methodPing, t.Contract, err)
	}

	c.log.Debug("eos client invoke",
		zap.String("contract", t.Contract),
		zap.String("method", methodPing),
		zap.String("tx_id", resp.TransactionID),
		zap.Uint32("block_num", resp.BlockNum),
	)

	return nil
}

// Info requests current chain state from the endpoint.
func (c *Client) Info(ctx context.Context) (Info, error) {
	resp, err := c.api.GetInfo(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("could not get chain info: %w", err)
	}

	return Info{
		ChainID:       resp.ChainID.String(),
		ServerVersion: resp.ServerVersion,
		HeadBlockNum:  resp.HeadBlockNum,
		LIBNum:        resp.LastIrreversibleBlockNum,
	}, nil
}
