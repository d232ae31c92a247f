package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	eosclient "github.com/nspcc-dev/eos-pingdemo/pkg/eos/client"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// well-known development key of EOSIO local networks
const devKey = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"

func TestNew(t *testing.T) {
	ctx := context.Background()
	l := zaptest.NewLogger(t)

	for _, tc := range []struct {
		name string
		prm  eosclient.Prm
	}{
		{name: "no endpoint", prm: eosclient.Prm{Key: devKey, Logger: l}},
		{name: "no key", prm: eosclient.Prm{Endpoint: "http://127.0.0.1:8888", Logger: l}},
		{name: "no logger", prm: eosclient.Prm{Endpoint: "http://127.0.0.1:8888", Key: devKey}},
		{name: "invalid key", prm: eosclient.Prm{Endpoint: "http://127.0.0.1:8888", Key: "private_key", Logger: l}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eosclient.New(ctx, tc.prm)
			require.Error(t, err)
		})
	}

	c, err := eosclient.New(ctx, eosclient.Prm{
		Endpoint: "http://127.0.0.1:8888",
		Key:      devKey,
		Logger:   l,
	})
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestClient_Ping(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":500,"message":"Internal Service Error","error":{"code":3090003,"name":"unsatisfied_authorization","what":"Provided keys, permissions, and delays do not satisfy declared authorizations","details":[]}}`))
	}))
	defer srv.Close()

	c, err := eosclient.New(context.Background(), eosclient.Prm{
		Endpoint: srv.URL,
		Key:      devKey,
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	err = c.Ping(context.Background(), widget.Target{
		Contract:      "ping.ctr",
		Actor:         "tester",
		Authorization: []string{"tester"},
	})
	require.Error(t, err)
	require.Positive(t, hits.Load())

	t.Run("invalid target", func(t *testing.T) {
		before := hits.Load()

		err := c.Ping(context.Background(), widget.Target{Contract: "ping.ctr", Actor: "tester"})
		require.Error(t, err)
		require.Equal(t, before, hits.Load())
	})
}

func TestClient_Info(t *testing.T) {
	const chainID = "cf057bbfb72640471fd910bcb67639c22df9f92470936cddc1ade0e2f2e7dc4f"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chain/get_info" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"server_version": "0f6695cb",
			"chain_id": "` + chainID + `",
			"head_block_num": 1234,
			"last_irreversible_block_num": 1200
		}`))
	}))
	defer srv.Close()

	c, err := eosclient.New(context.Background(), eosclient.Prm{
		Endpoint: srv.URL,
		Key:      devKey,
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	info, err := c.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, eosclient.Info{
		ChainID:       chainID,
		ServerVersion: "0f6695cb",
		HeadBlockNum:  1234,
		LIBNum:        1200,
	}, info)
}
