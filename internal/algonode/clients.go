package algonode

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/client/kmd"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"golang.org/x/net/http2"

	"arc59-send-receive-go/internal/models"
)

const (
	algodTokenHeader   = "X-Algo-API-Token"
	indexerTokenHeader = "X-Indexer-API-Token"
)

// NewAlgodClient builds an algod client over the shared HTTP/2 transport.
func NewAlgodClient(network models.NetworkConfig) (*algod.Client, error) {
	transport, err := newTransport()
	if err != nil {
		return nil, fmt.Errorf("unable to create algod transport: %w", err)
	}

	client, err := common.MakeClientWithTransport(
		network.AlgodURL, algodTokenHeader, network.AlgodToken, nil, transport)
	if err != nil {
		return nil, fmt.Errorf("unable to create algod client: %w", err)
	}
	return (*algod.Client)(client), nil
}

// NewIndexerClient builds an indexer client over the shared HTTP/2 transport.
func NewIndexerClient(network models.NetworkConfig) (*indexer.Client, error) {
	transport, err := newTransport()
	if err != nil {
		return nil, fmt.Errorf("unable to create indexer transport: %w", err)
	}

	client, err := common.MakeClientWithTransport(
		network.IndexerURL, indexerTokenHeader, network.IndexerToken, nil, transport)
	if err != nil {
		return nil, fmt.Errorf("unable to create indexer client: %w", err)
	}
	return (*indexer.Client)(client), nil
}

// NewKmdClient builds a client for a local KMD daemon.
func NewKmdClient(url, token string) (kmd.Client, error) {
	client, err := kmd.MakeClient(url, token)
	if err != nil {
		return kmd.Client{}, fmt.Errorf("unable to create kmd client: %w", err)
	}
	return client, nil
}

func newTransport() (*http.Transport, error) {
	tr := &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, err
	}

	return tr, nil
}
