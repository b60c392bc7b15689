// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/rpc/handler"
	"github.com/bitmark-inc/logger"
)

const (
	httpsLogName       = "http_rpc"
	minConnectionCount = 1
	requestTimeout     = 10 * time.Second
	maxHeaderBytes     = 1 << 20
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex
	log       *logger.L
	endpoints []endpoint
	tlsConfig *tls.Config
	mux       *http.ServeMux
	servers   []*http.Server
}

// NewHTTPS - HTTPS front end, nil when no listen address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("%s: disabled", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("%s: connection limit: %d too small", httpsLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	endpoints, err := parseEndpoints(configuration.Listen)
	if nil != err {
		log.Errorf("%s: listen: %v  error: %s", httpsLogName, configuration.Listen, err)
		return nil, err
	}

	allow, err := parseAllow(configuration.Allow)
	if nil != err {
		log.Errorf("%s: allow error: %s", httpsLogName, err)
		return nil, err
	}
	hdlr.SetAllow(allow)

	mux := http.NewServeMux()
	mux.HandleFunc("/fastd/rpc", hdlr.RPC)
	mux.HandleFunc("/fastd/details", hdlr.Details)
	mux.HandleFunc("/fastd/connections", hdlr.Connections)
	mux.HandleFunc("/", hdlr.Root)

	cfg := tlsConfig.Clone()
	cfg.NextProtos = []string{"http/1.1"}

	return &httpsListener{
		log:       log,
		endpoints: endpoints,
		tlsConfig: cfg,
		mux:       mux,
	}, nil
}

// parseAllow - path name to list of CIDR networks
func parseAllow(allow map[string][]string) (map[string][]*net.IPNet, error) {
	result := make(map[string][]*net.IPNet, len(allow))
	for path, networks := range allow {
		list := make([]*net.IPNet, 0, len(networks))
		for _, s := range networks {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(s))
			if nil != err {
				return nil, err
			}
			list = append(list, cidr)
		}
		result[path] = list
	}
	return result, nil
}

// Serve - open every endpoint and serve in the background
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for _, e := range h.endpoints {
		h.log.Infof("%s: listen on: %s/%s", httpsLogName, e.network, e.address)
		ln, err := net.Listen(e.network, e.address)
		if nil != err {
			h.log.Errorf("%s: listen error: %s", httpsLogName, err)
			return err
		}

		s := &http.Server{
			Handler:        h.mux,
			ReadTimeout:    requestTimeout,
			WriteTimeout:   requestTimeout,
			MaxHeaderBytes: maxHeaderBytes,
		}
		h.servers = append(h.servers, s)

		go func(s *http.Server, ln net.Listener) {
			err := s.Serve(tls.NewListener(ln, h.tlsConfig))
			if http.ErrServerClosed != err {
				h.log.Errorf("%s: terminated: %s", httpsLogName, err)
			}
		}(s, ln)
	}
	return nil
}

// Close - stop all servers immediately
func (h *httpsListener) Close() error {
	h.Lock()
	defer h.Unlock()

	var first error
	for _, s := range h.servers {
		if err := s.Close(); nil != err && nil == first {
			first = err
		}
	}
	h.servers = nil
	return first
}
