// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS key pairs for the RPC listeners
package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/logger"
)

const validity = 10 * 365 * 24 * time.Hour

// Get - verify a PEM certificate and key and return the TLS configuration
// with the certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Load - Get from a pair of PEM files
func Load(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := os.ReadFile(certificateFileName)
	if nil != err {
		return nil, [32]byte{}, err
	}
	key, err := os.ReadFile(keyFileName)
	if nil != err {
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// Generate - PEM encoded self signed certificate and key
func Generate(name string, extraHosts []string) ([]byte, []byte, error) {
	org := "fastd self signed cert for: " + name
	return certgen.NewTLSCertPair(org, time.Now().Add(validity), false, extraHosts)
}

// MakeSelfSigned - write a new self signed pair, never overwriting
func MakeSelfSigned(name, certificateFileName, keyFileName string, extraHosts []string) error {
	if fileExists(certificateFileName) {
		return fault.ErrCertificateFileAlreadyExists
	}
	if fileExists(keyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	certificate, key, err := Generate(name, extraHosts)
	if nil != err {
		return err
	}
	if err := os.WriteFile(certificateFileName, certificate, 0666); nil != err {
		return err
	}
	if err := os.WriteFile(keyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in fastd-local-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
