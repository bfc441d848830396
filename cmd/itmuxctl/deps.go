package main

import (
	"golang.org/x/crypto/ssh"

	"github.com/regenrek/itmux/internal/clipboard"
	"github.com/regenrek/itmux/internal/connmgr"
	"github.com/regenrek/itmux/internal/hoststore"
	"github.com/regenrek/itmux/internal/keystore"
	"github.com/regenrek/itmux/internal/snapshot"
	"github.com/regenrek/itmux/internal/sshtransport"
)

// dependencies wires the persisted stores, the connection manager, and the
// snapshot view for every subcommand to share.
type dependencies struct {
	hosts *hoststore.Store
	keys  *keystore.Store
	conns *connmgr.Manager
	views snapshot.Source
}

func newDependencies() (*dependencies, error) {
	hosts, err := hoststore.Open()
	if err != nil {
		return nil, err
	}
	keys, err := keystore.Open()
	if err != nil {
		hosts.Close()
		return nil, err
	}
	dialer := sshtransport.NewDialer(ssh.InsecureIgnoreHostKey())
	conns := connmgr.New(hosts, keys, dialer, clipboard.System{})
	return &dependencies{
		hosts: hosts,
		keys:  keys,
		conns: conns,
		views: snapshot.New(hosts, conns),
	}, nil
}

func (d *dependencies) Close() error {
	d.keys.Close()
	d.hosts.Close()
	return nil
}
