package main

import (
	"wallet-account-tui/rpc"
	"wallet-account-tui/store"
)

// -------------------- TEA MESSAGES --------------------

// rpcConnectedMsg contains the result of the RPC connection attempt.
type rpcConnectedMsg struct {
	client *rpc.Client
	err    error
}

// networkIDMsg carries the connected network's identifier.
type networkIDMsg struct {
	id  string
	err error
}

// storeEventMsg wraps a change notification from the shared store.
type storeEventMsg struct {
	event store.Event
}

// logInitMsg signals that the log viewport should be initialized.
type logInitMsg struct{}
