package account

// Messages produced by the fetch/export/key collaborators. The data itself
// lands in the shared store; these only drive re-renders and status lines.

// BalanceLoadedMsg signals that a balance load for Address finished and the
// store was updated.
type BalanceLoadedMsg struct {
	Address string
	Err     error
}

// CertificationsLoadedMsg signals that certification data for Address was
// merged into the store.
type CertificationsLoadedMsg struct {
	Address string
}

// ExportedMsg reports a finished export attempt. Path is empty when the
// export failed; the failure went to the error reporter already.
type ExportedMsg struct {
	Path string
}

// FaucetResultMsg reports the outcome of a faucet request.
type FaucetResultMsg struct {
	Address string
	Err     error
}

// VerificationStartedMsg reports the outcome of starting the SMS
// verification flow.
type VerificationStartedMsg struct {
	Address string
	Err     error
}

// PasswordChangedMsg reports the outcome of a key password change.
type PasswordChangedMsg struct {
	Address string
	Err     error
}

// DeletedMsg reports a key deletion. The host removes the account and leaves
// the page when Err is nil.
type DeletedMsg struct {
	Address string
	Err     error
}

// EditedMsg asks the host to persist updated display metadata.
type EditedMsg struct {
	Address string
	Name    string
}

// ForgottenMsg asks the host to drop a hardware account from the local list
// and return to the account list. No key material is touched.
type ForgottenMsg struct {
	Address string
}

type copiedMsg struct{}

type clearStatusMsg struct{}

// refreshTickMsg drives the periodic balance refresh. gen identifies the
// chain that armed the tick; ticks from before a retarget carry a stale gen
// and are dropped instead of re-armed.
type refreshTickMsg struct {
	gen int
}
