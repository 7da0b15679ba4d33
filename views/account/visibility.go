package account

// Dialog names the modal dialogs the account page can show.
type Dialog string

const (
	DialogDelete       Dialog = "delete"
	DialogEdit         Dialog = "edit"
	DialogExport       Dialog = "export"
	DialogFaucet       Dialog = "faucet"
	DialogFund         Dialog = "fund"
	DialogPassword     Dialog = "password"
	DialogTransfer     Dialog = "transfer"
	DialogVerification Dialog = "verification"
)

// dialogOrder fixes which dialog wins when several flags are set. The flags
// themselves stay independent booleans; normal interaction only ever toggles
// one at a time.
var dialogOrder = []Dialog{
	DialogTransfer,
	DialogFund,
	DialogVerification,
	DialogFaucet,
	DialogEdit,
	DialogExport,
	DialogPassword,
	DialogDelete,
}

// Visibility holds one independent open/closed flag per dialog.
type Visibility map[Dialog]bool

func NewVisibility() Visibility {
	return make(Visibility, len(dialogOrder))
}

// Open reports whether the dialog's flag is set.
func (v Visibility) Open(d Dialog) bool {
	return v[d]
}

// Toggle flips exactly the given dialog's flag.
func (v Visibility) Toggle(d Dialog) {
	v[d] = !v[d]
}

// Active returns the dialog to render, the first open flag in fixed order.
func (v Visibility) Active() (Dialog, bool) {
	for _, d := range dialogOrder {
		if v[d] {
			return d, true
		}
	}
	return "", false
}
