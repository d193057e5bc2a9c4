package primitives

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AccountIdLength is the byte length of a native account identifier.
const AccountIdLength = 32

// AccountId is the blockchain's native account representation. The WASM-style
// VM addresses contracts with it directly; the EVM-style VM requires mapping
// through an AccountMapping.
type AccountId [AccountIdLength]byte

// AccountIdFromBytes decodes an AccountId from its raw byte encoding. The
// input must be exactly AccountIdLength bytes.
func AccountIdFromBytes(b []byte) (AccountId, error) {
	var id AccountId
	if len(b) != AccountIdLength {
		return id, fmt.Errorf("invalid account id length %d, want %d", len(b), AccountIdLength)
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns the raw byte encoding of the account id.
func (a AccountId) Bytes() []byte {
	return a[:]
}

// Hex returns the 0x-prefixed hex encoding of the account id.
func (a AccountId) Hex() string {
	return hexutil.Encode(a[:])
}

func (a AccountId) String() string {
	return a.Hex()
}
