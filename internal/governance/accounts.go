package governance

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

var (
	vaultSeed  = []byte("vault")
	escrowSeed = []byte("proposal_escrow")
)

// ParseIdentity normalises a hex address. The zero address is rejected since
// it cannot authenticate.
func ParseIdentity(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.ErrInvalidIdentity
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, errors.ErrInvalidIdentity
	}
	return addr, nil
}

// VaultAccount is the pooled stake account for a token.
func VaultAccount(tokenID string) common.Address {
	return common.BytesToAddress(crypto.Keccak256(vaultSeed, []byte(tokenID)))
}

// EscrowAccount is the account holding a treasury proposal's funds.
func EscrowAccount(number uint64) common.Address {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], number)
	return common.BytesToAddress(crypto.Keccak256(escrowSeed, buf[:]))
}
