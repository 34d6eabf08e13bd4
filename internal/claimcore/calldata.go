package claimcore

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Distributor ABI: cumulative merkle drop keyed by (index, account).
const dropABIJSON = `[
 {"inputs":[{"internalType":"uint256","name":"index","type":"uint256"},{"internalType":"address","name":"account","type":"address"},{"internalType":"uint256","name":"cumulativeAmount","type":"uint256"},{"internalType":"bytes32[]","name":"merkleProof","type":"bytes32[]"}],"name":"claim","outputs":[],"stateMutability":"nonpayable","type":"function"},
 {"inputs":[{"internalType":"uint256","name":"index","type":"uint256"},{"internalType":"address","name":"account","type":"address"}],"name":"isClaimed","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},
 {"inputs":[{"internalType":"address","name":"user","type":"address"}],"name":"userClaims","outputs":[{"internalType":"uint256","name":"lastClaimedIndex","type":"uint256"},{"internalType":"uint256","name":"cumulativeAmount","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var dropABI abi.ABI

func init() {
	ab, err := abi.JSON(strings.NewReader(dropABIJSON))
	if err != nil {
		panic("drop abi: " + err.Error())
	}
	dropABI = ab
}

// EncodeClaim packs claim(index, account, cumulativeAmount, merkleProof).
func EncodeClaim(index *big.Int, account common.Address, amount *big.Int, proof []common.Hash) ([]byte, error) {
	p := make([][32]byte, len(proof))
	for i, h := range proof {
		p[i] = h
	}
	return dropABI.Pack("claim", index, account, amount, p)
}

// EncodeIsClaimed packs isClaimed(index, account).
func EncodeIsClaimed(index *big.Int, account common.Address) ([]byte, error) {
	return dropABI.Pack("isClaimed", index, account)
}

// DecodeIsClaimed unpacks the bool result of isClaimed.
func DecodeIsClaimed(ret []byte) (bool, error) {
	out, err := dropABI.Unpack("isClaimed", ret)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// EncodeUserClaims packs userClaims(user).
func EncodeUserClaims(user common.Address) ([]byte, error) {
	return dropABI.Pack("userClaims", user)
}

// DecodeUserClaims unpacks (lastClaimedIndex, cumulativeAmount).
func DecodeUserClaims(ret []byte) (*big.Int, *big.Int, error) {
	out, err := dropABI.Unpack("userClaims", ret)
	if err != nil {
		return nil, nil, err
	}
	return out[0].(*big.Int), out[1].(*big.Int), nil
}

// ERC-20 selectors, packed by hand: the token surface is three view calls
// and transfer, not worth a full ABI object.
var (
	selTransfer  = common.FromHex("0xa9059cbb") // transfer(address,uint256)
	selBalanceOf = common.FromHex("0x70a08231") // balanceOf(address)
	selDecimals  = common.FromHex("0x313ce567") // decimals()
	selSymbol    = common.FromHex("0x95d89b41") // symbol()
)

// EncodeERC20Transfer packs transfer(to, amount).
func EncodeERC20Transfer(to common.Address, amount *big.Int) []byte {
	arg1 := common.LeftPadBytes(to.Bytes(), 32)
	arg2 := common.LeftPadBytes(amount.Bytes(), 32)
	return append(append(append([]byte{}, selTransfer...), arg1...), arg2...)
}

// EncodeBalanceOf packs balanceOf(owner).
func EncodeBalanceOf(owner common.Address) []byte {
	return append(append([]byte{}, selBalanceOf...), common.LeftPadBytes(owner.Bytes(), 32)...)
}

func encodeDecimals() []byte { return append([]byte{}, selDecimals...) }
func encodeSymbol() []byte   { return append([]byte{}, selSymbol...) }
