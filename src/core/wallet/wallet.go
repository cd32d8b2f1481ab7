package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const transferGasLimit = 21000

// Client sends native-token payouts from the platform wallet. Amounts are
// denominated in whole tokens and converted to wei internally.
type Client struct {
	eth     *ethclient.Client
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
}

// New dials the RPC endpoint and loads the signing key.
func New(ctx context.Context, rpcURL, privateKeyHex string) (*Client, error) {
	if rpcURL == "" || privateKeyHex == "" {
		return nil, errors.New("wallet RPC URL and private key are required")
	}

	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial wallet RPC: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid wallet private key: %w", err)
	}

	chainID, err := eth.NetworkID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID: %w", err)
	}

	return &Client{
		eth:     eth,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}, nil
}

// Transfer sends amount tokens to the recipient address and returns the
// transaction hash. The platform wallet must cover the amount plus fees.
func (c *Client) Transfer(ctx context.Context, amount float64, to string) (string, error) {
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address: %s", to)
	}
	if amount <= 0 {
		return "", fmt.Errorf("invalid transfer amount: %f", amount)
	}

	value := toWei(amount)
	recipient := common.HexToAddress(to)

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return "", fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch gas price: %w", err)
	}

	balance, err := c.eth.BalanceAt(ctx, c.from, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch wallet balance: %w", err)
	}
	cost := new(big.Int).Add(value, new(big.Int).Mul(gasPrice, big.NewInt(transferGasLimit)))
	if balance.Cmp(cost) < 0 {
		return "", errors.New("insufficient funds for transfer and fees")
	}

	tx := ethtypes.NewTransaction(nonce, recipient, value, transferGasLimit, gasPrice, nil)
	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(c.chainID), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signed.Hash().Hex(), nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	if c != nil && c.eth != nil {
		c.eth.Close()
	}
}

// toWei converts a token amount to wei, truncating below one wei.
func toWei(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(amount), big.NewFloat(1e18)).Int(nil)
	return wei
}
