package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/commands/server"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/escrow"
)

// GenInitOptions returns a development genesis state with a single funded
// wallet. The optional arguments are the ticker to issue, IOV by default,
// and the address to fund. Without an address a key is generated and
// printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", ticker)
	}

	var addr string
	if len(args) > 1 {
		addr = args[1]
	} else {
		generated, key, err := server.GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		b32, err := generated.Bech32()
		if err != nil {
			return nil, err
		}
		addr = generated.String()
		fmt.Printf("address %s (%s)\n%s\n", addr, b32, key)
	}

	type wallet struct {
		Address string      `json:"address"`
		Coins   []coin.Coin `json:"coins"`
	}
	type token struct {
		Ticker   string `json:"ticker"`
		Name     string `json:"name"`
		Decimals uint32 `json:"decimals"`
	}
	genesis := struct {
		Currencies []token              `json:"currencies"`
		Cash       []wallet             `json:"cash"`
		Escrow     escrow.Configuration `json:"escrow"`
	}{
		Currencies: []token{{Ticker: ticker, Name: "Main token", Decimals: 9}},
		Cash:       []wallet{{Address: addr, Coins: []coin.Coin{coin.NewCoin(123456789, ticker)}}},
		Escrow:     escrow.Configuration{RefundTarget: escrow.RefundToMaker},
	}
	return json.MarshalIndent(genesis, "", "  ")
}
