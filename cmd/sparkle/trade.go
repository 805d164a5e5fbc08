package main

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

// Prices travel as integers in the smallest payment unit, a thousandth of a
// base unit. The CLI accepts and renders base units for convenience.
var priceScale = decimal.NewFromInt(1000)

var createtrade = cli.Command{
	Name:  "create",
	Usage: "open a new trade for an asset",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "id of the asset on sale",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "seller-node",
			Usage:    "id of the seller's payment endpoint",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "buyer-node",
			Usage: "id of the buyer's payment endpoint, if already known",
		},
		&cli.StringFlag{
			Name:     "price",
			Usage:    "price in base units, eg. 1.5",
			Required: true,
		},
		&cli.UintFlag{
			Name:  "lock-timeout",
			Usage: "hashed-time-lock timeout in blocks",
		},
	},
	Action: createTradeAction,
}

var submitseller = cli.Command{
	Name:      "seller",
	Usage:     "submit the seller's signed transaction for a trade",
	ArgsUsage: "<tradeId>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "artifact",
			Usage:    "the seller's signed transaction blob",
			Required: true,
		},
	},
	Action: submitSellerAction,
}

var submitbuyer = cli.Command{
	Name:      "buyer",
	Usage:     "join a trade as buyer with the lock hash and signed transaction",
	ArgsUsage: "<tradeId>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "lock-hash",
			Usage:    "hash of the payment lock",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "artifact",
			Usage:    "the buyer's signed transaction blob",
			Required: true,
		},
	},
	Action: submitBuyerAction,
}

var settletrade = cli.Command{
	Name:      "settle",
	Usage:     "settle a ready trade with the broadcast reference and preimage",
	ArgsUsage: "<tradeId>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "ref",
			Usage:    "reference of the broadcast settlement transaction",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "preimage",
			Usage:    "revealed preimage of the payment lock",
			Required: true,
		},
	},
	Action: settleTradeAction,
}

var gettrade = cli.Command{
	Name:      "get",
	Usage:     "query the status of a trade",
	ArgsUsage: "<tradeId>",
	Action:    getTradeAction,
}

var listtrades = cli.Command{
	Name:  "list",
	Usage: "list trades, newest first",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "only list trades with this status",
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "only list trades for this asset",
		},
	},
	Action: listTradesAction,
}

func createTradeAction(ctx *cli.Context) error {
	price, err := decimal.NewFromString(ctx.String("price"))
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	priceUnits := price.Mul(priceScale).IntPart()
	if priceUnits <= 0 {
		return fmt.Errorf("price must be positive")
	}

	resp, err := postRequest(ctx, "/v1/trade", map[string]interface{}{
		"assetId":     ctx.String("asset"),
		"sellerNode":  ctx.String("seller-node"),
		"buyerNode":   ctx.String("buyer-node"),
		"priceUnits":  priceUnits,
		"lockTimeout": ctx.Uint("lock-timeout"),
	})
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func submitSellerAction(ctx *cli.Context) error {
	tradeId, err := tradeIdArg(ctx)
	if err != nil {
		return err
	}

	resp, err := postRequest(
		ctx, "/v1/trade/"+tradeId+"/seller-artifact",
		map[string]interface{}{"artifact": ctx.String("artifact")},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func submitBuyerAction(ctx *cli.Context) error {
	tradeId, err := tradeIdArg(ctx)
	if err != nil {
		return err
	}

	resp, err := postRequest(
		ctx, "/v1/trade/"+tradeId+"/buyer-participation",
		map[string]interface{}{
			"lockHash": ctx.String("lock-hash"),
			"artifact": ctx.String("artifact"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func settleTradeAction(ctx *cli.Context) error {
	tradeId, err := tradeIdArg(ctx)
	if err != nil {
		return err
	}

	resp, err := postRequest(
		ctx, "/v1/trade/"+tradeId+"/settle",
		map[string]interface{}{
			"settlementRef": ctx.String("ref"),
			"preimage":      ctx.String("preimage"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func getTradeAction(ctx *cli.Context) error {
	tradeId, err := tradeIdArg(ctx)
	if err != nil {
		return err
	}

	resp, err := getRequest(ctx, "/v1/trade/"+tradeId)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func listTradesAction(ctx *cli.Context) error {
	query := url.Values{}
	if status := ctx.String("status"); status != "" {
		query.Set("status", status)
	}
	if asset := ctx.String("asset"); asset != "" {
		query.Set("asset", asset)
	}

	path := "/v1/trades"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := getRequest(ctx, path)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func tradeIdArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one argument, the trade id")
	}
	return ctx.Args().First(), nil
}
