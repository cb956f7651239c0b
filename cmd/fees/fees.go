package fees

import (
	"fmt"
	"io"
	"time"

	"github.com/allisson/go-env"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tonindexer/gasused/addr"
	"github.com/tonindexer/gasused/internal/app"
	"github.com/tonindexer/gasused/internal/app/fetcher"
	"github.com/tonindexer/gasused/internal/app/query"
	"github.com/tonindexer/gasused/internal/client/etherscan"
	"github.com/tonindexer/gasused/internal/core"
	"github.com/tonindexer/gasused/internal/core/aggregate"
)

var newExplorer = func(apiKey string) app.ExplorerAPI {
	return NewExplorer(apiKey)
}

type feeTotal struct {
	Address string `json:"address"`
	Wei     string `json:"wei"`
	Ether   string `json:"ether"`
}

type report struct {
	Contract string             `json:"contract"`
	Totals   []feeTotal         `json:"totals"`
	Stats    aggregate.FeeStats `json:"stats"`
}

// NewExplorer builds an explorer client from the environment.
func NewExplorer(apiKey string) *etherscan.Client {
	return etherscan.NewClient(apiKey,
		etherscan.WithBaseURL(env.GetString("ETHERSCAN_URL", etherscan.DefaultBaseURL)),
		etherscan.WithTimeout(time.Duration(env.GetInt32("ETHERSCAN_TIMEOUT", 30))*time.Second),
	)
}

func trackedAddresses(args []string, lowercase bool) ([]string, error) {
	ret := make([]string, 0, len(args))
	for _, a := range args {
		if !lowercase {
			if !addr.IsCanonical(a) {
				log.Warn().Str("address", a).Msg("address is not in lowercase hex form, explorer senders will never match it")
			}
			ret = append(ret, a)
			continue
		}
		c, err := addr.Canonical(a)
		if err != nil {
			return nil, errors.Wrapf(err, "tracked address %s", a)
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func printText(w io.Writer, res *aggregate.FeesRes) error {
	for _, a := range res.Addresses {
		if _, err := fmt.Fprintf(w, "Address %q has used %s ETH for gas\n", a, aggregate.FormatEther(res.Totals[a])); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, contract string, res *aggregate.FeesRes) error {
	r := report{
		Contract: contract,
		Totals:   make([]feeTotal, 0, len(res.Addresses)),
		Stats:    res.Stats,
	}
	for _, a := range res.Addresses {
		total := res.Totals[a]
		r.Totals = append(r.Totals, feeTotal{
			Address: a,
			Wei:     total.Dec(),
			Ether:   aggregate.FormatEther(total),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&r)
}

func run(ctx *cli.Context, api app.ExplorerAPI, out io.Writer) error {
	contract := ctx.String("contract")
	if err := addr.Validate(contract); err != nil {
		return errors.Wrapf(core.ErrInvalidArg, "contract address %q", contract)
	}
	if ctx.NArg() == 0 {
		return errors.Wrap(core.ErrInvalidArg, "no addresses to track")
	}

	tracked, err := trackedAddresses(ctx.Args().Slice(), ctx.Bool("lowercase"))
	if err != nil {
		return err
	}

	asJSON := ctx.Bool("json")
	if !asJSON {
		fmt.Fprintf(out, "Computing gas used for addresses: %v\n", tracked)
		fmt.Fprintf(out, "Contract address: %s\n", contract)
	}

	qs, err := query.NewService(ctx.Context, &app.QueryConfig{
		Fetcher: fetcher.NewService(&app.FetcherConfig{
			API:      api,
			PageSize: app.DefaultPageSize,
			MaxPages: ctx.Int("max-pages"),
		}),
	})
	if err != nil {
		return err
	}

	res, err := qs.GetFees(ctx.Context, &aggregate.FeesReq{Contract: contract, Addresses: tracked})
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(out, contract, res)
	}
	return printText(out, res)
}

var Command = &cli.Command{
	Name:  "fees",
	Usage: "Sums gas fees paid by addresses in transactions with a contract",

	ArgsUsage: "address [address...]",

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "explorer api key, ETHERSCAN_API_KEY env is used by default",
			Aliases: []string{"k"},
		},
		&cli.StringFlag{
			Name:     "contract",
			Usage:    "contract address which transaction history is scanned",
			Aliases:  []string{"c"},
			Required: true,
		},
		&cli.IntFlag{
			Name:  "max-pages",
			Usage: "fail if the history is longer than this number of pages, 0 means no limit",
			Value: 0,
		},
		&cli.BoolFlag{
			Name:  "lowercase",
			Usage: "convert tracked addresses to lowercase before matching",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print result as json",
		},
	},

	Action: func(ctx *cli.Context) error {
		apiKey := ctx.String("api-key")
		if apiKey == "" {
			apiKey = env.GetString("ETHERSCAN_API_KEY", "")
		}
		if apiKey == "" {
			return errors.Wrap(core.ErrInvalidArg, "explorer api key is not set")
		}

		return run(ctx, newExplorer(apiKey), ctx.App.Writer)
	},
}
