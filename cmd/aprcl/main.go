// Command aprcl runs the APR-CL primality test against numbers given
// on the command line and reports PRIME, COMPOSITE, or the failure
// reason for each.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/takakv/aprcl"
)

func main() {
	app := &cli.App{
		Name:  "aprcl",
		Usage: "deterministically decide whether N is prime",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log each engine attempt and retry",
			},
		},
		ArgsUsage: "N [N...]",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("aprcl")
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if c.NArg() == 0 {
		return cli.Exit("at least one number is required", 1)
	}

	exitCode := 0
	for _, arg := range c.Args().Slice() {
		n, ok := new(big.Int).SetString(arg, 10)
		if !ok {
			fmt.Printf("%s: not a base-10 integer\n", arg)
			exitCode = 1
			continue
		}

		prime, err := aprcl.IsPrime(n)
		if err == nil {
			verdict := "COMPOSITE"
			if prime {
				verdict = "PRIME"
			}
			fmt.Printf("%s: %s\n", n, verdict)
			continue
		}

		var aprclErr *aprcl.Error
		if errors.As(err, &aprclErr) {
			switch aprclErr.Status {
			case aprcl.StatusComposite:
				fmt.Printf("%s: COMPOSITE (%s)\n", n, aprclErr.Witness)
			case aprcl.StatusInconclusive:
				fmt.Printf("%s: INCONCLUSIVE (%s)\n", n, aprclErr.Witness)
				exitCode = 1
			default:
				fmt.Printf("%s: ERROR (%s)\n", n, aprclErr.Witness)
				exitCode = 1
			}
			continue
		}

		fmt.Printf("%s: ERROR (%s)\n", n, err)
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
