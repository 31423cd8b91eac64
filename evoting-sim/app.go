// evoting-sim plays a complete election on a single machine: key
// generation, voting with randomly chosen candidates, aggregation,
// decryption and verification of the result proofs. It exercises the
// cryptographic core only; there is no network.
package main

import (
	"fmt"
	"math/big"
	"os"

	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/onet/v3/log"
	cli "gopkg.in/urfave/cli.v1"

	"go.dedis.ch/evoting"
	"go.dedis.ch/evoting/lib"
)

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "evoting-sim"
	cliApp.Usage = "simulate a privacy-preserving election"
	cliApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML election configuration file",
		},
		cli.IntFlag{
			Name:  "voters, n",
			Value: 5,
			Usage: "number of voters",
		},
		cli.IntFlag{
			Name:  "debug, d",
			Value: 0,
			Usage: "debug-level: 1 for terse, 5 for maximal",
		},
	}
	cliApp.Action = run

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	log.SetDebugVisible(c.Int("debug"))

	cfg := evoting.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = evoting.LoadConfig(path); err != nil {
			return err
		}
	}

	election, err := evoting.NewElection(evoting.Suite, cfg)
	if err != nil {
		return err
	}
	if err := election.GenerateKeys(); err != nil {
		return err
	}

	voters := c.Int("voters")
	for i := 0; i < voters; i++ {
		signingKey, _ := lib.RandomKeyPair(evoting.Suite)
		choice := randomChoice(len(cfg.Candidates))
		ballot, err := evoting.NewBallot(evoting.Suite, signingKey, election.Key, cfg, choice)
		if err != nil {
			return err
		}
		if err := election.Cast(ballot); err != nil {
			return err
		}
		log.Lvl1("voter", i, "voted for", cfg.Candidates[choice])
	}

	if err := election.Aggregate(); err != nil {
		return err
	}
	if err := election.DecryptAndProve(); err != nil {
		return err
	}
	if err := election.VerifyResult(); err != nil {
		return err
	}

	fmt.Printf("accepted %d of %d ballots\n", election.Accepted, voters)
	for i, name := range cfg.Candidates {
		fmt.Printf("%10s: %d\n", name, election.Tally[i])
	}
	fmt.Println("result proofs verified")
	return nil
}

// randomChoice picks a candidate uniformly from the suite's random
// stream, the same source the ballots draw their randomness from.
func randomChoice(candidates int) int {
	n := random.Int(big.NewInt(int64(candidates)), evoting.Suite.RandomStream())
	return int(n.Int64())
}
