package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/wavesplatform/gomint/pkg/crypto"
	"github.com/wavesplatform/gomint/pkg/logging"
	"github.com/wavesplatform/gomint/pkg/settings"
)

type config struct {
	lp           logging.Parameters
	cfgPath      string
	dataDir      string
	inMemory     bool
	apiAddr      string
	apiKey       string
	logRequests  bool
	natsURL      string
	natsEmbedded bool
	natsPayouts  bool
	fs           *pflag.FlagSet
}

func (c *config) parse(args []string) error {
	c.fs = pflag.NewFlagSet("mintd", pflag.ContinueOnError)
	c.lp.Initialize(c.fs)
	c.fs.StringVar(&c.cfgPath, "cfg-path", "", "Path to the JSON settings file.")
	c.fs.StringVar(&c.dataDir, "data-dir", "", "Path to the ledger state directory.")
	c.fs.BoolVar(&c.inMemory, "in-memory", false, "Keep the ledger in memory. The state is lost on exit.")
	c.fs.StringVar(&c.apiAddr, "api-address", "", "Address for REST API.")
	c.fs.StringVar(&c.apiKey, "api-key", "", "API key of the operator routes. Empty key disables them.")
	c.fs.BoolVar(&c.logRequests, "log-requests", false, "Log every served HTTP request.")
	c.fs.StringVar(&c.natsURL, "nats-url", "", "URL of the NATS server to publish events to.")
	c.fs.BoolVar(&c.natsEmbedded, "nats-embedded", false, "Run an embedded NATS server.")
	c.fs.BoolVar(&c.natsPayouts, "nats-payouts", false, "Request withdrawal payouts over NATS.")
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	return c.lp.Parse()
}

// apply overrides the loaded settings with the flags that were set.
func (c *config) apply(s *settings.Settings) {
	changed := c.fs.Changed
	settings.ApplySettings(s, func(s *settings.Settings) {
		if changed("data-dir") {
			s.Service.DataDir = c.dataDir
		}
		if changed("in-memory") {
			s.Service.InMemory = c.inMemory
		}
		if changed("api-address") {
			s.Service.API.Address = c.apiAddr
		}
		if changed("api-key") {
			s.Service.API.APIKey = c.apiKey
		}
		if changed("log-requests") {
			s.Service.API.LogRequests = c.logRequests
		}
		if changed("nats-url") {
			s.Service.NATS.URL = c.natsURL
		}
		if changed("nats-embedded") {
			s.Service.NATS.Embedded = c.natsEmbedded
		}
		if changed("nats-payouts") {
			s.Service.NATS.Payouts = c.natsPayouts
		}
	})
}

func (c *config) String() string {
	return fmt.Sprintf("{Logger: %s, cfg-path: %s, data-dir: %s, in-memory: %t, api-address: %s, "+
		"hashed api-key: %s, log-requests: %t, nats-url: %s, nats-embedded: %t, nats-payouts: %t}",
		c.lp.String(), c.cfgPath, c.dataDir, c.inMemory, c.apiAddr,
		crypto.Keccak256([]byte(c.apiKey)).String(), c.logRequests, c.natsURL, c.natsEmbedded, c.natsPayouts)
}
