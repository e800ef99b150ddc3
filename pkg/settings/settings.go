// Package settings holds the configuration of the mint daemon.
package settings

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/wavesplatform/gomint/pkg/proto"
)

const (
	DefaultAPIAddress            = "127.0.0.1:6870"
	DefaultBatchPointers         = "always-suffix"
	DefaultMaxRequestsPerSecond  = 10
	DefaultMaxBurst              = 20
	DefaultRateLimiterCacheSize  = 64 * 1024
	DefaultPayoutTimeout         = 5 * time.Second
	DefaultEmbeddedNATSPort      = 4222
	DefaultEmbeddedNATSHost      = "127.0.0.1"
	DefaultDataDirectoryName     = "gomint"
	defaultCollectionSupplyCap   = 10_000
	defaultCollectionPriceString = "0.01"
)

// Collection describes the issued collection. Name, Symbol, SupplyCap and Operator can't change
// once the ledger is created.
type Collection struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Base      string `json:"base"`
	Price     string `json:"price"`
	SupplyCap uint64 `json:"supplyCap"`
	Operator  string `json:"operator"`
	// BatchPointers is "always-suffix" or "skip-empty".
	BatchPointers string `json:"batchPointers"`
	MaxBatchSize  uint64 `json:"maxBatchSize"`
}

func (c Collection) Validate() error {
	if c.Name == "" {
		return errors.New("empty collection name")
	}
	if c.SupplyCap == 0 {
		return errors.New("zero supply cap")
	}
	if _, err := c.UnitPrice(); err != nil {
		return err
	}
	if _, err := c.OperatorAddress(); err != nil {
		return err
	}
	switch c.BatchPointers {
	case "", "always-suffix", "skip-empty":
	default:
		return errors.Errorf("unknown batch pointer mode '%s'", c.BatchPointers)
	}
	return nil
}

func (c Collection) UnitPrice() (proto.Amount, error) {
	p, err := proto.ParseAmount(c.Price)
	if err != nil {
		return 0, errors.Wrap(err, "invalid collection price")
	}
	return p, nil
}

func (c Collection) OperatorAddress() (proto.Address, error) {
	if c.Operator == "" {
		return proto.Address{}, errors.New("empty operator address")
	}
	a, err := proto.NewAddressFromString(c.Operator)
	if err != nil {
		return proto.Address{}, errors.Wrap(err, "invalid operator address")
	}
	return a, nil
}

type RateLimit struct {
	MaxRequestsPerSecond int `json:"maxRequestsPerSecond"`
	MaxBurst             int `json:"maxBurst"`
	MemoryCacheSize      int `json:"memoryCacheSize"`
}

type API struct {
	Address     string `json:"address"`
	APIKey      string `json:"apiKey"`
	LogRequests bool   `json:"logRequests"`
	// RateLimit applies to issuance requests, nil disables it.
	RateLimit *RateLimit `json:"rateLimit"`
}

type NATS struct {
	// URL of an external server. Ignored if Embedded is set.
	URL      string `json:"url"`
	Embedded bool   `json:"embedded"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	// Payouts are requested over NATS instead of the in-process book.
	Payouts       bool     `json:"payouts"`
	PayoutTimeout Duration `json:"payoutTimeout"`
}

func (n NATS) Enabled() bool {
	return n.Embedded || n.URL != ""
}

type Service struct {
	DataDir  string `json:"dataDir"`
	InMemory bool   `json:"inMemory"`
	API      API    `json:"api"`
	NATS     NATS   `json:"nats"`
}

func (s Service) Validate() error {
	if !s.InMemory && s.DataDir == "" {
		return errors.New("empty data directory")
	}
	if s.API.Address == "" {
		return errors.New("empty API address")
	}
	if rl := s.API.RateLimit; rl != nil && (rl.MaxRequestsPerSecond <= 0 || rl.MaxBurst < 0) {
		return errors.Errorf("invalid rate limit %d/%d", rl.MaxRequestsPerSecond, rl.MaxBurst)
	}
	if s.NATS.Payouts && !s.NATS.Enabled() {
		return errors.New("NATS payouts require a NATS server")
	}
	return nil
}

type Settings struct {
	Collection Collection `json:"collection"`
	Service    Service    `json:"service"`
}

func (s *Settings) Validate() error {
	if err := s.Collection.Validate(); err != nil {
		return errors.Wrap(err, "invalid collection settings")
	}
	if err := s.Service.Validate(); err != nil {
		return errors.Wrap(err, "invalid service settings")
	}
	return nil
}

func Default() *Settings {
	return &Settings{
		Collection: Collection{
			Price:         defaultCollectionPriceString,
			SupplyCap:     defaultCollectionSupplyCap,
			BatchPointers: DefaultBatchPointers,
		},
		Service: Service{
			DataDir: DefaultDataDirectoryName,
			API: API{
				Address: DefaultAPIAddress,
				RateLimit: &RateLimit{
					MaxRequestsPerSecond: DefaultMaxRequestsPerSecond,
					MaxBurst:             DefaultMaxBurst,
					MemoryCacheSize:      DefaultRateLimiterCacheSize,
				},
			},
			NATS: NATS{
				Host:          DefaultEmbeddedNATSHost,
				Port:          DefaultEmbeddedNATSPort,
				PayoutTimeout: Duration(DefaultPayoutTimeout),
			},
		},
	}
}

// Load reads the JSON file over the defaults. An empty path returns the defaults.
// The result is not validated, so flags can be applied first.
func Load(fs afero.Fs, path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open settings file '%s'", path)
	}
	defer func() {
		_ = f.Close()
	}()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrapf(err, "failed to parse settings file '%s'", path)
	}
	return s, nil
}

func ApplySettings(s *Settings, f ...func(*Settings)) {
	for _, fn := range f {
		fn(s)
	}
}
