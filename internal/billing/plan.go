// Package billing holds the plan catalog, the pricing calculator and the
// end-of-period invoice computation.
package billing

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var plansYAML []byte

var ErrUnknownPlan = errors.New("unknown plan")

type Plan struct {
	Code              string `yaml:"code" json:"code"`
	Name              string `yaml:"name" json:"name"`
	MonthlyPriceCents int64  `yaml:"monthly_price_cents" json:"monthly_price_cents"`
	IncludedSeats     int32  `yaml:"included_seats" json:"included_seats"`
	SeatPriceCents    int64  `yaml:"seat_price_cents" json:"seat_price_cents"`
	IncludedMinutes   int32  `yaml:"included_minutes" json:"included_minutes"`
	OverageRate       string `yaml:"overage_cents_per_minute" json:"overage_cents_per_minute"`
	MaxContacts       int64  `yaml:"max_contacts" json:"max_contacts"`
	StripePriceID     string `yaml:"stripe_price_id" json:"-"`

	overage decimal.Decimal
}

// OverageCentsPerMinute is the parsed overage rate.
func (p Plan) OverageCentsPerMinute() decimal.Decimal {
	return p.overage
}

type Catalog struct {
	DefaultPlan string `yaml:"default_plan"`
	TrialDays   int    `yaml:"trial_days"`
	Plans       []Plan `yaml:"plans"`

	byCode map[string]Plan
}

// ParseCatalog decodes and validates a plan catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding plan catalog: %w", err)
	}
	c.byCode = make(map[string]Plan, len(c.Plans))
	for i := range c.Plans {
		p := &c.Plans[i]
		if p.Code == "" {
			return nil, fmt.Errorf("plan %d has no code", i)
		}
		if _, dup := c.byCode[p.Code]; dup {
			return nil, fmt.Errorf("duplicate plan code %q", p.Code)
		}
		rate, err := decimal.NewFromString(p.OverageRate)
		if err != nil {
			return nil, fmt.Errorf("plan %q overage rate: %w", p.Code, err)
		}
		if rate.IsNegative() || p.MonthlyPriceCents < 0 || p.SeatPriceCents < 0 {
			return nil, fmt.Errorf("plan %q has negative pricing", p.Code)
		}
		p.overage = rate
		c.byCode[p.Code] = *p
	}
	if _, ok := c.byCode[c.DefaultPlan]; !ok {
		return nil, fmt.Errorf("default plan %q is not in the catalog", c.DefaultPlan)
	}
	return &c, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(plansYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

func (c *Catalog) Get(code string) (Plan, error) {
	p, ok := c.byCode[code]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrUnknownPlan, code)
	}
	return p, nil
}

func (c *Catalog) List() []Plan {
	out := make([]Plan, len(c.Plans))
	copy(out, c.Plans)
	return out
}
