package rules

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// PayTypeInfo is the display and guidance data for one pay type
type PayTypeInfo struct {
	PayType         domain.PayType             `yaml:"pay_type" json:"payType"`
	Name            string                     `yaml:"name" json:"name"`
	Description     string                     `yaml:"description" json:"description"`
	MonthlyAmount   *decimal.Decimal           `yaml:"monthly_amount,omitempty" json:"monthlyAmount,omitempty"`
	AmountRange     *domain.AmountRange        `yaml:"amount_range,omitempty" json:"amountRange,omitempty"`
	DocumentsNeeded []string                   `yaml:"documents_needed" json:"documentsNeeded"`
	NextSteps       map[domain.Status][]string `yaml:"next_steps,omitempty" json:"nextSteps,omitempty"`
	Notes           []string                   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Catalog indexes pay-type info, preserving declaration order
type Catalog struct {
	order []domain.PayType
	infos map[domain.PayType]PayTypeInfo
}

// NewCatalog builds a catalog. Later entries replace earlier ones with the same pay type.
func NewCatalog(infos ...PayTypeInfo) *Catalog {
	c := &Catalog{infos: make(map[domain.PayType]PayTypeInfo)}
	for _, info := range infos {
		c.Add(info)
	}
	return c
}

// Add inserts or replaces an entry
func (c *Catalog) Add(info PayTypeInfo) {
	if _, exists := c.infos[info.PayType]; !exists {
		c.order = append(c.order, info.PayType)
	}
	c.infos[info.PayType] = info
}

// Get returns the entry for a pay type
func (c *Catalog) Get(payType domain.PayType) (PayTypeInfo, bool) {
	if c == nil {
		return PayTypeInfo{}, false
	}
	info, ok := c.infos[payType]
	return info, ok
}

// All returns every entry in declaration order
func (c *Catalog) All() []PayTypeInfo {
	if c == nil {
		return nil
	}
	out := make([]PayTypeInfo, 0, len(c.order))
	for _, pt := range c.order {
		out = append(out, c.infos[pt])
	}
	return out
}

// Name returns the display name, falling back to the pay type id
func (c *Catalog) Name(payType domain.PayType) string {
	if info, ok := c.Get(payType); ok && info.Name != "" {
		return info.Name
	}
	return string(payType)
}

var defaultNextSteps = map[domain.Status][]string{
	domain.StatusEligible: {
		"Gather the documents listed below",
		"Submit the request through your unit admin or finance office",
		"Verify the entitlement on your next LES",
	},
	domain.StatusPotentiallyEligible: {
		"Review the unmet requirements",
		"Ask your finance office to confirm eligibility for your situation",
	},
	domain.StatusNotEligible: {
		"No action needed unless your duty status changes",
	},
	domain.StatusIncomplete: {
		"Answer the remaining questions to complete the assessment",
	},
}

// NextSteps returns the pay type's guidance for a status, or the default guidance
func (c *Catalog) NextSteps(payType domain.PayType, status domain.Status) []string {
	if info, ok := c.Get(payType); ok {
		if steps, ok := info.NextSteps[status]; ok && len(steps) > 0 {
			return append([]string(nil), steps...)
		}
	}
	return append([]string{}, defaultNextSteps[status]...)
}
