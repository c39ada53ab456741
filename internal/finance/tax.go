package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxRates are percentages (15 means 15%).
type TaxRates struct {
	Federal        decimal.Decimal `json:"federalTaxRate"`
	SocialSecurity decimal.Decimal `json:"socialSecurityRate"`
	Medicare       decimal.Decimal `json:"medicareRate"`
	State          decimal.Decimal `json:"stateTaxRate"`
	SelfEmployment decimal.Decimal `json:"selfEmploymentTax"`
}

// DefaultTaxRates are the onboarding defaults. Self-employment tax only
// applies to owner-operators.
func DefaultTaxRates(role Role) TaxRates {
	r := TaxRates{
		Federal:        decimal.RequireFromString("15"),
		SocialSecurity: decimal.RequireFromString("6.2"),
		Medicare:       decimal.RequireFromString("1.45"),
		State:          decimal.Zero,
		SelfEmployment: decimal.Zero,
	}
	if role == RoleOwner {
		r.SelfEmployment = DefaultSelfEmploymentRate
	}
	return r
}

var DefaultSelfEmploymentRate = decimal.RequireFromString("15.3")

type StateTax struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

var stateTaxRates = map[string]struct {
	name string
	rate string
}{
	"AL": {"Alabama", "5.0"}, "AK": {"Alaska", "0"}, "AZ": {"Arizona", "2.5"},
	"AR": {"Arkansas", "4.9"}, "CA": {"California", "9.3"}, "CO": {"Colorado", "4.55"},
	"CT": {"Connecticut", "6.99"}, "DE": {"Delaware", "6.6"}, "FL": {"Florida", "0"},
	"GA": {"Georgia", "5.75"}, "HI": {"Hawaii", "7.25"}, "ID": {"Idaho", "6.5"},
	"IL": {"Illinois", "4.95"}, "IN": {"Indiana", "3.23"}, "IA": {"Iowa", "4.4"},
	"KS": {"Kansas", "5.7"}, "KY": {"Kentucky", "4.0"}, "LA": {"Louisiana", "4.25"},
	"ME": {"Maine", "7.15"}, "MD": {"Maryland", "5.75"}, "MA": {"Massachusetts", "5.0"},
	"MI": {"Michigan", "4.25"}, "MN": {"Minnesota", "7.05"}, "MS": {"Mississippi", "5.0"},
	"MO": {"Missouri", "5.4"}, "MT": {"Montana", "6.75"}, "NE": {"Nebraska", "6.84"},
	"NV": {"Nevada", "0"}, "NH": {"New Hampshire", "5.0"}, "NJ": {"New Jersey", "5.525"},
	"NM": {"New Mexico", "4.9"}, "NY": {"New York", "6.33"}, "NC": {"North Carolina", "4.75"},
	"ND": {"North Dakota", "2.9"}, "OH": {"Ohio", "3.99"}, "OK": {"Oklahoma", "4.75"},
	"OR": {"Oregon", "9.9"}, "PA": {"Pennsylvania", "3.07"}, "RI": {"Rhode Island", "5.99"},
	"SC": {"South Carolina", "7.0"}, "SD": {"South Dakota", "0"}, "TN": {"Tennessee", "0"},
	"TX": {"Texas", "0"}, "UT": {"Utah", "4.95"}, "VT": {"Vermont", "6.0"},
	"VA": {"Virginia", "5.75"}, "WA": {"Washington", "0"}, "WV": {"West Virginia", "6.5"},
	"WI": {"Wisconsin", "5.3"}, "WY": {"Wyoming", "0"}, "DC": {"District of Columbia", "8.5"},
}

// LookupStateTax returns the income tax rate for a two-letter state code.
func LookupStateTax(code string) (StateTax, bool) {
	s, ok := stateTaxRates[code]
	if !ok {
		return StateTax{}, false
	}
	return StateTax{Code: code, Name: s.name, Rate: decimal.RequireFromString(s.rate)}, true
}

// StateTaxes lists all states ordered by code.
func StateTaxes() []StateTax {
	out := make([]StateTax, 0, len(stateTaxRates))
	for code := range stateTaxRates {
		st, _ := LookupStateTax(code)
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

type TaxEstimate struct {
	Income         decimal.Decimal `json:"income"`
	Federal        decimal.Decimal `json:"federal"`
	SocialSecurity decimal.Decimal `json:"socialSecurity"`
	Medicare       decimal.Decimal `json:"medicare"`
	State          decimal.Decimal `json:"state"`
	SelfEmployment decimal.Decimal `json:"selfEmployment"`
	Total          decimal.Decimal `json:"total"`
	NetIncome      decimal.Decimal `json:"netIncome"`
}

// EstimateTax applies each rate to income. Self-employment tax is charged
// to owner-operators only.
func EstimateTax(income decimal.Decimal, rates TaxRates, role Role) TaxEstimate {
	part := func(rate decimal.Decimal) decimal.Decimal {
		return income.Mul(rate).Div(percentFactor)
	}

	est := TaxEstimate{
		Income:         income,
		Federal:        part(rates.Federal),
		SocialSecurity: part(rates.SocialSecurity),
		Medicare:       part(rates.Medicare),
		State:          part(rates.State),
		SelfEmployment: decimal.Zero,
	}
	if role == RoleOwner {
		est.SelfEmployment = part(rates.SelfEmployment)
	}
	est.Total = decimal.Sum(est.Federal, est.SocialSecurity, est.Medicare, est.State, est.SelfEmployment)
	est.NetIncome = income.Sub(est.Total)
	return est
}
