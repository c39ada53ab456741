package finance

import "testing"

func TestEstimateTax(t *testing.T) {
	rates := TaxRates{
		Federal:        dec("15"),
		SocialSecurity: dec("6.2"),
		Medicare:       dec("1.45"),
		State:          dec("5"),
		SelfEmployment: dec("15.3"),
	}

	company := EstimateTax(dec("1000"), rates, RoleCompany)
	if !company.SelfEmployment.IsZero() {
		t.Errorf("company SelfEmployment = %s, want 0", company.SelfEmployment)
	}
	if !company.Total.Equal(dec("276.5")) {
		t.Errorf("company Total = %s, want 276.5", company.Total)
	}
	if !company.NetIncome.Equal(dec("723.5")) {
		t.Errorf("company NetIncome = %s, want 723.5", company.NetIncome)
	}

	owner := EstimateTax(dec("1000"), rates, RoleOwner)
	if !owner.SelfEmployment.Equal(dec("153")) {
		t.Errorf("owner SelfEmployment = %s, want 153", owner.SelfEmployment)
	}
	if !owner.Total.Equal(dec("429.5")) {
		t.Errorf("owner Total = %s, want 429.5", owner.Total)
	}
}

func TestDefaultTaxRates(t *testing.T) {
	if got := DefaultTaxRates(RoleCompany).SelfEmployment; !got.IsZero() {
		t.Errorf("company default SelfEmployment = %s, want 0", got)
	}
	if got := DefaultTaxRates(RoleOwner).SelfEmployment; !got.Equal(dec("15.3")) {
		t.Errorf("owner default SelfEmployment = %s, want 15.3", got)
	}
}

func TestLookupStateTax(t *testing.T) {
	st, ok := LookupStateTax("CA")
	if !ok || st.Name != "California" || !st.Rate.Equal(dec("9.3")) {
		t.Errorf("LookupStateTax(CA) = %+v, %v", st, ok)
	}
	if _, ok := LookupStateTax("ZZ"); ok {
		t.Error("ZZ should not resolve")
	}
	states := StateTaxes()
	if len(states) != 51 {
		t.Errorf("StateTaxes() returned %d entries, want 51", len(states))
	}
	if states[0].Code != "AK" {
		t.Errorf("first state = %s, want AK", states[0].Code)
	}
}
