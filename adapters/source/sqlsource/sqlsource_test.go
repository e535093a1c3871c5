package sqlsource

import "testing"

func TestValidateIdentifierRejectsUnsafeNames(t *testing.T) {
	if err := validateIdentifier("customers; DROP TABLE users"); err == nil {
		t.Error("expected unsafe table identifier to be rejected")
	}
	if err := validateIdentifier("customers"); err != nil {
		t.Errorf("expected a plain identifier to pass, got %v", err)
	}
}

func TestValidateReadOnlyQueryRejectsMutations(t *testing.T) {
	cases := []string{
		"DROP TABLE customers",
		"SELECT * FROM customers; DROP TABLE customers;",
		"UPDATE customers SET active = false",
		"",
	}
	for _, q := range cases {
		if err := validateReadOnlyQuery(q); err == nil {
			t.Errorf("expected query %q to be rejected", q)
		}
	}
}

func TestValidateReadOnlyQueryAcceptsPlainSelect(t *testing.T) {
	if err := validateReadOnlyQuery("SELECT id, name FROM customers WHERE active = true"); err != nil {
		t.Errorf("expected a plain SELECT to pass, got %v", err)
	}
}
