package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	for _, code := range []string{"1", "1.1", "1.1.03.01", "6.1"} {
		assert.NoError(t, ValidateCode(code), code)
	}
	for _, code := range []string{"", "1.", ".1", "1..2", "1.a", "x"} {
		assert.Error(t, ValidateCode(code), code)
	}
}

func TestParseNature(t *testing.T) {
	for _, s := range []string{"DEUDORA", "deudora", " Deudora ", "debit", "DEBE"} {
		n, err := ParseNature(s)
		require.NoError(t, err, s)
		assert.Equal(t, NatureDebit, n)
	}
	for _, s := range []string{"ACREEDORA", "acreedora", "credit", "haber"} {
		n, err := ParseNature(s)
		require.NoError(t, err, s)
		assert.Equal(t, NatureCredit, n)
	}

	_, err := ParseNature("mixta")
	assert.ErrorIs(t, err, ErrInvalidNature)
}

func TestAccountValidate(t *testing.T) {
	ok := &Account{Code: "1.1.01", Name: "Caja", Type: "Activo", Nature: NatureDebit}
	require.NoError(t, ok.Validate())

	noName := &Account{Code: "1.1.01", Nature: NatureDebit}
	assert.ErrorIs(t, noName.Validate(), ErrInvalidAccount)

	badNature := &Account{Code: "1.1.01", Name: "Caja", Nature: Nature("MIXTA")}
	assert.ErrorIs(t, badNature.Validate(), ErrInvalidNature)
}

func TestNatureForClass(t *testing.T) {
	cases := map[string]Nature{
		"1": NatureDebit, "5": NatureDebit, "6": NatureDebit,
		"2": NatureCredit, "3": NatureCredit, "4": NatureCredit,
	}
	for class, want := range cases {
		got, ok := NatureForClass(class)
		require.True(t, ok, class)
		assert.Equal(t, want, got)
	}

	_, ok := NatureForClass("7")
	assert.False(t, ok)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, "1", ClassOf("1.1.03.01"))
	assert.Equal(t, "4", ClassOf("4"))
}

func TestLookupChartEntry(t *testing.T) {
	ce := LookupChartEntry("1.1.01")
	require.NotNil(t, ce)
	assert.Equal(t, "Caja", ce.Name)
	assert.Equal(t, "Activo", ce.Type)

	assert.Nil(t, LookupChartEntry("9.9.99"))
}

func TestStarterChartIsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, ce := range StarterChart {
		require.NoError(t, ValidateCode(ce.Code), ce.Code)
		assert.False(t, seen[ce.Code], "duplicate code %s", ce.Code)
		seen[ce.Code] = true

		// Top-level classes follow the statement conventions.
		want, ok := NatureForClass(ClassOf(ce.Code))
		require.True(t, ok, ce.Code)
		assert.Equal(t, want, ce.Nature, ce.Code)
	}
}
