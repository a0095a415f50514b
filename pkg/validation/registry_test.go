//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{
		CategoryStructure,
		CategorySecurity,
		CategoryPerformance,
		CategoryDocumentation,
		CategoryTests,
	}, Categories())

	for i, category := range Categories() {
		assert.Equal(t, i, category.Rank())
	}
	assert.Equal(t, len(Categories()), Category("bogus").Rank(), "unknown categories sort last")
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityError.Rank())
	assert.Equal(t, 1, SeverityWarning.Rank())
	assert.Equal(t, 2, SeverityInfo.Rank())
	assert.Equal(t, 3, SeverityPass.Rank())
	assert.Equal(t, 4, Severity("bogus").Rank())
}

func TestRegistryOrder(t *testing.T) {
	validators := registry()
	require.Len(t, validators, 5)

	names := make([]string, 0, len(validators))
	for _, v := range validators {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"structure", "security", "performance", "documentation", "scripts"}, names)

	for i, v := range validators {
		assert.Equal(t, Categories()[i], v.Category(), "validator %s owns the category at its registration slot", v.Name())
	}
}

func TestValidatorsFor(t *testing.T) {
	assert.Len(t, validatorsFor(nil), 5, "empty selection enables everything")

	selected := validatorsFor([]Category{CategorySecurity})
	require.Len(t, selected, 1)
	assert.Equal(t, "security", selected[0].Name())

	selected = validatorsFor([]Category{CategoryTests, CategoryStructure})
	require.Len(t, selected, 2)
	assert.Equal(t, "structure", selected[0].Name(), "registration order wins over selection order")
	assert.Equal(t, "scripts", selected[1].Name())
}
