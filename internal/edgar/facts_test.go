package edgar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func factsWith(units []FactUnit) *CompanyFacts {
	return &CompanyFacts{
		CIK:        100,
		EntityName: "Test Corp",
		Facts: map[string]map[string]Fact{
			"us-gaap": {
				config.XBRLTagForeign: {
					Label: "Foreign pre-tax income",
					Units: map[string][]FactUnit{"USD": units},
				},
			},
		},
	}
}

func TestExtractIncomeFacts(t *testing.T) {
	tests := []struct {
		name     string
		unit     FactUnit
		wantRows int
		wantYear int
	}{
		{
			name: "annual 10-K fact is kept",
			unit: FactUnit{
				Start: "2019-01-01", End: "2019-12-31", Value: 100,
				Form: "10-K", Filed: "2020-02-01", FY: 2019,
			},
			wantRows: 1,
			wantYear: 2019,
		},
		{
			name: "fiscal year comes from the end date, not fy",
			unit: FactUnit{
				// Comparative restatement: filed with fy 2021 but the
				// period ends in 2019.
				Start: "2019-02-01", End: "2019-12-28", Value: 100,
				Form: "10-K", Filed: "2022-02-01", FY: 2021,
			},
			wantRows: 1,
			wantYear: 2019,
		},
		{
			name: "quarterly 10-Q is dropped",
			unit: FactUnit{
				Start: "2019-01-01", End: "2019-03-31", Value: 100,
				Form: "10-Q", Filed: "2019-05-01",
			},
			wantRows: 0,
		},
		{
			name: "quarterly period in a 10-K is dropped by the duration gate",
			unit: FactUnit{
				Start: "2019-10-01", End: "2019-12-31", Value: 100,
				Form: "10-K", Filed: "2020-02-01",
			},
			wantRows: 0,
		},
		{
			name: "multi-year cumulative period is dropped",
			unit: FactUnit{
				Start: "2017-01-01", End: "2019-12-31", Value: 100,
				Form: "10-K", Filed: "2020-02-01",
			},
			wantRows: 0,
		},
		{
			name: "year outside the sample window is dropped",
			unit: FactUnit{
				Start: "2010-01-01", End: "2010-12-31", Value: 100,
				Form: "10-K", Filed: "2011-02-01",
			},
			wantRows: 0,
		},
		{
			name: "unparseable end date is dropped",
			unit: FactUnit{
				Start: "2019-01-01", End: "not-a-date", Value: 100,
				Form: "10-K", Filed: "2020-02-01",
			},
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ExtractIncomeFacts(factsWith([]FactUnit{tt.unit}), 100, testSample())
			require.Len(t, rows, tt.wantRows)
			if tt.wantRows > 0 {
				assert.Equal(t, tt.wantYear, rows[0].Year)
				assert.Equal(t, domain.TagForeign, rows[0].Tag)
				assert.Equal(t, 100, rows[0].CIK)
			}
		})
	}
}

func TestExtractIncomeFactsMissingTaxonomy(t *testing.T) {
	facts := &CompanyFacts{Facts: map[string]map[string]Fact{"dei": {}}}
	assert.Empty(t, ExtractIncomeFacts(facts, 100, testSample()))
}
