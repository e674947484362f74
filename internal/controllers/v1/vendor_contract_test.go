package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pledgebook/backend/internal/controllers/v1"
	"github.com/pledgebook/backend/internal/finance"
	"github.com/pledgebook/backend/internal/models"
	"github.com/pledgebook/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestVendorContract(t *testing.T, v v1.VendorContractEditable, expectedStatus ...int) v1.VendorContractResponse {
	if v.WeddingID == uuid.Nil {
		v.WeddingID = createTestWedding(t, v1.WeddingEditable{}).Data.ID
	}

	if v.ProviderName == "" {
		v.ProviderName = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.VendorContractEditable{v}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/vendor-contracts", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var contract v1.VendorContractCreateResponse
	test.DecodeResponse(t, &r, &contract)

	if r.Code == http.StatusCreated {
		return contract.Data[0]
	}

	return v1.VendorContractResponse{}
}

// TestVendorContractsComputedFields verifies that balance and status are
// derived from the contract amount and the paid amount.
func (suite *TestSuiteStandard) TestVendorContractsComputedFields() {
	contract := createTestVendorContract(suite.T(), v1.VendorContractEditable{
		ProviderName:   "Sunset Gardens",
		Category:       "Venue",
		ContractAmount: decimal.NewFromInt(8000000),
		AmountPaid:     decimal.NewFromInt(3000000),
	})

	assert.True(suite.T(), contract.Data.Balance.Equal(decimal.NewFromInt(5000000)), "balance is %s", contract.Data.Balance)
	assert.Equal(suite.T(), finance.StatusPartial, contract.Data.Status)
}

func (suite *TestSuiteStandard) TestVendorContractsCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, v v1.VendorContractCreateResponse)
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, v v1.VendorContractCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *v.Error)
			},
		},
		{
			"Non-existing Wedding",
			`[{ "weddingId": "ea85ad1a-3679-4ced-b83b-89566c12ece9" }]`,
			http.StatusNotFound,
			func(t *testing.T, v v1.VendorContractCreateResponse) {
				assert.Equal(t, "there is no wedding matching your query", *v.Data[0].Error)
			},
		},
		{
			"Negative contract amount",
			`[{ "contractAmount": "-1000" }]`,
			http.StatusBadRequest,
			func(t *testing.T, v v1.VendorContractCreateResponse) {
				assert.Equal(t, models.ErrVendorContractAmountNegative.Error(), *v.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/vendor-contracts", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var v v1.VendorContractCreateResponse
			test.DecodeResponse(t, &r, &v)

			if tt.testFunc != nil {
				tt.testFunc(t, v)
			}
		})
	}
}

// TestVendorContractsUpdate verifies that paying a contract updates the
// derived fields.
func (suite *TestSuiteStandard) TestVendorContractsUpdate() {
	contract := createTestVendorContract(suite.T(), v1.VendorContractEditable{
		ContractAmount: decimal.NewFromInt(8000000),
	})

	r := test.Request(suite.T(), http.MethodPatch, contract.Data.Links.Self, map[string]any{"amountPaid": "8000000"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.VendorContractResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Balance.IsZero(), "balance is %s", updated.Data.Balance)
	assert.Equal(suite.T(), finance.StatusFulfilled, updated.Data.Status)
}

func (suite *TestSuiteStandard) TestVendorContractsGetFilter() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})

	_ = createTestVendorContract(suite.T(), v1.VendorContractEditable{
		WeddingID:      w.Data.ID,
		ProviderName:   "Sunset Gardens",
		Category:       "Venue",
		ContractAmount: decimal.NewFromInt(8000000),
		AmountPaid:     decimal.NewFromInt(8000000),
	})

	_ = createTestVendorContract(suite.T(), v1.VendorContractEditable{
		WeddingID:      w.Data.ID,
		ProviderName:   "Tent Masters",
		Category:       "Decor",
		ContractAmount: decimal.NewFromInt(2000000),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Wedding", fmt.Sprintf("wedding=%s", w.Data.ID), 2},
		{"Category", "category=Venue", 1},
		{"Status fulfilled", "status=fulfilled", 1},
		{"Fuzzy name", "name=tent", 1},
		{"Search", "search=gardens", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.VendorContractListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/vendor-contracts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}
