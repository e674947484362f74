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
	"github.com/stretchr/testify/require"
)

func createTestPledge(t *testing.T, p v1.PledgeEditable, expectedStatus ...int) v1.PledgeResponse {
	if p.WeddingID == uuid.Nil {
		p.WeddingID = createTestWedding(t, v1.WeddingEditable{}).Data.ID
	}

	if p.ContributorName == "" {
		p.ContributorName = uuid.NewString()
	}

	if p.AmountPledged.IsZero() {
		p.AmountPledged = decimal.NewFromInt(500000)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.PledgeEditable{p}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/pledges", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var pledge v1.PledgeCreateResponse
	test.DecodeResponse(t, &r, &pledge)

	if r.Code == http.StatusCreated {
		return pledge.Data[0]
	}

	return v1.PledgeResponse{}
}

// listCashEntries returns all cash entries matching the query string.
func listCashEntries(t *testing.T, query string) []v1.CashEntry {
	r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/cash-entries?%s", query), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var entries v1.CashEntryListResponse
	test.DecodeResponse(t, &r, &entries)

	return entries.Data
}

func (suite *TestSuiteStandard) TestPledgesCreateFails() {
	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, p v1.PledgeCreateResponse)
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, p v1.PledgeCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *p.Error)
			},
		},
		{
			"Non-existing Wedding",
			`[{ "weddingId": "ea85ad1a-3679-4ced-b83b-89566c12ece9", "amountPledged": "500000" }]`,
			http.StatusNotFound,
			func(t *testing.T, p v1.PledgeCreateResponse) {
				assert.Equal(t, "there is no wedding matching your query", *p.Data[0].Error)
			},
		},
		{
			"Zero pledged amount",
			`[{ "contributorName": "Jane Doe" }]`,
			http.StatusBadRequest,
			func(t *testing.T, p v1.PledgeCreateResponse) {
				assert.Equal(t, models.ErrPledgeAmountNotPositive.Error(), *p.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/pledges", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var p v1.PledgeCreateResponse
			test.DecodeResponse(t, &r, &p)

			if tt.testFunc != nil {
				tt.testFunc(t, p)
			}
		})
	}
}

// TestPledgesCreateMirrorsInitialPayment verifies that a pledge created
// with money already received gets a matching cash ledger entry.
func (suite *TestSuiteStandard) TestPledgesCreateMirrorsInitialPayment() {
	pledge := createTestPledge(suite.T(), v1.PledgeEditable{
		ContributorName: "Jane Doe",
		AmountPledged:   decimal.NewFromInt(500000),
		AmountPaid:      decimal.NewFromInt(200000),
	})

	assert.True(suite.T(), pledge.Data.Balance.Equal(decimal.NewFromInt(300000)), "balance is %s", pledge.Data.Balance)
	assert.Equal(suite.T(), finance.StatusPartial, pledge.Data.Status)

	entries := listCashEntries(suite.T(), fmt.Sprintf("sourceReference=%s", pledge.Data.ID))
	require.Len(suite.T(), entries, 1)
	assert.True(suite.T(), entries[0].Amount.Equal(decimal.NewFromInt(200000)), "amount is %s", entries[0].Amount)
	assert.Equal(suite.T(), "pledge", entries[0].SourceType)
	assert.Equal(suite.T(), "Initial pledge payment", entries[0].Note)
}

// TestPledgesUpdateMirrorsDelta verifies that raising the paid amount
// creates a delta entry in the cash ledger, and that lowering it does not.
func (suite *TestSuiteStandard) TestPledgesUpdateMirrorsDelta() {
	pledge := createTestPledge(suite.T(), v1.PledgeEditable{
		ContributorName: "Jane Doe",
		AmountPledged:   decimal.NewFromInt(500000),
		AmountPaid:      decimal.NewFromInt(50000),
	})

	r := test.Request(suite.T(), http.MethodPatch, pledge.Data.Links.Self, map[string]any{"amountPaid": "80000"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.PledgeResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.AmountPaid.Equal(decimal.NewFromInt(80000)))

	entries := listCashEntries(suite.T(), fmt.Sprintf("sourceReference=%s", pledge.Data.ID))
	require.Len(suite.T(), entries, 2)

	// A lowered paid amount is not mirrored, ledger history stays
	r = test.Request(suite.T(), http.MethodPatch, pledge.Data.Links.Self, map[string]any{"amountPaid": "60000"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	entries = listCashEntries(suite.T(), fmt.Sprintf("sourceReference=%s", pledge.Data.ID))
	assert.Len(suite.T(), entries, 2)
}

func (suite *TestSuiteStandard) TestPledgesUpdateFails() {
	pledge := createTestPledge(suite.T(), v1.PledgeEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid type", `{"contributorName": 2}`, http.StatusBadRequest},
		{"Zero pledged amount", `{"amountPledged": "0"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, pledge.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestPledgesGetFilter() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})

	_ = createTestPledge(suite.T(), v1.PledgeEditable{WeddingID: w.Data.ID, ContributorName: "Mr Okello Bosco"})
	_ = createTestPledge(suite.T(), v1.PledgeEditable{WeddingID: w.Data.ID, ContributorName: "Mrs Jane Doe", AmountPaid: decimal.NewFromInt(500000)})
	_ = createTestPledge(suite.T(), v1.PledgeEditable{WeddingID: w.Data.ID, ContributorName: "Grace Akello", Note: "Committee member"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Wedding", fmt.Sprintf("wedding=%s", w.Data.ID), 3},
		{"Status fulfilled", "status=fulfilled", 1},
		{"Status pending", "status=pending", 2},
		{"Fuzzy name", "name=Okello", 1},
		{"Glob on the name", "nameGlob=Mr*", 2},
		{"Glob without match", "nameGlob=Dr*", 0},
		{"Glob with pagination", "nameGlob=Mr*&limit=1", 1},
		{"Note", "note=Committee", 1},
		{"Search", "search=akello", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.PledgeListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/pledges?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestPledgesPagination() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})
	for i := 0; i < 10; i++ {
		createTestPledge(suite.T(), v1.PledgeEditable{WeddingID: w.Data.ID, ContributorName: fmt.Sprintf("Contributor %d", i)})
	}

	tests := []struct {
		name          string
		offset        uint
		limit         int
		expectedCount int
		expectedTotal int64
	}{
		{"All", 0, -1, 10, 10},
		{"First 5", 0, 5, 5, 10},
		{"Last 5", 5, -1, 5, 10},
		{"Offset 3", 3, -1, 7, 10},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/pledges?offset=%d&limit=%d", tt.offset, tt.limit), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var pledges v1.PledgeListResponse
			test.DecodeResponse(t, &r, &pledges)

			assert.Equal(suite.T(), tt.offset, pledges.Pagination.Offset)
			assert.Equal(suite.T(), tt.limit, pledges.Pagination.Limit)
			assert.Equal(suite.T(), tt.expectedCount, pledges.Pagination.Count)
			assert.Equal(suite.T(), tt.expectedTotal, pledges.Pagination.Total)
		})
	}
}

// TestPledgesDeleteKeepsLedger verifies that deleting a pledge does not
// remove the mirrored cash entries.
func (suite *TestSuiteStandard) TestPledgesDeleteKeepsLedger() {
	pledge := createTestPledge(suite.T(), v1.PledgeEditable{
		AmountPledged: decimal.NewFromInt(500000),
		AmountPaid:    decimal.NewFromInt(100000),
	})

	r := test.Request(suite.T(), http.MethodDelete, pledge.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	entries := listCashEntries(suite.T(), fmt.Sprintf("sourceReference=%s", pledge.Data.ID))
	assert.Len(suite.T(), entries, 1)
}
