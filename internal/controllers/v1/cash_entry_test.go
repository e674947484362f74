package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pledgebook/backend/internal/controllers/v1"
	"github.com/pledgebook/backend/internal/models"
	"github.com/pledgebook/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCashEntry(t *testing.T, e v1.CashEntryEditable, expectedStatus ...int) v1.CashEntryResponse {
	if e.WeddingID == uuid.Nil {
		e.WeddingID = createTestWedding(t, v1.WeddingEditable{}).Data.ID
	}

	if e.SourceType == "" {
		e.SourceType = "gift"
	}

	if e.Amount.IsZero() {
		e.Amount = decimal.NewFromInt(150000)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CashEntryEditable{e}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/cash-entries", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var entry v1.CashEntryCreateResponse
	test.DecodeResponse(t, &r, &entry)

	if r.Code == http.StatusCreated {
		return entry.Data[0]
	}

	return v1.CashEntryResponse{}
}

func (suite *TestSuiteStandard) TestCashEntriesCreateFails() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})

	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, e v1.CashEntryCreateResponse)
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, e v1.CashEntryCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *e.Error)
			},
		},
		{
			"Pledge entries are reserved for the reconciliation engine",
			[]v1.CashEntryEditable{{WeddingID: w.Data.ID, SourceType: "pledge", Amount: decimal.NewFromInt(1000)}},
			http.StatusBadRequest,
			func(t *testing.T, e v1.CashEntryCreateResponse) {
				assert.Equal(t, models.ErrCashEntryImmutable.Error(), *e.Data[0].Error)
			},
		},
		{
			"Invalid source type",
			[]v1.CashEntryEditable{{WeddingID: w.Data.ID, SourceType: "loan", Amount: decimal.NewFromInt(1000)}},
			http.StatusBadRequest,
			func(t *testing.T, e v1.CashEntryCreateResponse) {
				assert.Equal(t, models.ErrCashEntrySourceTypeInvalid.Error(), *e.Data[0].Error)
			},
		},
		{
			"Zero amount",
			[]v1.CashEntryEditable{{WeddingID: w.Data.ID, SourceType: "gift"}},
			http.StatusBadRequest,
			func(t *testing.T, e v1.CashEntryCreateResponse) {
				assert.Equal(t, models.ErrCashEntryAmountNotPositive.Error(), *e.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/cash-entries", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var e v1.CashEntryCreateResponse
			test.DecodeResponse(t, &r, &e)

			if tt.testFunc != nil {
				tt.testFunc(t, e)
			}
		})
	}
}

// TestCashEntriesPledgeMirrorImmutable verifies that entries mirroring
// pledge payments reject updates and deletion through the API.
func (suite *TestSuiteStandard) TestCashEntriesPledgeMirrorImmutable() {
	pledge := createTestPledge(suite.T(), v1.PledgeEditable{
		AmountPledged: decimal.NewFromInt(500000),
		AmountPaid:    decimal.NewFromInt(100000),
	})

	entries := listCashEntries(suite.T(), fmt.Sprintf("sourceReference=%s", pledge.Data.ID))
	require.Len(suite.T(), entries, 1)
	assert.NotEmpty(suite.T(), entries[0].Links.Pledge)

	r := test.Request(suite.T(), http.MethodPatch, entries[0].Links.Self, map[string]any{"note": "tampered"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CashEntryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCashEntryImmutable.Error(), *response.Error)

	r = test.Request(suite.T(), http.MethodDelete, entries[0].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestCashEntriesUpdate verifies that plain entries stay editable.
func (suite *TestSuiteStandard) TestCashEntriesUpdate() {
	entry := createTestCashEntry(suite.T(), v1.CashEntryEditable{ContributorName: "Uncle Ben"})

	r := test.Request(suite.T(), http.MethodPatch, entry.Data.Links.Self, map[string]any{"note": "Handed over at the meeting"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CashEntryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Handed over at the meeting", updated.Data.Note)

	// Converting a plain entry into a pledge mirror is not possible
	r = test.Request(suite.T(), http.MethodPatch, entry.Data.Links.Self, map[string]any{"sourceType": "pledge"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCashEntriesDelete() {
	entry := createTestCashEntry(suite.T(), v1.CashEntryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, entry.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/cash-entries/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCashEntriesGetFilter() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})

	_ = createTestCashEntry(suite.T(), v1.CashEntryEditable{WeddingID: w.Data.ID, ContributorName: "Uncle Ben", Note: "Cash at the meeting"})
	_ = createTestCashEntry(suite.T(), v1.CashEntryEditable{WeddingID: w.Data.ID, ContributorName: "Mrs Jane Doe", SourceType: "other"})
	_ = createTestPledge(suite.T(), v1.PledgeEditable{
		WeddingID:       w.Data.ID,
		ContributorName: "Grace Akello",
		AmountPledged:   decimal.NewFromInt(500000),
		AmountPaid:      decimal.NewFromInt(100000),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Wedding", fmt.Sprintf("wedding=%s", w.Data.ID), 3},
		{"Source type gift", "sourceType=gift", 1},
		{"Source type pledge", "sourceType=pledge", 1},
		{"Glob on the name", "nameGlob=*Ben", 1},
		{"Fuzzy name", "name=Jane", 1},
		{"Search in note", "search=meeting", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.CashEntryListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/cash-entries?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}
