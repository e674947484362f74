package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pledgebook/backend/internal/controllers/v1"
	"github.com/pledgebook/backend/internal/models"
	"github.com/pledgebook/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBudgetSection(t *testing.T, s v1.BudgetSectionEditable, expectedStatus ...int) v1.BudgetSectionResponse {
	if s.WeddingID == uuid.Nil {
		s.WeddingID = createTestWedding(t, v1.WeddingEditable{}).Data.ID
	}

	if s.Name == "" {
		s.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BudgetSectionEditable{s}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-sections", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var section v1.BudgetSectionCreateResponse
	test.DecodeResponse(t, &r, &section)

	if r.Code == http.StatusCreated {
		return section.Data[0]
	}

	return v1.BudgetSectionResponse{}
}

func (suite *TestSuiteStandard) TestBudgetSectionsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Section with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Section exists", createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/budget-sections", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetSectionsCreateFails() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})
	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w.Data.ID, Name: "Reception"})

	tests := []struct {
		name     string
		body     any
		status   int
		testFunc func(t *testing.T, s v1.BudgetSectionCreateResponse)
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, s v1.BudgetSectionCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *s.Error)
			},
		},
		{
			"Non-existing Wedding",
			`[{ "weddingId": "ea85ad1a-3679-4ced-b83b-89566c12ece9" }]`,
			http.StatusNotFound,
			func(t *testing.T, s v1.BudgetSectionCreateResponse) {
				assert.Equal(t, "there is no wedding matching your query", *s.Data[0].Error)
			},
		},
		{
			"Duplicate name for the wedding",
			[]v1.BudgetSectionEditable{{WeddingID: w.Data.ID, Name: "Reception"}},
			http.StatusBadRequest,
			func(t *testing.T, s v1.BudgetSectionCreateResponse) {
				assert.Equal(t, models.ErrBudgetSectionNameNotUnique.Error(), *s.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budget-sections", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var s v1.BudgetSectionCreateResponse
			test.DecodeResponse(t, &r, &s)

			if tt.testFunc != nil {
				tt.testFunc(t, s)
			}
		})
	}
}

// TestBudgetSectionsGetSorted verifies that sections are sorted by their
// display order.
func (suite *TestSuiteStandard) TestBudgetSectionsGetSorted() {
	w := createTestWedding(suite.T(), v1.WeddingEditable{})

	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w.Data.ID, Name: "Transport", DisplayOrder: 3})
	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w.Data.ID, Name: "Reception", DisplayOrder: 1})
	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w.Data.ID, Name: "Church", DisplayOrder: 2})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-sections", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var sections v1.BudgetSectionListResponse
	test.DecodeResponse(suite.T(), &r, &sections)

	require.Len(suite.T(), sections.Data, 3)
	assert.Equal(suite.T(), "Reception", sections.Data[0].Name)
	assert.Equal(suite.T(), "Church", sections.Data[1].Name)
	assert.Equal(suite.T(), "Transport", sections.Data[2].Name)
}

func (suite *TestSuiteStandard) TestBudgetSectionsGetFilter() {
	w1 := createTestWedding(suite.T(), v1.WeddingEditable{})
	w2 := createTestWedding(suite.T(), v1.WeddingEditable{})

	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w1.Data.ID, Name: "Reception"})
	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w2.Data.ID, Name: "Reception venue"})
	_ = createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{WeddingID: w2.Data.ID, Name: "Transport"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Wedding 1", fmt.Sprintf("wedding=%s", w1.Data.ID), 1},
		{"Wedding Not Existing", "wedding=c9e4ee7a-e702-4f92-b168-11a95b22c7aa", 0},
		{"Fuzzy name", "name=Reception", 2},
		{"Search", "search=transport", 1},
		{"Limit 2", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.BudgetSectionListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/budget-sections?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetSectionsUpdate() {
	section := createTestBudgetSection(suite.T(), v1.BudgetSectionEditable{Name: "Reception"})

	r := test.Request(suite.T(), http.MethodPatch, section.Data.Links.Self, map[string]any{"name": "Reception & Dinner", "displayOrder": 5})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s v1.BudgetSectionResponse
	test.DecodeResponse(suite.T(), &r, &s)
	assert.Equal(suite.T(), "Reception & Dinner", s.Data.Name)
	assert.Equal(suite.T(), uint(5), s.Data.DisplayOrder)
}

func (suite *TestSuiteStandard) TestBudgetSectionsDelete() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Section", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				s := createTestBudgetSection(t, v1.BudgetSectionEditable{})
				tt.id = s.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/budget-sections/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}
