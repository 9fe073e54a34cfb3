package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/loss-valuation/internal/api/handlers"
	"github.com/donaldgifford/loss-valuation/internal/store"
	storeMocks "github.com/donaldgifford/loss-valuation/internal/store/mocks"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

const (
	appraisalID = "4f7c2a9e-1b3d-4c5e-8f6a-0b1c2d3e4f5a"
	missingID   = "00000000-0000-4000-8000-000000000000"
)

func intPtr(v int) *int { return &v }

func storedComp(id string, price float64, miles int) domain.Comparable {
	return domain.Comparable{
		ID:               id,
		AppraisalID:      appraisalID,
		Source:           "dealer",
		Year:             2021,
		Make:             "Honda",
		Model:            "Accord",
		Trim:             "EX",
		Mileage:          intPtr(miles),
		Condition:        domain.ConditionGood,
		Location:         "Austin, TX",
		DistanceFromLoss: 12,
		ListPrice:        price,
	}
}

func storedAppraisal(status domain.AppraisalStatus) *domain.Appraisal {
	return &domain.Appraisal{
		ID:          appraisalID,
		ClaimNumber: "CLM-1001",
		Status:      status,
		LossVehicle: domain.LossVehicle{
			Year:      2020,
			Make:      "Honda",
			Model:     "Accord",
			Trim:      "EX",
			Mileage:   intPtr(30000),
			Location:  "Austin, TX",
			Condition: domain.ConditionGood,
		},
		Stale: true,
		Comparables: []domain.Comparable{
			storedComp("c1", 21000, 28000),
			storedComp("c2", 21500, 31000),
			storedComp("c3", 22000, 33000),
		},
	}
}

func newAppraisalsAPI(t *testing.T, ms *storeMocks.MockStore) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterAppraisalRoutes(api, handlers.NewAppraisalsHandler(ms, newEngine(t, ms)))
	return api
}

func TestAppraisalsHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "no filters uses default limit",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListAppraisals(mock.Anything, mock.MatchedBy(func(q *store.AppraisalQuery) bool {
						return q.Limit == 50 && q.Status == nil && q.Stale == nil
					})).
					Return([]domain.Appraisal{*storedAppraisal(domain.AppraisalDraft)}, 1, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":1`,
		},
		{
			name:  "status and stale filters",
			query: "?status=needs_review&stale=false",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListAppraisals(mock.Anything, mock.MatchedBy(func(q *store.AppraisalQuery) bool {
						return q.Status != nil && *q.Status == "needs_review" &&
							q.Stale != nil && !*q.Stale
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"appraisals":[]`,
		},
		{
			name:  "claim number and make filters",
			query: "?claim_number=CLM-1001&make=honda&limit=10&offset=20",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListAppraisals(mock.Anything, mock.MatchedBy(func(q *store.AppraisalQuery) bool {
						return q.ClaimNumber != nil && *q.ClaimNumber == "CLM-1001" &&
							q.Make != nil && *q.Make == "honda" &&
							q.Limit == 10 && q.Offset == 20
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"offset":20`,
		},
		{
			name:       "invalid status rejected",
			query:      "?status=archived",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:  "store error",
			query: "",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListAppraisals(mock.Anything, mock.Anything).
					Return(nil, 0, errors.New("db down")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setupMock(ms)

			resp := newAppraisalsAPI(t, ms).Get("/api/v1/appraisals" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAppraisalsHandler_Create(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().
		CreateAppraisal(mock.Anything, mock.MatchedBy(func(a *domain.Appraisal) bool {
			return a.ClaimNumber == "CLM-2002" &&
				a.Status == domain.AppraisalDraft &&
				a.LossVehicle.Condition == domain.ConditionExcellent
		})).
		RunAndReturn(func(_ context.Context, a *domain.Appraisal) error {
			a.ID = appraisalID
			a.Stale = true
			return nil
		}).
		Once()

	resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals", map[string]any{
		"claim_number": "CLM-2002",
		"loss_vehicle": map[string]any{
			"year":      2020,
			"make":      "Honda",
			"model":     "Accord",
			"mileage":   30000,
			"condition": "like new",
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"id":"`+appraisalID+`"`)
	assert.Contains(t, resp.Body.String(), `"status":"draft"`)
}

func TestAppraisalsHandler_CreateMissingClaim(t *testing.T) {
	t.Parallel()

	resp := newAppraisalsAPI(t, storeMocks.NewMockStore(t)).Post("/api/v1/appraisals", map[string]any{
		"loss_vehicle": map[string]any{"year": 2020, "make": "Honda", "model": "Accord"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestAppraisalsHandler_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "found",
			id:   appraisalID,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().GetAppraisal(mock.Anything, appraisalID).
					Return(storedAppraisal(domain.AppraisalValued), nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"claim_number":"CLM-1001"`,
		},
		{
			name: "not found",
			id:   missingID,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().GetAppraisal(mock.Anything, missingID).
					Return(nil, store.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "appraisal not found",
		},
		{
			name:       "malformed id",
			id:         "not-a-uuid",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store error",
			id:   appraisalID,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().GetAppraisal(mock.Anything, appraisalID).
					Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setupMock(ms)

			resp := newAppraisalsAPI(t, ms).Get("/api/v1/appraisals/" + tt.id)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAppraisalsHandler_Delete(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
		Return(storedAppraisal(domain.AppraisalDraft), nil).Once()
	ms.EXPECT().DeleteAppraisal(mock.Anything, appraisalID).Return(nil).Once()

	resp := newAppraisalsAPI(t, ms).Delete("/api/v1/appraisals/" + appraisalID)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestAppraisalsHandler_UpdateLossVehicle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     domain.AppraisalStatus
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
	}{
		{
			name:   "valued appraisal is updated",
			status: domain.AppraisalValued,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					UpdateLossVehicle(mock.Anything, appraisalID, mock.MatchedBy(func(lv *domain.LossVehicle) bool {
						return lv.Mileage != nil && *lv.Mileage == 45000
					})).
					Return(nil).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "approved is locked",
			status:     domain.AppraisalApproved,
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
				Return(storedAppraisal(tt.status), nil).Once()
			tt.setupMock(ms)

			resp := newAppraisalsAPI(t, ms).Put("/api/v1/appraisals/"+appraisalID+"/loss-vehicle", map[string]any{
				"year":    2020,
				"make":    "Honda",
				"model":   "Accord",
				"mileage": 45000,
			})
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, resp.Body.String(), `"stale":true`)
				assert.Contains(t, resp.Body.String(), `"mileage":45000`)
			}
		})
	}
}

func TestAppraisalsHandler_SetStatus(t *testing.T) {
	t.Parallel()

	valuedAt := fixedNow()

	tests := []struct {
		name       string
		valuedAt   *time.Time
		status     string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
	}{
		{
			name:     "approve valued appraisal",
			valuedAt: &valuedAt,
			status:   "approved",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().SetAppraisalStatus(mock.Anything, appraisalID, domain.AppraisalApproved).
					Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "approve unvalued appraisal",
			status:     "approved",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "reopen to draft",
			status: "draft",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().SetAppraisalStatus(mock.Anything, appraisalID, domain.AppraisalDraft).
					Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := storedAppraisal(domain.AppraisalReview)
			a.ValuedAt = tt.valuedAt

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).Return(a, nil).Once()
			tt.setupMock(ms)

			resp := newAppraisalsAPI(t, ms).Put("/api/v1/appraisals/"+appraisalID+"/status",
				map[string]any{"status": tt.status})
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}

func TestAppraisalsHandler_Comparables(t *testing.T) {
	t.Parallel()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().ListComparables(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalDraft).Comparables, nil).Once()

		resp := newAppraisalsAPI(t, ms).Get("/api/v1/appraisals/" + appraisalID + "/comparables")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"id":"c3"`)
	})

	t.Run("add", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalValued), nil).Once()
		ms.EXPECT().
			UpsertComparable(mock.Anything, mock.MatchedBy(func(c *domain.Comparable) bool {
				return c.AppraisalID == appraisalID && c.ListPrice == 20500 &&
					c.Condition == domain.ConditionFair
			})).
			RunAndReturn(func(_ context.Context, c *domain.Comparable) error {
				c.ID = "generated"
				return nil
			}).
			Once()

		resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals/"+appraisalID+"/comparables", map[string]any{
			"source":     "private",
			"year":       2021,
			"make":       "Honda",
			"model":      "Accord",
			"mileage":    40000,
			"condition":  "average",
			"location":   "Round Rock, TX",
			"list_price": 20500,
		})
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		assert.Contains(t, resp.Body.String(), `"id":"generated"`)
	})

	t.Run("add to approved", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalApproved), nil).Once()

		resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals/"+appraisalID+"/comparables",
			map[string]any{"list_price": 20500})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalDraft), nil).Once()
		ms.EXPECT().DeleteComparable(mock.Anything, appraisalID, "c2").Return(nil).Once()

		resp := newAppraisalsAPI(t, ms).Delete("/api/v1/appraisals/" + appraisalID + "/comparables/c2")
		assert.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalDraft), nil).Once()
		ms.EXPECT().DeleteComparable(mock.Anything, appraisalID, "zz").Return(store.ErrNotFound).Once()

		resp := newAppraisalsAPI(t, ms).Delete("/api/v1/appraisals/" + appraisalID + "/comparables/zz")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestAppraisalsHandler_Valuate(t *testing.T) {
	t.Parallel()

	t.Run("values and saves", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalDraft), nil).Once()
		ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(nil).Times(3)
		ms.EXPECT().
			SaveValuation(mock.Anything, mock.MatchedBy(func(v *domain.Valuation) bool {
				return v.AppraisalID == appraisalID && v.MarketValue > 0
			}), domain.AppraisalValued).
			Return(nil).
			Once()

		resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals/" + appraisalID + "/valuate")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Contains(t, resp.Body.String(), `"market_value":`)
	})

	t.Run("approved appraisal", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).
			Return(storedAppraisal(domain.AppraisalApproved), nil).Once()

		resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals/" + appraisalID + "/valuate")
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("no comparables", func(t *testing.T) {
		t.Parallel()

		a := storedAppraisal(domain.AppraisalDraft)
		a.Comparables = nil

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, appraisalID).Return(a, nil).Once()

		resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals/" + appraisalID + "/valuate")
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Contains(t, resp.Body.String(), "body.comparables")
	})

	t.Run("missing appraisal", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetAppraisal(mock.Anything, missingID).Return(nil, store.ErrNotFound).Once()

		resp := newAppraisalsAPI(t, ms).Post("/api/v1/appraisals/" + missingID + "/valuate")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestAppraisalsHandler_GetValuation(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetLatestValuation(mock.Anything, appraisalID).
			Return(&domain.Valuation{ID: "v1", AppraisalID: appraisalID, MarketValue: 21480.5}, nil).Once()

		resp := newAppraisalsAPI(t, ms).Get("/api/v1/appraisals/" + appraisalID + "/valuation")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"market_value":21480.5`)
	})

	t.Run("never valued", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetLatestValuation(mock.Anything, appraisalID).Return(nil, store.ErrNotFound).Once()

		resp := newAppraisalsAPI(t, ms).Get("/api/v1/appraisals/" + appraisalID + "/valuation")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
