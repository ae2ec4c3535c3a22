//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/handler/api"
	resdto "qomo-drops/internal/handler/dto/response"
	"qomo-drops/internal/usecase/commands"
	"qomo-drops/internal/usecase/queries"
	"qomo-drops/tests/common/httptest"
	commandsmock "qomo-drops/tests/mock/commands"
	queriesmock "qomo-drops/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testViewerID = "viewer_handler-test"

type DropHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDropCommands
	mockQueries  *queriesmock.MockDropQueries
	handler      *api.DropHandler
}

func (s *DropHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDropCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDropQueries(s.mockCtrl)
	s.handler = api.NewDropHandler(s.mockCommands, s.mockQueries)

	// Stand-in for ViewerMiddleware: every request carries a fixed identity
	viewerMiddleware := func(c *gin.Context) {
		c.Set("viewer_id", testViewerID)
		c.Next()
	}

	s.router.GET("/api/drops", viewerMiddleware, s.handler.List)
	s.router.GET("/api/drops/:id", viewerMiddleware, s.handler.Get)
	s.router.POST("/api/drops/:id/view", viewerMiddleware, s.handler.View)
	s.router.POST("/api/drops/:id/cancel", viewerMiddleware, s.handler.Cancel)
	s.router.POST("/api/drops/:id/buy", viewerMiddleware, s.handler.Buy)
	s.router.GET("/api/drops/:id/comparison", viewerMiddleware, s.handler.Compare)
	s.router.POST("/api/admin/reset", s.handler.Reset)
}

func (s *DropHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDropHandlerSuite(t *testing.T) {
	suite.Run(t, new(DropHandlerTestSuite))
}

func testDropView() *queries.DropView {
	return &queries.DropView{
		ProductID:    "drop-walnut-desk",
		Name:         "Walnut Standing Desk",
		Status:       drop.StatusAvailable,
		CurrentPrice: decimal.RequireFromString("1096.00"),
		BasePrice:    decimal.RequireFromString("1100"),
		MinPrice:     decimal.RequireFromString("1000"),
		ViewingFee:   decimal.RequireFromString("5"),
		TotalViews:   1,
	}
}

// ================================================================================
// TestList
// ================================================================================

func (s *DropHandlerTestSuite) TestList() {
	url := "/api/drops"

	s.Run("success: returns 200 with all drops", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return([]*queries.DropView{testDropView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		var response []*resdto.DropStatusResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Len(response, 1)
		s.Equal("drop-walnut-desk", response[0].ProductID)
		s.True(response[0].CurrentPrice.Equal(decimal.RequireFromString("1096.00")))
		s.Nil(response[0].LockExpiresAt)
	})

	s.Run("failure: returns 500 when query fails", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return(nil, queries.ErrStoreFailure).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *DropHandlerTestSuite) TestGet() {
	url := "/api/drops/drop-walnut-desk"

	s.Run("success: returns 200 with the caller's queue position", func() {
		view := testDropView()
		view.Status = drop.StatusQueued
		view.QueuePosition = 2
		view.QueueLength = 3
		view.LockExpiresAt = time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC)

		s.mockQueries.EXPECT().GetStatus(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		var response resdto.DropStatusResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal("queued", response.Status)
		s.Equal(2, response.QueuePosition)
		s.Equal(3, response.QueueLength)
		s.NotNil(response.LockExpiresAt)
	})

	s.Run("failure: returns 404 for unknown product", func() {
		s.mockQueries.EXPECT().GetStatus(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(nil, queries.ErrDropNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Drop not found")
	})
}

// ================================================================================
// TestView
// ================================================================================

func (s *DropHandlerTestSuite) TestView() {
	url := "/api/drops/drop-walnut-desk/view"

	s.Run("success: returns 200 with granted lock", func() {
		expiresAt := time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC)
		out := &commands.ViewOutcome{
			ProductID:  "drop-walnut-desk",
			Status:     drop.StatusLocked,
			Granted:    true,
			ExpiresAt:  expiresAt,
			DropAmount: decimal.RequireFromString("4.00"),
			NewPrice:   decimal.RequireFromString("1096.00"),
			FeeCharged: decimal.RequireFromString("5"),
		}
		s.mockCommands.EXPECT().View(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(out, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		var response resdto.ViewResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.True(response.Granted)
		s.Equal("locked", response.Status)
		s.NotNil(response.ExpiresAt)
		s.True(response.ExpiresAt.Equal(expiresAt))
		s.True(response.NewPrice.Equal(decimal.RequireFromString("1096.00")))
	})

	s.Run("success: returns 200 with queue position when locked by another viewer", func() {
		out := &commands.ViewOutcome{
			ProductID:     "drop-walnut-desk",
			Status:        drop.StatusQueued,
			QueuePosition: 1,
		}
		s.mockCommands.EXPECT().View(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(out, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		var response resdto.ViewResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.False(response.Granted)
		s.Equal("queued", response.Status)
		s.Equal(1, response.QueuePosition)
		s.Nil(response.ExpiresAt)
	})

	s.Run("failure: returns 404 for unknown product", func() {
		s.mockCommands.EXPECT().View(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(nil, commands.ErrDropNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Drop not found")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *DropHandlerTestSuite) TestCancel() {
	url := "/api/drops/drop-walnut-desk/cancel"

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("failure: returns 404 for unknown product", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(commands.ErrDropNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Drop not found")
	})
}

// ================================================================================
// TestBuy
// ================================================================================

func (s *DropHandlerTestSuite) TestBuy() {
	url := "/api/drops/drop-walnut-desk/buy"

	s.Run("success: returns 200 with settlement figures", func() {
		out := &commands.PurchaseOutcome{
			ProductID:            "drop-walnut-desk",
			BuyerID:              testViewerID,
			SoldPrice:            decimal.RequireFromString("1096.00"),
			TotalSupplierRevenue: decimal.RequireFromString("1096.25"),
			TotalQomoRevenue:     decimal.RequireFromString("0.75"),
		}
		s.mockCommands.EXPECT().Buy(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(out, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		var response resdto.PurchaseResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal(testViewerID, response.BuyerID)
		s.True(response.SoldPrice.Equal(decimal.RequireFromString("1096.00")))
		s.True(response.TotalSupplierRevenue.Equal(decimal.RequireFromString("1096.25")))
	})

	s.Run("failure: returns 409 when already sold", func() {
		s.mockCommands.EXPECT().Buy(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(nil, commands.ErrAlreadySold).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already sold")
	})

	s.Run("failure: returns 409 when locked by another viewer", func() {
		s.mockCommands.EXPECT().Buy(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(nil, commands.ErrLockedByOther).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "locked by another viewer")
	})

	s.Run("failure: returns 404 for unknown product", func() {
		s.mockCommands.EXPECT().Buy(gomock.Any(), "drop-walnut-desk", testViewerID).
			Return(nil, commands.ErrDropNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Drop not found")
	})
}

// ================================================================================
// TestMissingViewerIdentity
// ================================================================================

// Mutating routes registered without the viewer middleware must fail closed
// instead of running a command with an empty identity.
func (s *DropHandlerTestSuite) TestMissingViewerIdentity() {
	router := gin.New()
	router.POST("/api/drops/:id/view", s.handler.View)
	router.POST("/api/drops/:id/cancel", s.handler.Cancel)
	router.POST("/api/drops/:id/buy", s.handler.Buy)

	for _, path := range []string{
		"/api/drops/drop-walnut-desk/view",
		"/api/drops/drop-walnut-desk/cancel",
		"/api/drops/drop-walnut-desk/buy",
	} {
		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, path, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	}
}

// ================================================================================
// TestCompare
// ================================================================================

func (s *DropHandlerTestSuite) TestCompare() {
	url := "/api/drops/drop-walnut-desk/comparison"

	s.Run("success: returns 200 with marketplace entries", func() {
		comparison := &queries.Comparison{
			ProductName: "Walnut Standing Desk",
			BasePrice:   decimal.RequireFromString("1100"),
			Entries: []queries.ComparisonEntry{
				{Marketplace: "restoro", Price: decimal.RequireFromString("1187.50"), URL: "https://restoro.example/walnut-standing-desk"},
			},
			ImageURL: "https://placehold.co/600x400",
		}
		s.mockQueries.EXPECT().Compare(gomock.Any(), "drop-walnut-desk").
			Return(comparison, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		var response queries.Comparison
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal("Walnut Standing Desk", response.ProductName)
		s.Len(response.Entries, 1)
	})

	s.Run("failure: returns 404 for unknown product", func() {
		s.mockQueries.EXPECT().Compare(gomock.Any(), "drop-walnut-desk").
			Return(nil, queries.ErrDropNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Drop not found")
	})
}

// ================================================================================
// TestReset
// ================================================================================

func (s *DropHandlerTestSuite) TestReset() {
	url := "/api/admin/reset"

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Reset(gomock.Any()).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("failure: returns 500 when store reset fails", func() {
		s.mockCommands.EXPECT().Reset(gomock.Any()).
			Return(commands.ErrStoreFailure).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
