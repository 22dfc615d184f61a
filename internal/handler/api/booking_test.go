//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"carshare-booking/internal/domain/user"
	"carshare-booking/internal/handler/api"
	resdto "carshare-booking/internal/handler/dto/response"
	"carshare-booking/internal/usecase/commands"
	"carshare-booking/internal/usecase/queries"
	"carshare-booking/tests/common/builder"
	"carshare-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Hand-written stubs; each test assigns the function it expects to be hit.
type stubBookingCommands struct {
	submitFn func(ctx context.Context, p commands.SubmitBookingParams) (*queries.BookingView, error)
	acceptFn func(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error)
	rejectFn func(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error)
	cancelFn func(ctx context.Context, id, requesterID uuid.UUID) error
}

func (s *stubBookingCommands) Submit(ctx context.Context, p commands.SubmitBookingParams) (*queries.BookingView, error) {
	return s.submitFn(ctx, p)
}

func (s *stubBookingCommands) Accept(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error) {
	return s.acceptFn(ctx, id, actorID)
}

func (s *stubBookingCommands) Reject(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error) {
	return s.rejectFn(ctx, id, actorID)
}

func (s *stubBookingCommands) Cancel(ctx context.Context, id, requesterID uuid.UUID) error {
	return s.cancelFn(ctx, id, requesterID)
}

type stubBookingQueries struct {
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	listByCarFn       func(ctx context.Context, carID uuid.UUID) ([]*queries.BookingView, error)
	listByRequesterFn func(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error)
}

func (s *stubBookingQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubBookingQueries) ListByCar(ctx context.Context, carID uuid.UUID) ([]*queries.BookingView, error) {
	return s.listByCarFn(ctx, carID)
}

func (s *stubBookingQueries) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
	return s.listByRequesterFn(ctx, requesterID)
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
	handler  *api.BookingHandler
	userID   uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}
	s.handler = api.NewBookingHandler(s.commands, s.queries)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleMember)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.GET("/bookings", authMiddleware, s.handler.ListMine)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.Cancel)
	s.router.POST("/bookings/:id/accept", authMiddleware, s.handler.Accept)
	s.router.POST("/bookings/:id/reject", authMiddleware, s.handler.Reject)
	s.router.GET("/cars/:id/bookings", authMiddleware, s.handler.ListByCar)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created with the accepted booking", func() {
		s.commands.submitFn = func(_ context.Context, p commands.SubmitBookingParams) (*queries.BookingView, error) {
			s.Equal(s.userID, p.RequesterID)
			s.Equal(reqBody.CarID, p.CarID)
			return returnView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("accepted", response.Status)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"car_id": "not-a-uuid"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request on malformed dates", func() {
		bad := reqBody
		bad.FromDate = "20/07/2024"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{"inverted range", commands.ErrInvalidRange, http.StatusUnprocessableEntity},
			{"past start date", commands.ErrPastDate, http.StatusUnprocessableEntity},
			{"requester already holds the dates", commands.ErrAlreadyBookedByRequester, http.StatusConflict},
			{"dates held by another shareholder", commands.ErrBookedByOther, http.StatusConflict},
			{"car lock busy", commands.ErrCarBusy, http.StatusServiceUnavailable},
			{"unexpected failure", errors.New("database down"), http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.commands.submitFn = func(context.Context, commands.SubmitBookingParams) (*queries.BookingView, error) {
					return nil, tc.commandsError
				}

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("conflict responses carry a reason", func() {
		s.commands.submitFn = func(context.Context, commands.SubmitBookingParams) (*queries.BookingView, error) {
			return nil, commands.ErrAlreadyBookedByRequester
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), `"reason":"already_booked"`)

		s.commands.submitFn = func(context.Context, commands.SubmitBookingParams) (*queries.BookingView, error) {
			return nil, commands.ErrBookedByOther
		}

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), `"reason":"booked_by_other"`)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.queries.getByIDFn = func(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
			s.Equal(bookingID, id)
			return returnView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.FromDate.String(), response.FromDate)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.queries.getByIDFn = func(context.Context, uuid.UUID) (*queries.BookingView, error) {
			return nil, queries.ErrBookingNotFound
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestListMine / TestListByCar
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMine() {
	views := []*queries.BookingView{
		builder.NewBookingBuilder().BuildViewQuery(),
		builder.NewBookingBuilder().BuildViewQuery(),
	}

	s.Run("success: returns the requester's bookings", func() {
		s.queries.listByRequesterFn = func(_ context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
			s.Equal(s.userID, requesterID)
			return views, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})
}

func (s *BookingHandlerTestSuite) TestListByCar() {
	carID := uuid.New()
	views := []*queries.BookingView{
		builder.NewBookingBuilder().WithCarID(carID).BuildViewQuery(),
	}

	s.Run("success: returns the car's bookings", func() {
		s.queries.listByCarFn = func(_ context.Context, id uuid.UUID) ([]*queries.BookingView, error) {
			s.Equal(carID, id)
			return views, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars/"+carID.String()+"/bookings", nil, "bearer-token")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(carID, response[0].CarID)
	})

	s.Run("error: 400 Bad Request for invalid car UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars/nope/bookings", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid car ID")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: returns 204 No Content", func() {
		s.commands.cancelFn = func(_ context.Context, id, requesterID uuid.UUID) error {
			s.Equal(bookingID, id)
			s.Equal(s.userID, requesterID)
			return nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{"not found", commands.ErrBookingNotFound, http.StatusNotFound},
			{"not the requester", commands.ErrForbidden, http.StatusForbidden},
			{"car lock busy", commands.ErrCarBusy, http.StatusServiceUnavailable},
			{"unexpected failure", errors.New("database down"), http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.commands.cancelFn = func(context.Context, uuid.UUID, uuid.UUID) error {
					return tc.commandsError
				}

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestAccept / TestReject
// ================================================================================

func (s *BookingHandlerTestSuite) TestAccept() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/accept"

	returnView := builder.NewBookingBuilder().BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with the accepted booking", func() {
		s.commands.acceptFn = func(_ context.Context, id, actorID uuid.UUID) (*queries.BookingView, error) {
			s.Equal(bookingID, id)
			s.Equal(s.userID, actorID)
			return returnView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("error: 409 Conflict when acceptance would collide", func() {
		s.commands.acceptFn = func(context.Context, uuid.UUID, uuid.UUID) (*queries.BookingView, error) {
			return nil, commands.ErrBookedByOther
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.commands.acceptFn = func(context.Context, uuid.UUID, uuid.UUID) (*queries.BookingView, error) {
			return nil, commands.ErrBookingNotFound
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *BookingHandlerTestSuite) TestReject() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/reject"

	returnView := builder.NewBookingBuilder().AsRejected().BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with the rejected booking", func() {
		s.commands.rejectFn = func(_ context.Context, id, actorID uuid.UUID) (*queries.BookingView, error) {
			s.Equal(bookingID, id)
			return returnView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("rejected", response.Status)
	})
}
