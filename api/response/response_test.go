package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"qual-store/internal/apperr"
)

func TestRespondAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", fmt.Errorf("%w: id 7", apperr.ErrOrderNotFound), http.StatusNotFound, "order_not_found", "order not found: id 7"},
		{"invalid status", apperr.ErrInvalidOrderStatus, http.StatusBadRequest, "invalid_order_status", "invalid order status"},
		{"wrong state", apperr.ErrUpdateOrderStatus, http.StatusBadRequest, "update_order_status", apperr.ErrUpdateOrderStatus.Error()},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, "internal", "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondAppError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMsg {
				t.Fatalf("envelope: got=%+v", env.Error)
			}
		})
	}
}
