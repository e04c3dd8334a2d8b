package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPageSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		wantPage int32
		wantSize int32
	}{
		{"defaults", "", 0, 20},
		{"explicit", "page=3&page_size=50", 2, 50},
		{"zero values fall back", "page=0&page_size=0", 0, 20},
		{"negative values fall back", "page=-5&page_size=-1", 0, 20},
		{"oversized page_size is clamped", "page_size=100000", 0, maxPageSize},
		{"garbage falls back", "page=abc&page_size=xyz", 0, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/v1/bookings/me?"+tc.query, nil)
			page, size := pageSize(c)
			if page != tc.wantPage || size != tc.wantSize {
				t.Fatalf("pageSize(%q) = (%d, %d), want (%d, %d)",
					tc.query, page, size, tc.wantPage, tc.wantSize)
			}
		})
	}
}
